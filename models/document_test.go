package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "two words", in: "Alice Tan", want: "AT"},
		{name: "three words", in: "mary jane watson", want: "MJ"},
		{name: "single word", in: "Eve", want: "E"},
		{name: "extra spaces", in: "  bob   lee ", want: "BL"},
		{name: "empty", in: "", want: ""},
		{name: "unicode", in: "élodie ñúñez", want: "ÉÑ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Initials(tt.in))
		})
	}
}

func TestSharedDocument_Clone_IsDeep(t *testing.T) {
	doc := DefaultDocument()
	doc.Passwords[1] = "pw"

	clone := doc.Clone()
	clone.Users[0].Name = "changed"
	clone.Passwords[1] = "other"
	clone.Leaves = clone.Leaves[:1]

	assert.Equal(t, "Alice Tan", doc.Users[0].Name)
	assert.Equal(t, "pw", doc.Passwords[1])
	assert.Len(t, doc.Leaves, 5)
}

func TestEnums_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("owner").Valid())
	assert.True(t, GradeTrainee.Valid())
	assert.False(t, Grade("Senior").Valid())
	assert.True(t, LeaveConference.Valid())
	assert.False(t, LeaveType("Sick Leave").Valid())
}

func TestDefaultUsers_AvatarsMatchInitials(t *testing.T) {
	for _, u := range DefaultUsers() {
		assert.Equal(t, Initials(u.Name), u.Avatar, u.Name)
	}
}

// ── ClockIDGenerator ─────────────────────────────────────────────────────────

func TestClockIDGenerator_NextUserID(t *testing.T) {
	g := NewClockIDGenerator(nil)

	assert.Equal(t, int64(6), g.NextUserID(DefaultUsers()))
	assert.Equal(t, int64(1), g.NextUserID(nil))
	assert.Equal(t, int64(43), g.NextUserID([]User{{ID: 42}, {ID: 3}}))
}

func TestClockIDGenerator_NextID_StrictlyIncreasingOnFrozenClock(t *testing.T) {
	frozen := time.UnixMilli(1_770_000_000_000)
	g := NewClockIDGenerator(func() time.Time { return frozen })

	first := g.NextID()
	second := g.NextID()
	third := g.NextID()

	assert.Equal(t, frozen.UnixMilli(), first)
	assert.Equal(t, first+1, second)
	assert.Equal(t, second+1, third)
}

func TestSyncEnums_String(t *testing.T) {
	assert.Equal(t, "saving", SyncSaving.String())
	assert.Equal(t, "conflict", SaveConflict.String())
	assert.Equal(t, "unknown", SaveOutcome(99).String())
}

package models

// ProfileUpdate is a request to change the current user's own profile.
// The password fields are all empty when the password is left unchanged.
type ProfileUpdate struct {
	Name string

	CurrentPassword string
	NewPassword     string
	ConfirmPassword string

	// StoredPassword is the password currently recorded for the user,
	// empty when the user has none.
	StoredPassword string
}

// ChangesPassword reports whether any password field was filled in.
func (p ProfileUpdate) ChangesPassword() bool {
	return p.CurrentPassword != "" || p.NewPassword != "" || p.ConfirmPassword != ""
}

// Package tui is the terminal interface of the LeaveSync client.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/service"
	"github.com/MKhiriev/go-leave-sync/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	services *service.ClientServices
	cfg      config.ClientApp
	logger   *logger.Logger
}

func New(services *service.ClientServices, cfg config.ClientApp, logger *logger.Logger) *TUI {
	return &TUI{services: services, cfg: cfg, logger: logger}
}

// Run shows the interface until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	statuses, unsubscribe := subscribeStatus(t.services.SyncClient)
	defer unsubscribe()

	model := newAppModel(ctx, t.services.Workspace, t.cfg, statuses, t.logger)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	if _, ok := finalModel.(appModel); !ok {
		return tea.ErrProgramKilled
	}
	return nil
}

// subscribeStatus forwards sync status changes into a channel holding only
// the latest status, so a slow UI never blocks the sync client.
func subscribeStatus(client *service.SyncClient) (<-chan models.SyncStatus, func()) {
	ch := make(chan models.SyncStatus, 1)
	unsubscribe := client.Subscribe(func(status models.SyncStatus) {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- status:
		default:
		}
	})
	return ch, unsubscribe
}

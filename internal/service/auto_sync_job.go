package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/workers"
	"github.com/MKhiriev/go-leave-sync/models"
)

const (
	defaultPollInterval = 15 * time.Second
	defaultSaveDebounce = 3 * time.Second
)

// AutoSyncJob keeps a SyncClient in sync without user action: it polls the
// store for remote changes and saves local edits once they have settled for
// the debounce period. A conflict stops auto-saving until it is resolved.
type AutoSyncJob struct {
	client       *SyncClient
	pollInterval time.Duration
	debounce     time.Duration
	logger       *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAutoSyncJob creates a job driving client with the intervals from cfg.
// The job is idle until Start is called.
func NewAutoSyncJob(client *SyncClient, cfg config.Workers, logger *logger.Logger) *AutoSyncJob {
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}
	debounce := cfg.SaveDebounce
	if debounce <= 0 {
		debounce = defaultSaveDebounce
	}

	return &AutoSyncJob{
		client:       client,
		pollInterval: poll,
		debounce:     debounce,
		logger:       logger,
	}
}

var _ workers.Worker = (*AutoSyncJob)(nil)

// Run implements workers.Worker.
func (j *AutoSyncJob) Run(ctx context.Context) {
	j.Start(ctx)
}

// Start stops any previously running job, then launches a background
// goroutine that polls every poll interval and saves after every burst of
// local edits. The goroutine exits when ctx is cancelled or Stop is called.
func (j *AutoSyncJob) Start(ctx context.Context) {
	j.Stop()

	edits := make(chan struct{}, 1)
	var lastRevision atomic.Uint64
	lastRevision.Store(j.client.Status().Revision)

	unsubscribe := j.client.Subscribe(func(status models.SyncStatus) {
		if status.Revision == lastRevision.Swap(status.Revision) {
			return
		}
		select {
		case edits <- struct{}{}:
		default:
		}
	})

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		defer unsubscribe()
		j.loop(jobCtx, edits)
	}()
}

func (j *AutoSyncJob) loop(ctx context.Context, edits <-chan struct{}) {
	ticker := time.NewTicker(j.pollInterval)
	defer ticker.Stop()

	debounce := time.NewTimer(j.debounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()
	armed := false

	arm := func() {
		debounce.Reset(j.debounce)
		armed = true
	}

	for {
		select {
		case <-ctx.Done():
			return

		case <-edits:
			if j.client.Status().Conflict == nil {
				arm()
			}

		case <-debounce.C:
			armed = false
			j.save(ctx)

		case <-ticker.C:
			status := j.client.Status()
			if status.Dirty && status.Conflict == nil && !armed {
				arm()
				continue
			}
			j.pull(ctx)
		}
	}
}

func (j *AutoSyncJob) save(ctx context.Context) {
	if j.client.Status().Conflict != nil {
		return
	}

	result, err := j.client.Save(ctx)
	switch {
	case err != nil && !errors.Is(err, context.Canceled):
		j.logger.Warn().Err(err).Msg("auto-save failed")
	case result.Outcome == models.SaveConflict:
		j.logger.Info().Msg("auto-save stopped by conflict")
	case result.Outcome == models.SaveSaved:
		j.logger.Debug().Msg("auto-saved")
	}
}

func (j *AutoSyncJob) pull(ctx context.Context) {
	applied, err := j.client.Pull(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		j.logger.Warn().Err(err).Msg("auto-sync poll failed")
		return
	}
	if applied {
		j.logger.Debug().Msg("auto-sync applied remote changes")
	}
}

// Stop cancels the background goroutine and blocks until it has exited.
// Safe to call when the job is not running.
func (j *AutoSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

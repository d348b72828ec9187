package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/promptkeeper/internal/client/config"
	"github.com/dmitrijs2005/promptkeeper/internal/client/models"
	"github.com/dmitrijs2005/promptkeeper/internal/client/services"
	"github.com/dmitrijs2005/promptkeeper/internal/client/storage"
	"github.com/dmitrijs2005/promptkeeper/internal/client/transfer"
	"github.com/dmitrijs2005/promptkeeper/internal/logging"
	"github.com/dmitrijs2005/promptkeeper/internal/netx"
	"golang.org/x/sync/errgroup"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	store    *storage.Store
	catalog  services.CatalogService
	transfer *transfer.Service

	in         lineReader
	closeInput func() error
	closeOnce  sync.Once
	out        io.Writer
	color      bool
	now        func() time.Time

	// probe is a test seam for netx.Probe.
	probe func(ctx context.Context, url string) error

	modeMu sync.Mutex
	mode   Mode
}

// NewApp opens the database, seeds it on first use and loads the catalog.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	st, err := storage.Open(ctx, c.DatabasePath, logger)
	if err != nil {
		logger.Error(ctx, "error opening database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	if err := st.Initialize(ctx); err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		_ = st.Close()
		return nil, err
	}

	catalog := services.NewCatalogService(st, logger)
	if err := catalog.Load(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}

	in, closeInput := newLineReader()

	return &App{
		config:     c,
		logger:     logger,
		store:      st,
		catalog:    catalog,
		transfer:   transfer.New(st, logger),
		in:         in,
		closeInput: closeInput,
		out:        os.Stdout,
		color:      isTerminal(int(os.Stdout.Fd())),
		now:        time.Now,
		probe:      netx.Probe,
	}, nil
}

// Run starts the REPL and, when a probe URL is configured, the online status
// watcher. It returns when the user exits or ctx is cancelled. On
// cancellation the line reader is closed and Run does not wait for a read
// that is still blocked.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if a.config.ProbeURL != "" {
		g.Go(func() error {
			a.StartOnlineStatusWatcher(gctx, a.config.OnlineCheckInterval)
			return nil
		})
	}

	replDone := make(chan struct{})
	go func() {
		defer close(replDone)
		defer cancel()
		printlnFn("Welcome to promptkeeper (type 'help' for commands)")
		runREPL(gctx, a, a.getStatus, a.in)
	}()

	select {
	case <-replDone:
	case <-ctx.Done():
		a.logger.Info(ctx, "shutting down")
		a.closeReader()
	}
	cancel()

	return g.Wait()
}

// closeReader releases the line reader once.
func (a *App) closeReader() {
	a.closeOnce.Do(func() {
		if a.closeInput != nil {
			_ = a.closeInput()
		}
	})
}

// Close releases the terminal and the database.
func (a *App) Close() error {
	a.closeReader()
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

func (a *App) getMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

// setMode records the new mode and returns the previous one.
func (a *App) setMode(ctx context.Context, mode Mode) Mode {
	a.modeMu.Lock()
	prev := a.mode
	a.mode = mode
	a.modeMu.Unlock()

	if prev != mode {
		a.logger.Info(ctx, "connectivity changed", "mode", mode)
	}
	return prev
}

// getStatus renders the prompt prefix: connectivity and the active filter.
func (a *App) getStatus() string {
	var parts []string
	if m := a.getMode(); m != "" {
		parts = append(parts, string(m))
	}

	f := a.catalog.Filter()
	if f.SearchText != "" {
		parts = append(parts, fmt.Sprintf("search=%q", f.SearchText))
	}
	if len(f.SelectedTags) > 0 {
		parts = append(parts, "tags="+strings.Join(f.SelectedTags, ","))
	}
	if f.SortBy != "" && f.SortBy != models.SortNewest {
		parts = append(parts, "sort="+string(f.SortBy))
	}

	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// StartOnlineStatusWatcher probes the configured URL every interval and
// reloads the catalog when the status goes from offline to online. It
// returns when ctx is cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := a.probe(ctx, a.config.ProbeURL)
			if ctx.Err() != nil {
				return
			}

			if err != nil {
				a.setMode(ctx, ModeOffline)
				continue
			}
			if prev := a.setMode(ctx, ModeOnline); prev == ModeOffline {
				if err := a.catalog.Load(ctx); err != nil {
					a.logger.Warn(ctx, "reload after reconnect failed", "error", err)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}

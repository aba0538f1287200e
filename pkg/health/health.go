package health

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/coursemail/pkg/logger"
)

const (
	defaultTimeout = 10 * time.Second

	// StatusHealthy indicates all checks passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy indicates one or more checks failed.
	StatusUnhealthy = "unhealthy"
)

// CheckFunc verifies one dependency and returns nil when it is usable.
type CheckFunc func(ctx context.Context) error

// Checks is a map of named health check functions.
type Checks map[string]CheckFunc

// Report is the outcome of a Run.
type Report struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check represents the status of a single health check.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Healthy reports whether every check passed.
func (r *Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// Err returns nil for a healthy report, otherwise ErrCheckFailed naming the failed checks.
func (r *Report) Err() error {
	if r.Healthy() {
		return nil
	}
	failed := make([]string, 0, len(r.Checks))
	for name, c := range r.Checks {
		if c.Status != StatusHealthy {
			failed = append(failed, name)
		}
	}
	sort.Strings(failed)
	return fmt.Errorf("%w: %s", ErrCheckFailed, strings.Join(failed, ", "))
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures health check behavior.
type Option func(*config)

// WithTimeout sets the deadline shared by all checks.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger for failed checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Run executes all checks in parallel under one deadline and aggregates the result.
// A check still running when the deadline passes is reported with ErrCheckTimeout.
func Run(ctx context.Context, checks Checks, opts ...Option) *Report {
	cfg := &config{timeout: defaultTimeout, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(checks) == 0 {
		return &Report{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		g       errgroup.Group
		results = make(map[string]Check, len(checks))
		status  = StatusHealthy
	)

	for name, check := range checks {
		g.Go(func() error {
			err := runOne(ctx, check)

			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				results[name] = Check{Status: StatusHealthy}
				return nil
			}

			cfg.logger.WarnContext(ctx, "health check failed",
				slog.String("check", name),
				slog.String("error", err.Error()),
			)
			results[name] = Check{Status: StatusUnhealthy, Error: err.Error()}
			status = StatusUnhealthy
			return nil
		})
	}
	_ = g.Wait()

	return &Report{Status: status, Checks: results}
}

// runOne returns ErrCheckTimeout when ctx expires before check returns.
func runOne(ctx context.Context, check CheckFunc) error {
	if check == nil {
		return ErrCheckMissing
	}
	done := make(chan error, 1)
	go func() { done <- check(ctx) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ErrCheckTimeout
	}
}

// Package session holds the per-student derived state the UI gating depends
// on: the current batch, the student's applications, and the window booleans.
// It replaces the reactive context providers of the old portal with an
// explicit object that is constructed per authenticated student and resynced
// after every mutation.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/eligibility"
	"github.com/ncc-waqfisa-org/ncc-1227-student-portal-sub000/internal/app/models"
)

// BatchFetcher loads the current admissions batch.
type BatchFetcher func(ctx context.Context) (*models.Batch, error)

// ApplicationsFetcher loads a student's applications.
type ApplicationsFetcher func(ctx context.Context, cpr string) ([]*models.Application, error)

// ActiveStatuses is the canonical set of statuses that block a new
// application for the same batch. WITHDRAWN is deliberately excluded: a
// student who withdrew may re-apply while the window is open.
var ActiveStatuses = map[models.Status]bool{
	models.StatusReview:       true,
	models.StatusApproved:     true,
	models.StatusEligible:     true,
	models.StatusNotCompleted: true,
	models.StatusRejected:     true,
}

// Session is the per-student state container. All reads are safe for
// concurrent use; state is replaced wholesale by Resync, never mutated
// optimistically.
type Session struct {
	cpr        string
	fetchBatch BatchFetcher
	fetchApps  ApplicationsFetcher
	eval       *eligibility.WindowEvaluator
	log        zerolog.Logger

	mu    sync.RWMutex
	batch *models.Batch
	apps  []*models.Application
}

// New constructs a session for the given student identity.
func New(cpr string, fetchBatch BatchFetcher, fetchApps ApplicationsFetcher, eval *eligibility.WindowEvaluator, log zerolog.Logger) *Session {
	return &Session{
		cpr:        cpr,
		fetchBatch: fetchBatch,
		fetchApps:  fetchApps,
		eval:       eval,
		log:        log,
	}
}

// Resync re-fetches batch and applications concurrently and replaces the
// held state. A batch fetch failure degrades to "no batch" (all gating
// booleans become false) instead of failing the whole resync; an
// applications fetch failure is returned and leaves the previous state
// untouched.
func (s *Session) Resync(ctx context.Context) error {
	var (
		batch *models.Batch
		apps  []*models.Application
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b, err := s.fetchBatch(ctx)
		if err != nil {
			s.log.Warn().Err(err).Str("cpr", s.cpr).Msg("Batch fetch failed, gating conservatively")
			return nil
		}
		batch = b
		return nil
	})

	g.Go(func() error {
		a, err := s.fetchApps(ctx, s.cpr)
		if err != nil {
			return err
		}
		apps = a
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	eligibility.SortByStatus(apps)

	s.mu.Lock()
	s.batch = batch
	s.apps = apps
	s.mu.Unlock()

	return nil
}

// Batch returns the current batch, or nil when none is known.
func (s *Session) Batch() *models.Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch
}

// Applications returns the held applications, best status first.
func (s *Session) Applications() []*models.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Application, len(s.apps))
	copy(out, s.apps)
	return out
}

// SignUpOpen reports whether sign-up is open for the held batch.
func (s *Session) SignUpOpen() bool {
	return s.eval.SignUpOpen(s.Batch())
}

// NewApplicationOpen reports whether a new application may be created.
func (s *Session) NewApplicationOpen() bool {
	return s.eval.NewApplicationOpen(s.Batch())
}

// EditingOpen reports whether editing is open for the held batch, without
// any per-university extension.
func (s *Session) EditingOpen() bool {
	return s.eval.EditingOpen(s.Batch())
}

// HaveActiveApplication reports whether the student holds an active
// application for the current batch year.
func (s *Session) HaveActiveApplication() bool {
	return s.ActiveApplication() != nil
}

// ActiveApplication returns the student's active application for the current
// batch, or nil.
func (s *Session) ActiveApplication() *models.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.batch == nil {
		return nil
	}
	for _, app := range s.apps {
		if app.BatchYear == s.batch.BatchYear && ActiveStatuses[app.Status] {
			return app
		}
	}
	return nil
}

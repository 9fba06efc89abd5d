// Package sales is the durable record of completed sales, saved drafts and
// the current staff selection.
package sales

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/FuadAliah/celtis-pos/internal/kvstore"
	"github.com/FuadAliah/celtis-pos/internal/staff"
	pkgerrors "github.com/FuadAliah/celtis-pos/pkg/errors"
	"github.com/FuadAliah/celtis-pos/pkg/logger"
	"github.com/FuadAliah/celtis-pos/pkg/metrics"
	"go.uber.org/multierr"
)

// Fixed storage keys.
const (
	KeySales        = "restaurant_sales"
	KeyDrafts       = "restaurant_drafts"
	KeyCurrentStaff = "restaurant_current_staff"
)

const defaultTimeout = 2 * time.Second

type Options struct {
	// PersistEmpty writes an emptied collection back as []. When false an
	// empty collection is never written and the stored copy is left as is.
	PersistEmpty bool
	Timeout      time.Duration
	Metrics      *metrics.POSMetrics
}

// Store keeps sales and drafts newest first. Every mutation rewrites the whole
// collection to the medium. When the medium fails the store degrades to memory
// only and stops writing for the rest of the process.
type Store struct {
	mu           sync.RWMutex
	medium       kvstore.Medium
	logg         *logger.Logger
	metrics      *metrics.POSMetrics
	persistEmpty bool
	timeout      time.Duration

	sales    []Sale
	drafts   []Sale
	staff    *staff.Member
	degraded bool
}

func NewStore(medium kvstore.Medium, logg *logger.Logger, opts Options) (*Store, error) {
	if medium == nil {
		return nil, fmt.Errorf("kv medium required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Store{
		medium:       medium,
		logg:         logg,
		metrics:      opts.Metrics,
		persistEmpty: opts.PersistEmpty,
		timeout:      timeout,
		sales:        []Sale{},
		drafts:       []Sale{},
	}, nil
}

// Load reads each key once. A missing key means empty. Any failure degrades
// the store and is returned as a STORAGE_UNAVAILABLE error for logging; the
// store stays usable.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs error

	var loadedSales []Sale
	if found, err := s.read(ctx, KeySales, &loadedSales); err != nil {
		errs = multierr.Append(errs, err)
	} else if found && loadedSales != nil {
		s.sales = loadedSales
	}

	var loadedDrafts []Sale
	if found, err := s.read(ctx, KeyDrafts, &loadedDrafts); err != nil {
		errs = multierr.Append(errs, err)
	} else if found && loadedDrafts != nil {
		s.drafts = loadedDrafts
	}

	var member staff.Member
	if found, err := s.read(ctx, KeyCurrentStaff, &member); err != nil {
		errs = multierr.Append(errs, err)
	} else if found {
		s.staff = &member
	}

	if errs != nil {
		s.degrade(ctx, "load", errs)
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, errs, "loading transaction store")
	}
	return nil
}

func (s *Store) read(ctx context.Context, key string, dest any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, found, err := s.medium.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

// AppendSale records a completed sale at the front of the list.
func (s *Store) AppendSale(ctx context.Context, sale Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append([]Sale{sale.Clone()}, s.sales...)
	s.persist(ctx, KeySales, s.sales, len(s.sales) == 0)
}

// Sales returns every recorded sale, newest first.
func (s *Store) Sales() []Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.sales)
}

// Sale looks up a recorded sale by id.
func (s *Store) Sale(id string) (Sale, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sale := range s.sales {
		if sale.ID == id {
			return sale.Clone(), true
		}
	}
	return Sale{}, false
}

// AddDraft stores a draft at the front of the draft list.
func (s *Store) AddDraft(ctx context.Context, draft Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = append([]Sale{draft.Clone()}, s.drafts...)
	s.persist(ctx, KeyDrafts, s.drafts, len(s.drafts) == 0)
}

// Drafts returns the saved drafts, newest first.
func (s *Store) Drafts() []Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.drafts)
}

func (s *Store) Draft(id string) (Sale, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.drafts {
		if d.ID == id {
			return d.Clone(), true
		}
	}
	return Sale{}, false
}

// RemoveDraft deletes a draft and returns it.
func (s *Store) RemoveDraft(ctx context.Context, id string) (Sale, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.drafts {
		if d.ID != id {
			continue
		}
		s.drafts = append(s.drafts[:i:i], s.drafts[i+1:]...)
		s.persist(ctx, KeyDrafts, s.drafts, len(s.drafts) == 0)
		return d, true
	}
	return Sale{}, false
}

// CurrentStaff returns the staff member acting on the terminal.
func (s *Store) CurrentStaff() (staff.Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.staff == nil {
		return staff.Member{}, false
	}
	return *s.staff, true
}

// SetCurrentStaff stores the selection; nil clears it and deletes the key.
func (s *Store) SetCurrentStaff(ctx context.Context, member *staff.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if member == nil {
		s.staff = nil
		s.remove(ctx, KeyCurrentStaff)
		return
	}
	m := *member
	s.staff = &m
	s.persist(ctx, KeyCurrentStaff, m, false)
}

// Degraded reports whether the store has stopped writing to the medium.
func (s *Store) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// Ping checks the medium. A degraded store is reported unavailable.
func (s *Store) Ping(ctx context.Context) error {
	if s.Degraded() {
		return pkgerrors.New(pkgerrors.CodeStorageUnavailable, "transaction store is running in memory only")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.medium.Ping(ctx)
}

func (s *Store) persist(ctx context.Context, key string, value any, empty bool) {
	if s.degraded {
		return
	}
	if empty && !s.persistEmpty {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		s.degrade(ctx, "save", fmt.Errorf("encoding %s: %w", key, err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.medium.Set(ctx, key, string(payload)); err != nil {
		s.degrade(ctx, "save", fmt.Errorf("writing %s: %w", key, err))
		return
	}
	s.metrics.ObserveWrite(key, time.Since(start))
}

func (s *Store) remove(ctx context.Context, key string) {
	if s.degraded {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.medium.Delete(ctx, key); err != nil {
		s.degrade(ctx, "delete", fmt.Errorf("deleting %s: %w", key, err))
	}
}

// degrade must be called with mu held.
func (s *Store) degrade(ctx context.Context, op string, err error) {
	s.metrics.IncStorageFailure(op)
	if !s.degraded {
		s.degraded = true
		s.metrics.SetDegraded(true)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		ctx = s.logg.WithField(ctx, "timeout", s.timeout.String())
	}
	typed := pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "storage "+op+" failed; continuing in memory")
	ctx = s.logg.WithFields(ctx, pkgerrors.Dump(typed).Fields())
	s.logg.Error(ctx, "sales.storage_degraded", typed)
}

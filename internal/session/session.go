// Package session tracks which screen the terminal shows and who is operating
// it. Both survive a restart through the key-value medium.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/FuadAliah/celtis-pos/internal/kvstore"
	"github.com/FuadAliah/celtis-pos/internal/sales"
	"github.com/FuadAliah/celtis-pos/internal/staff"
	"github.com/FuadAliah/celtis-pos/pkg/enums"
	pkgerrors "github.com/FuadAliah/celtis-pos/pkg/errors"
	"github.com/FuadAliah/celtis-pos/pkg/logger"
)

// KeyCurrentView holds the active screen as a JSON string.
const KeyCurrentView = "restaurant_current_view"

type Options struct {
	// RestoreView reopens the last screen on startup instead of pos.
	RestoreView bool
	Timeout     time.Duration
}

// Snapshot is the session as reported to clients.
type Snapshot struct {
	View  enums.View    `json:"view"`
	Staff *staff.Member `json:"staff"`
}

type State struct {
	mu          sync.RWMutex
	medium      kvstore.Medium
	store       *sales.Store
	directory   *staff.Directory
	logg        *logger.Logger
	restoreView bool
	timeout     time.Duration

	view        enums.View
	viewOffline bool
}

func New(medium kvstore.Medium, store *sales.Store, directory *staff.Directory, logg *logger.Logger, opts Options) (*State, error) {
	if medium == nil {
		return nil, fmt.Errorf("kv medium required")
	}
	if store == nil {
		return nil, fmt.Errorf("sales store required")
	}
	if directory == nil {
		return nil, fmt.Errorf("staff directory required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &State{
		medium:      medium,
		store:       store,
		directory:   directory,
		logg:        logg,
		restoreView: opts.RestoreView,
		timeout:     timeout,
		view:        enums.ViewPOS,
	}, nil
}

// Load restores the last view when configured to. The staff selection is
// restored by the sales store.
func (s *State) Load(ctx context.Context) error {
	if !s.restoreView {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, found, err := s.medium.Get(ctx, KeyCurrentView)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "reading current view")
	}
	if !found {
		return nil
	}
	var name string
	if err := json.Unmarshal([]byte(raw), &name); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "decoding current view")
	}
	view, err := enums.ParseView(name)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "decoding current view")
	}

	s.mu.Lock()
	s.view = view
	s.mu.Unlock()
	return nil
}

func (s *State) View() enums.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetView switches the screen and persists it.
func (s *State) SetView(ctx context.Context, view enums.View) error {
	if !view.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown view").WithDetails(map[string]any{"view": view.String()})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
	if s.viewOffline {
		return nil
	}

	payload, _ := json.Marshal(view.String())
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.medium.Set(ctx, KeyCurrentView, string(payload)); err != nil {
		s.viewOffline = true
		s.logg.Error(s.logg.WithField(ctx, "key", KeyCurrentView), "session.view_persist_failed",
			pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "persisting current view"))
	}
	return nil
}

// CurrentStaff returns the acting staff member, if any.
func (s *State) CurrentStaff() (staff.Member, bool) {
	return s.store.CurrentStaff()
}

// SelectStaff makes an active directory member the acting staff.
func (s *State) SelectStaff(ctx context.Context, staffID string) (staff.Member, error) {
	member, ok := s.directory.Get(staffID)
	if !ok {
		return staff.Member{}, pkgerrors.New(pkgerrors.CodeNotFound, "staff member not found")
	}
	if !member.Active {
		return staff.Member{}, pkgerrors.New(pkgerrors.CodeValidation, "staff member is inactive").WithDetails(map[string]any{"staffId": staffID})
	}
	s.store.SetCurrentStaff(ctx, &member)
	return member, nil
}

func (s *State) ClearStaff(ctx context.Context) {
	s.store.SetCurrentStaff(ctx, nil)
}

func (s *State) Snapshot() Snapshot {
	snap := Snapshot{View: s.View()}
	if member, ok := s.CurrentStaff(); ok {
		snap.Staff = &member
	}
	return snap
}

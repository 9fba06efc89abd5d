package session

import (
	"context"
	"errors"
	"testing"

	"github.com/FuadAliah/celtis-pos/internal/kvstore"
	"github.com/FuadAliah/celtis-pos/internal/sales"
	"github.com/FuadAliah/celtis-pos/internal/staff"
	"github.com/FuadAliah/celtis-pos/pkg/enums"
	pkgerrors "github.com/FuadAliah/celtis-pos/pkg/errors"
	"github.com/FuadAliah/celtis-pos/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, medium kvstore.Medium, directory *staff.Directory, restoreView bool) *State {
	t.Helper()
	store, err := sales.NewStore(medium, logger.Nop(), sales.Options{PersistEmpty: true})
	require.NoError(t, err)
	require.NoError(t, store.Load(context.Background()))
	state, err := New(medium, store, directory, logger.Nop(), Options{RestoreView: restoreView})
	require.NoError(t, err)
	require.NoError(t, state.Load(context.Background()))
	return state
}

func TestNewRequiresDeps(t *testing.T) {
	store, err := sales.NewStore(kvstore.NewMemory(), logger.Nop(), sales.Options{})
	require.NoError(t, err)

	_, err = New(nil, store, staff.NewDirectory(), logger.Nop(), Options{})
	assert.Error(t, err)
	_, err = New(kvstore.NewMemory(), nil, staff.NewDirectory(), logger.Nop(), Options{})
	assert.Error(t, err)
	_, err = New(kvstore.NewMemory(), store, nil, logger.Nop(), Options{})
	assert.Error(t, err)
	_, err = New(kvstore.NewMemory(), store, staff.NewDirectory(), nil, Options{})
	assert.Error(t, err)
}

func TestViewStartsAtPOSUnlessRestored(t *testing.T) {
	ctx := context.Background()
	medium := kvstore.NewMemory()

	state := newTestState(t, medium, staff.NewDirectory(), false)
	assert.Equal(t, enums.ViewPOS, state.View())
	require.NoError(t, state.SetView(ctx, enums.ViewHistory))
	assert.Equal(t, enums.ViewHistory, state.View())

	raw, found, err := medium.Get(ctx, KeyCurrentView)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `"history"`, raw)

	fresh := newTestState(t, medium, staff.NewDirectory(), false)
	assert.Equal(t, enums.ViewPOS, fresh.View())

	restored := newTestState(t, medium, staff.NewDirectory(), true)
	assert.Equal(t, enums.ViewHistory, restored.View())
}

func TestSetViewRejectsUnknown(t *testing.T) {
	state := newTestState(t, kvstore.NewMemory(), staff.NewDirectory(), false)
	err := state.SetView(context.Background(), enums.View("kitchen"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestStaffSelectionPersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	medium := kvstore.NewMemory()
	state := newTestState(t, medium, staff.NewDirectory(), false)

	_, ok := state.CurrentStaff()
	assert.False(t, ok)

	member, err := state.SelectStaff(ctx, "staff-3")
	require.NoError(t, err)
	assert.Equal(t, "Mike Johnson", member.Name)

	restarted := newTestState(t, medium, staff.NewDirectory(), false)
	snap := restarted.Snapshot()
	require.NotNil(t, snap.Staff)
	assert.Equal(t, "staff-3", snap.Staff.ID)
	assert.Equal(t, enums.ViewPOS, snap.View)

	restarted.ClearStaff(ctx)
	assert.Nil(t, restarted.Snapshot().Staff)
	_, found, err := medium.Get(ctx, sales.KeyCurrentStaff)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSelectStaffValidatesDirectory(t *testing.T) {
	directory := staff.NewDirectoryFrom([]staff.Member{
		{ID: "on", Name: "On", Role: enums.StaffRoleCashier, Active: true},
		{ID: "off", Name: "Off", Role: enums.StaffRoleServer, Active: false},
	})
	state := newTestState(t, kvstore.NewMemory(), directory, false)

	_, err := state.SelectStaff(context.Background(), "ghost")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	_, err = state.SelectStaff(context.Background(), "off")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, ok := state.CurrentStaff()
	assert.False(t, ok)
}

type brokenMedium struct {
	*kvstore.Memory
	sets int
}

func (b *brokenMedium) Set(context.Context, string, string) error {
	b.sets++
	return errors.New("read-only filesystem")
}

func TestViewPersistFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	medium := &brokenMedium{Memory: kvstore.NewMemory()}
	state := newTestState(t, medium, staff.NewDirectory(), true)

	require.NoError(t, state.SetView(ctx, enums.ViewHistory))
	require.NoError(t, state.SetView(ctx, enums.ViewPOS))
	assert.Equal(t, enums.ViewPOS, state.View())
	assert.Equal(t, 1, medium.sets, "writes stop after the first failure")
}

package staff

import (
	"testing"

	"github.com/FuadAliah/celtis-pos/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDirectory(t *testing.T) {
	d := NewDirectory()
	require.Len(t, d.All(), 5)
	assert.Len(t, d.Active(), 5)

	m, ok := d.Get("staff-1")
	require.True(t, ok)
	assert.Equal(t, "John Doe", m.Name)
	assert.Equal(t, enums.StaffRoleManager, m.Role)
	assert.Equal(t, "EMP001", m.EmployeeID)

	_, ok = d.Get("staff-9")
	assert.False(t, ok)
}

func TestActiveSkipsInactive(t *testing.T) {
	d := NewDirectoryFrom([]Member{
		{ID: "a", Name: "A", Role: enums.StaffRoleCashier, Active: true},
		{ID: "b", Name: "B", Role: enums.StaffRoleServer, Active: false},
	})
	active := d.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "a", active[0].ID)

	_, ok := d.Get("b")
	assert.True(t, ok, "inactive members are still resolvable")
}

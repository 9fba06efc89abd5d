// Package staff is the directory of people who can operate the terminal.
package staff

import "github.com/FuadAliah/celtis-pos/pkg/enums"

// Member is one staff record. The JSON form is also what the session slot
// persists.
type Member struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Role       enums.StaffRole `json:"role"`
	EmployeeID string          `json:"employeeId"`
	Active     bool            `json:"active"`
}

var seed = []Member{
	{ID: "staff-1", Name: "John Doe", Role: enums.StaffRoleManager, EmployeeID: "EMP001", Active: true},
	{ID: "staff-2", Name: "Jane Smith", Role: enums.StaffRoleCashier, EmployeeID: "EMP002", Active: true},
	{ID: "staff-3", Name: "Mike Johnson", Role: enums.StaffRoleServer, EmployeeID: "EMP003", Active: true},
	{ID: "staff-4", Name: "Sarah Williams", Role: enums.StaffRoleCashier, EmployeeID: "EMP004", Active: true},
	{ID: "staff-5", Name: "David Brown", Role: enums.StaffRoleServer, EmployeeID: "EMP005", Active: true},
}

// Directory is a read-only list of staff.
type Directory struct {
	members []Member
}

// NewDirectory returns the built-in staff list.
func NewDirectory() *Directory {
	return NewDirectoryFrom(seed)
}

// NewDirectoryFrom builds a directory over members, e.g. in tests.
func NewDirectoryFrom(members []Member) *Directory {
	return &Directory{members: append([]Member(nil), members...)}
}

// All returns every member including inactive ones.
func (d *Directory) All() []Member {
	return append([]Member(nil), d.members...)
}

// Active returns the members that may be selected.
func (d *Directory) Active() []Member {
	out := make([]Member, 0, len(d.members))
	for _, m := range d.members {
		if m.Active {
			out = append(out, m)
		}
	}
	return out
}

func (d *Directory) Get(id string) (Member, bool) {
	for _, m := range d.members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

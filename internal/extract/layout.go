// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"fmt"
	"slices"

	"github.com/pdiddy/grade-report/pkg/types"
)

// ErrUnknownColumn is returned by ParseLayout for an unrecognised role name.
var ErrUnknownColumn = errors.New("unknown column")

// Layout is the ordered column roles of a grade table.
type Layout struct {
	roles []types.Role
}

var (
	// DefaultLayout is the four-column export: date, teacher, subject, grade.
	DefaultLayout = Layout{roles: []types.Role{types.RoleDate, types.RoleTeacher, types.RoleSubject, types.RoleGrade}}

	// WilmaLayout is the six-column export with an additional-info column
	// before the grade and a verbal assessment after it.
	WilmaLayout = mustLayout("date", "teacher", "subject", "info", "grade", "verbal")
)

// Presets maps layout names accepted by --layout to layouts.
var Presets = map[string]Layout{
	"default": DefaultLayout,
	"wilma":   WilmaLayout,
}

// ParseLayout builds a Layout from column role names. Each of date,
// teacher, subject and grade must appear exactly once.
func ParseLayout(columns []string) (Layout, error) {
	if len(columns) == 0 {
		return Layout{roles: slices.Clone(requiredRoles)}, nil
	}
	seen := make(map[types.Role]bool)
	roles := make([]types.Role, 0, len(columns))
	for _, c := range columns {
		r, err := types.ParseRole(c)
		if err != nil {
			return Layout{}, fmt.Errorf("%w: %q", ErrUnknownColumn, c)
		}
		if !r.Dropped() {
			if seen[r] {
				return Layout{}, fmt.Errorf("column %q listed twice", r)
			}
			seen[r] = true
		}
		roles = append(roles, r)
	}
	for _, r := range requiredRoles {
		if !seen[r] {
			return Layout{}, fmt.Errorf("layout has no %q column", r)
		}
	}
	return Layout{roles: roles}, nil
}

var requiredRoles = []types.Role{types.RoleDate, types.RoleTeacher, types.RoleSubject, types.RoleGrade}

func mustLayout(columns ...string) Layout {
	l, err := ParseLayout(columns)
	if err != nil {
		panic(err)
	}
	return l
}

// Width is the number of cells a row must have.
func (l Layout) Width() int { return len(l.roles) }

// Roles returns the column roles in order.
func (l Layout) Roles() []types.Role {
	return append([]types.Role(nil), l.roles...)
}

func (l Layout) String() string {
	return fmt.Sprint(l.roles)
}

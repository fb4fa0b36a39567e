package cascade

import (
	"fmt"
	"strings"
)

// Role is a section's position in the page's reveal choreography. It selects
// the container's entrance side and the stagger direction of its characters.
type Role uint8

const (
	RoleLeading    Role = iota // enters from the right, characters in reading order
	RoleEmphasized             // enters from the left, characters in mirrored order
	RoleTrailing               // enters from the right, characters in reading order
)

// String returns the lowercase role name used in configuration files.
func (r Role) String() string {
	switch r {
	case RoleLeading:
		return "leading"
	case RoleEmphasized:
		return "emphasized"
	case RoleTrailing:
		return "trailing"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// ParseRole converts a role name (case-insensitive) to a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "leading":
		return RoleLeading, nil
	case "emphasized":
		return RoleEmphasized, nil
	case "trailing":
		return RoleTrailing, nil
	}
	return 0, fmt.Errorf("cascade: unknown role %q", s)
}

// RoleRule assigns a role to the section at index among count siblings.
type RoleRule func(index, count int) Role

// DefaultRoleRule emphasizes the second section when there are at least
// three, so the middle of a three-title stack enters from the opposite side.
func DefaultRoleRule(index, count int) Role {
	switch {
	case index == 1 && count >= 3:
		return RoleEmphasized
	case index == 0:
		return RoleLeading
	default:
		return RoleTrailing
	}
}

// AlternatingRoleRule emphasizes every odd section, for pages with any number
// of titles.
func AlternatingRoleRule(index, count int) Role {
	switch {
	case index%2 == 1:
		return RoleEmphasized
	case index == 0:
		return RoleLeading
	default:
		return RoleTrailing
	}
}

// RoleStyle is the entrance a role produces.
type RoleStyle struct {
	// InitialX is the container's starting horizontal offset in percent of
	// its own width. Positive starts to the right.
	InitialX float64
	// Reversed staggers characters from last to first.
	Reversed bool
}

// RoleStyles looks up the style for each role.
type RoleStyles map[Role]RoleStyle

// DefaultRoleStyles is used when Options.RoleStyles is nil.
var DefaultRoleStyles = RoleStyles{
	RoleLeading:    {InitialX: 100},
	RoleEmphasized: {InitialX: -100, Reversed: true},
	RoleTrailing:   {InitialX: 100},
}

// Style returns the style for r, falling back to DefaultRoleStyles and then
// to a right-side, forward entrance.
func (rs RoleStyles) Style(r Role) RoleStyle {
	if s, ok := rs[r]; ok {
		return s
	}
	if s, ok := DefaultRoleStyles[r]; ok {
		return s
	}
	return RoleStyle{InitialX: 100}
}

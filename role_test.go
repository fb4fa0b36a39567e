package cascade

import "testing"

func TestDefaultRoleRule(t *testing.T) {
	tests := []struct {
		name         string
		index, count int
		want         Role
	}{
		{"single", 0, 1, RoleLeading},
		{"second of two", 1, 2, RoleTrailing},
		{"first of three", 0, 3, RoleLeading},
		{"middle of three", 1, 3, RoleEmphasized},
		{"last of three", 2, 3, RoleTrailing},
		{"second of five", 1, 5, RoleEmphasized},
		{"fourth of five", 3, 5, RoleTrailing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultRoleRule(tt.index, tt.count); got != tt.want {
				t.Errorf("DefaultRoleRule(%d, %d) = %v, want %v", tt.index, tt.count, got, tt.want)
			}
		})
	}
}

func TestAlternatingRoleRule(t *testing.T) {
	want := []Role{RoleLeading, RoleEmphasized, RoleTrailing, RoleEmphasized, RoleTrailing}
	for i, w := range want {
		if got := AlternatingRoleRule(i, len(want)); got != w {
			t.Errorf("AlternatingRoleRule(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range []Role{RoleLeading, RoleEmphasized, RoleTrailing} {
		got, err := ParseRole(r.String())
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", r, err)
		}
		if got != r {
			t.Errorf("ParseRole(%q) = %v", r, got)
		}
	}
	if got, err := ParseRole("  Emphasized "); err != nil || got != RoleEmphasized {
		t.Errorf("ParseRole should trim and ignore case, got %v, %v", got, err)
	}
	if _, err := ParseRole("middle"); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestRoleStylesFallback(t *testing.T) {
	custom := RoleStyles{RoleTrailing: {InitialX: 40, Reversed: true}}

	if s := custom.Style(RoleTrailing); s.InitialX != 40 || !s.Reversed {
		t.Errorf("custom style not used: %+v", s)
	}
	if s := custom.Style(RoleEmphasized); s.InitialX != -100 || !s.Reversed {
		t.Errorf("missing role should fall back to defaults: %+v", s)
	}
	if s := custom.Style(Role(42)); s.InitialX != 100 || s.Reversed {
		t.Errorf("unknown role should enter from the right: %+v", s)
	}
	var none RoleStyles
	if s := none.Style(RoleLeading); s.InitialX != 100 || s.Reversed {
		t.Errorf("nil styles should use defaults: %+v", s)
	}
}

func TestRoleStringUnknown(t *testing.T) {
	if got := Role(9).String(); got != "role(9)" {
		t.Errorf("Role(9).String() = %q", got)
	}
}

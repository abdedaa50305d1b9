package model

import "testing"

func TestEffectiveRoleAdminCombinations(t *testing.T) {
	// Any one of the three admin signals is enough; they are independent.
	cases := []struct {
		name  string
		role  string
		staff bool
		super bool
		want  string
	}{
		{"plain member", RoleMember, false, false, RoleMember},
		{"role admin only", RoleAdmin, false, false, RoleAdmin},
		{"staff only", RoleMember, true, false, RoleAdmin},
		{"superuser only", RoleMember, false, true, RoleAdmin},
		{"role and staff", RoleAdmin, true, false, RoleAdmin},
		{"role and superuser", RoleAdmin, false, true, RoleAdmin},
		{"staff and superuser", RoleMember, true, true, RoleAdmin},
		{"all three", RoleAdmin, true, true, RoleAdmin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := Identity{Role: tc.role, IsStaff: tc.staff, IsSuperuser: tc.super}
			if got := id.EffectiveRole(); got != tc.want {
				t.Fatalf("EffectiveRole() = %q, want %q", got, tc.want)
			}
			wantAdmin := tc.want == RoleAdmin
			if got := id.IsEffectiveAdmin(); got != wantAdmin {
				t.Fatalf("IsEffectiveAdmin() = %v, want %v", got, wantAdmin)
			}
		})
	}
}

func TestEffectiveRolePreservesNonAdminRoles(t *testing.T) {
	lead := Identity{Role: RoleTeamLead}
	if got := lead.EffectiveRole(); got != RoleTeamLead {
		t.Fatalf("team lead resolved to %q", got)
	}
	if lead.IsEffectiveAdmin() {
		t.Fatal("team lead must not be effectively admin")
	}
}

func TestEffectiveRoleEmptyDegradesToMember(t *testing.T) {
	// A backend payload without a role field still yields a usable identity.
	anon := Identity{}
	if got := anon.EffectiveRole(); got != RoleMember {
		t.Fatalf("empty role resolved to %q, want member", got)
	}
}

func TestValidRole(t *testing.T) {
	for _, ok := range []string{RoleMember, RoleAdmin, RoleTeamLead, " admin "} {
		if !ValidRole(ok) {
			t.Errorf("ValidRole(%q) = false", ok)
		}
	}
	for _, bad := range []string{"", "root", "ADMIN"} {
		if ValidRole(bad) {
			t.Errorf("ValidRole(%q) = true", bad)
		}
	}
}

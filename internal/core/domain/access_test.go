package domain

import "testing"

func TestDecide_UnauthenticatedAlwaysLogin(t *testing.T) {
	for name, area := range Areas {
		d := Decide("", area)
		if d.Outcome != AccessRedirectLogin {
			t.Fatalf("area %s: expected redirect_login for unauthenticated, got %s", name, d.Outcome)
		}
		if d.Redirect != "login" {
			t.Fatalf("area %s: expected redirect to login, got %q", name, d.Redirect)
		}
	}
}

func TestDecide_AllowedRole(t *testing.T) {
	cases := []struct {
		role Role
		area Area
	}{
		{RoleSuperAdmin, AreaAdminOverview},
		{RoleCityAdmin, AreaCityAdminOverview},
		{RoleCitizen, AreaCitizenOverview},
		{RoleCitizen, AreaReport},
		{RoleCitizen, AreaCommunity},
	}
	for _, tc := range cases {
		d := Decide(tc.role, tc.area)
		if d.Outcome != AccessAllow {
			t.Fatalf("role %s area %s: expected allow, got %s", tc.role, tc.area.Name, d.Outcome)
		}
	}
}

func TestDecide_UnrestrictedAreaAllowsAnyRole(t *testing.T) {
	for _, role := range []Role{RoleSuperAdmin, RoleCityAdmin, RoleCitizen} {
		d := Decide(role, AreaProfile)
		if d.Outcome != AccessAllow {
			t.Fatalf("role %s: expected allow on profile, got %s", role, d.Outcome)
		}
	}
}

func TestDecide_DisallowedRoleRedirectsHome(t *testing.T) {
	cases := []struct {
		role Role
		area Area
		home string
	}{
		{RoleCitizen, AreaAdminOverview, "dashboard"},
		{RoleCityAdmin, AreaAdminOverview, "city-admin"},
		{RoleSuperAdmin, AreaCitizenOverview, "admin"},
		{RoleCityAdmin, AreaReport, "city-admin"},
	}
	for _, tc := range cases {
		d := Decide(tc.role, tc.area)
		if d.Outcome != AccessRedirectHome {
			t.Fatalf("role %s area %s: expected redirect_home, got %s", tc.role, tc.area.Name, d.Outcome)
		}
		if d.Redirect != tc.home {
			t.Fatalf("role %s area %s: expected redirect %q, got %q", tc.role, tc.area.Name, tc.home, d.Redirect)
		}
	}
}

// Decide must return one of the three outcomes for every role x area pair,
// including roles the system has never seen.
func TestDecide_Total(t *testing.T) {
	roles := []Role{"", RoleSuperAdmin, RoleCityAdmin, RoleCitizen, Role("intruder")}
	for _, role := range roles {
		for name, area := range Areas {
			d := Decide(role, area)
			switch d.Outcome {
			case AccessAllow, AccessRedirectHome, AccessRedirectLogin:
			default:
				t.Fatalf("role %q area %s: unexpected outcome %q", role, name, d.Outcome)
			}
		}
	}
}

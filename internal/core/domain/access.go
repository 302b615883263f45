package domain

// Area is a navigable region of the application. Each area declares the roles
// allowed to enter it; an empty set means any authenticated role may enter.
type Area struct {
	Name         string `json:"name"`
	AllowedRoles []Role `json:"allowed_roles,omitempty"`
}

// The application's areas. AreaProfile carries no role restriction.
var (
	AreaAdminOverview     = Area{Name: "admin", AllowedRoles: []Role{RoleSuperAdmin}}
	AreaCityAdminOverview = Area{Name: "city-admin", AllowedRoles: []Role{RoleCityAdmin}}
	AreaCitizenOverview   = Area{Name: "dashboard", AllowedRoles: []Role{RoleCitizen}}
	AreaReport            = Area{Name: "report", AllowedRoles: []Role{RoleCitizen}}
	AreaCommunity         = Area{Name: "community", AllowedRoles: []Role{RoleCitizen}}
	AreaProfile           = Area{Name: "profile"}
)

// Areas maps area names to their descriptors.
var Areas = map[string]Area{
	AreaAdminOverview.Name:     AreaAdminOverview,
	AreaCityAdminOverview.Name: AreaCityAdminOverview,
	AreaCitizenOverview.Name:   AreaCitizenOverview,
	AreaReport.Name:            AreaReport,
	AreaCommunity.Name:         AreaCommunity,
	AreaProfile.Name:           AreaProfile,
}

// AccessOutcome is the result of an access-policy decision.
type AccessOutcome string

const (
	AccessAllow         AccessOutcome = "allow"
	AccessRedirectHome  AccessOutcome = "redirect_home"
	AccessRedirectLogin AccessOutcome = "redirect_login"
)

// AccessDecision is what the policy returns: the outcome, plus the area the
// caller should be sent to when the outcome is a redirect.
type AccessDecision struct {
	Outcome  AccessOutcome `json:"outcome"`
	Redirect string        `json:"redirect,omitempty"`
}

// HomeArea returns the landing area for a role.
func HomeArea(role Role) Area {
	switch role {
	case RoleSuperAdmin:
		return AreaAdminOverview
	case RoleCityAdmin:
		return AreaCityAdminOverview
	default:
		return AreaCitizenOverview
	}
}

// Decide is the access policy: given the requesting role (empty when
// unauthenticated) and a target area, it returns exactly one of allow,
// redirect-to-home, or redirect-to-login. It is total and side-effect free.
func Decide(role Role, area Area) AccessDecision {
	if role == "" {
		return AccessDecision{Outcome: AccessRedirectLogin, Redirect: "login"}
	}
	if len(area.AllowedRoles) == 0 || RoleAllowed(role, area.AllowedRoles) {
		return AccessDecision{Outcome: AccessAllow}
	}
	return AccessDecision{Outcome: AccessRedirectHome, Redirect: HomeArea(role).Name}
}

// RoleAllowed reports whether role is in the allowed set.
func RoleAllowed(role Role, allowed []Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

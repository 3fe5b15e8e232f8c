package guard

import "github.com/healthifyx/portal/internal/platform/session"

// routeTable is the static destination table, immutable at runtime. Paths are
// the portal's navigation destinations; AllowedRoles nil means public. Every
// API route group is registered against one of these destinations, so the
// table is the single place role access is declared.
var routeTable = []Descriptor{
	{Path: "/"},
	{Path: "/login"},
	{Path: "/register"},

	{Path: "/profile", AllowedRoles: []session.Role{session.RolePatient, session.RoleDoctor}},
	{Path: "/set-location", AllowedRoles: []session.Role{session.RolePatient}},
	{Path: "/appointments", AllowedRoles: []session.Role{session.RolePatient, session.RoleDoctor}},
	{Path: "/book", AllowedRoles: []session.Role{session.RolePatient}},

	{Path: "/records", AllowedRoles: []session.Role{session.RolePatient, session.RoleDoctor}},
	{Path: "/records/add", AllowedRoles: []session.Role{session.RolePatient}},
	{Path: "/records/analyze", AllowedRoles: []session.Role{session.RolePatient}},
	{Path: "/records/analytics", AllowedRoles: []session.Role{session.RoleDoctor}},

	{Path: "/prescriptions", AllowedRoles: []session.Role{session.RolePatient, session.RoleDoctor, session.RoleAdmin}},
	{Path: "/prescriptions/add", AllowedRoles: []session.Role{session.RoleDoctor}},

	{Path: "/availability", AllowedRoles: []session.Role{session.RoleDoctor}},

	{Path: "/admin", AllowedRoles: []session.Role{session.RoleAdmin}},
	{Path: "/admin/appointments", AllowedRoles: []session.Role{session.RoleAdmin}},
	{Path: "/admin/records", AllowedRoles: []session.Role{session.RoleAdmin}},
	{Path: "/admin/stats", AllowedRoles: []session.Role{session.RoleAdmin}},
	{Path: "/admin/prescription-audit", AllowedRoles: []session.Role{session.RoleAdmin}},
	{Path: "/admin/pharmacies", AllowedRoles: []session.Role{session.RoleAdmin}},
}

// Table returns the destination table. Callers must not mutate it.
func Table() []Descriptor {
	return routeTable
}

// Find looks up the descriptor for a destination path.
func Find(path string) (Descriptor, bool) {
	for _, d := range routeTable {
		if d.Path == path {
			return d, true
		}
	}
	return Descriptor{}, false
}

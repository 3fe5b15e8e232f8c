package compose

import "github.com/healthifyx/portal/internal/platform/session"

// ViewID names a top-level page component the client should render.
type ViewID string

const (
	PatientProfileView ViewID = "PatientProfileView"
	DoctorProfileView  ViewID = "DoctorProfileView"
	AdminDashboardView ViewID = "AdminDashboardView"
)

// NavigationItem is one entry of the role-scoped sidebar menu.
type NavigationItem struct {
	Label      string         `json:"label"`
	Icon       string         `json:"icon"`
	Target     string         `json:"target"`
	VisibleFor []session.Role `json:"-"`
}

// masterMenu is the full menu in declaration order. Menu filters it by role;
// the order here is the order each role sees.
var masterMenu = []NavigationItem{
	{Label: "Profile", Icon: "person-circle", Target: "/profile", VisibleFor: []session.Role{session.RolePatient}},
	{Label: "Appointments", Icon: "calendar-event", Target: "/appointments", VisibleFor: []session.Role{session.RolePatient}},
	{Label: "Records", Icon: "folder2-open", Target: "/records", VisibleFor: []session.Role{session.RolePatient}},
	{Label: "Prescriptions", Icon: "capsule-pill", Target: "/prescriptions", VisibleFor: []session.Role{session.RolePatient}},
	{Label: "Health Insights", Icon: "bar-chart-line", Target: "/records/analyze", VisibleFor: []session.Role{session.RolePatient}},

	{Label: "Doctor Profile", Icon: "person-badge", Target: "/profile", VisibleFor: []session.Role{session.RoleDoctor}},
	{Label: "Appointments", Icon: "calendar-check", Target: "/appointments", VisibleFor: []session.Role{session.RoleDoctor}},
	{Label: "Patient Records", Icon: "journal-text", Target: "/records", VisibleFor: []session.Role{session.RoleDoctor}},
	{Label: "Write Prescription", Icon: "plus-square", Target: "/prescriptions/add", VisibleFor: []session.Role{session.RoleDoctor}},
	{Label: "Availability", Icon: "clock-history", Target: "/availability", VisibleFor: []session.Role{session.RoleDoctor}},
	{Label: "Analytics", Icon: "graph-up", Target: "/records/analytics", VisibleFor: []session.Role{session.RoleDoctor}},

	{Label: "Admin Panel", Icon: "tools", Target: "/admin", VisibleFor: []session.Role{session.RoleAdmin}},
	{Label: "All Appointments", Icon: "journal-bookmark", Target: "/admin/appointments", VisibleFor: []session.Role{session.RoleAdmin}},
	{Label: "All Records", Icon: "archive", Target: "/admin/records", VisibleFor: []session.Role{session.RoleAdmin}},
	{Label: "System Stats", Icon: "pie-chart", Target: "/admin/stats", VisibleFor: []session.Role{session.RoleAdmin}},
}

// Menu returns the navigation items visible to the role, in declaration
// order. The result is rebuilt on every call and never cached, so two calls
// with the same role always yield identical sequences.
func Menu(role session.Role) []NavigationItem {
	items := make([]NavigationItem, 0, len(masterMenu))
	for _, item := range masterMenu {
		for _, r := range item.VisibleFor {
			if r == role {
				items = append(items, item)
				break
			}
		}
	}
	return items
}

// ProfileView maps a role to its top-level profile page. An absent or
// unrecognized role resolves to the patient view.
func ProfileView(role session.Role) ViewID {
	switch role {
	case session.RoleDoctor:
		return DoctorProfileView
	case session.RoleAdmin:
		return AdminDashboardView
	default:
		return PatientProfileView
	}
}

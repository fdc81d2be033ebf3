package access

import "github.com/vetcare/central/internal/core/domain"

// Route is a dashboard page and the rule guarding it.
type Route struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Title string `json:"title"`
	Rule  Rule   `json:"-"`
}

var (
	allRoles          = domain.Roles()
	adminVet          = []domain.Role{domain.RoleAdmin, domain.RoleVeterinarian}
	adminReceptionist = []domain.Role{domain.RoleAdmin, domain.RoleReceptionist}
	adminOnly         = []domain.Role{domain.RoleAdmin}
)

var routes = []Route{
	{Name: "dashboard", Path: "/", Title: "Dashboard", Rule: Rule{AllowedRoles: allRoles}},
	{Name: "appointments", Path: "/appointments", Title: "Citas", Rule: Rule{AllowedRoles: allRoles}},
	{Name: "pets", Path: "/pets", Title: "Mascotas", Rule: Rule{AllowedRoles: allRoles}},
	{Name: "records", Path: "/records", Title: "Historiales Médicos", Rule: Rule{AllowedRoles: adminVet}},
	{Name: "clients", Path: "/clients", Title: "Clientes", Rule: Rule{AllowedRoles: adminReceptionist}},
	{Name: "products", Path: "/products", Title: "Productos", Rule: Rule{AllowedRoles: adminReceptionist}},
	{Name: "services", Path: "/services", Title: "Servicios", Rule: Rule{AllowedRoles: adminReceptionist}},
	{Name: "billing", Path: "/billing", Title: "Facturación", Rule: Rule{AllowedRoles: adminReceptionist, Feature: domain.FeatureBillingView}},
	{Name: "staff", Path: "/staff", Title: "Personal", Rule: Rule{AllowedRoles: adminOnly}},
	{Name: "settings", Path: "/settings", Title: "Configuración", Rule: Rule{AllowedRoles: adminOnly}},
}

// Routes returns the dashboard route table in sidebar order.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Navigation returns the routes id may open, in sidebar order. An absent
// identity gets nothing.
func (r *Resolver) Navigation(id *domain.Identity) []Route {
	out := make([]Route, 0, len(routes))
	for _, rt := range routes {
		if r.Decide(domain.Session{Identity: id}, rt.Rule) == Allow {
			out = append(out, rt)
		}
	}
	return out
}

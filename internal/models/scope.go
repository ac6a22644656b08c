package models

// Scope narrows row visibility for tenant-scoped tables. Admin sessions
// get an unrestricted scope; every other session is pinned to its own
// telefono. A non-admin account without telefono gets a scope that is
// not Visible: it sees an empty result set, never an unfiltered one.
type Scope struct {
	All      bool
	Telefono string
}

// ScopeFor derives the row scope for a session.
func ScopeFor(tipoUsuario, telefono string) Scope {
	if tipoUsuario == RoleAdmin {
		return Scope{All: true}
	}
	return Scope{Telefono: telefono}
}

// Visible reports whether the scope can match any row at all. The
// repositories enforce the same rule in SQL: their tenant predicate
// only matches on a non-empty telefono, so rows whose tenant column is
// empty stay out of reach of a phoneless session.
func (s Scope) Visible() bool {
	return s.All || s.Telefono != ""
}

// Tenant resolves the telefonocaso to write on a new row. Admins may
// target any tenant; everyone else always writes into their own.
func (s Scope) Tenant(requested string) string {
	if s.All {
		return requested
	}
	return s.Telefono
}

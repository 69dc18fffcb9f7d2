package session

// Route describes the access a view requires. Zero fields mean no requirement.
type Route struct {
	RequiredRole       Role
	RequiredPermission Permission
}

// Decision is the outcome of a gate check
type Decision struct {
	Allow    bool
	Redirect string
}

// Gate decides whether the session may open a route
type Gate struct {
	session *Session
}

func NewGate(s *Session) *Gate {
	return &Gate{session: s}
}

// Evaluate sends anonymous users to the login page and users lacking the
// role or permission to their own default view.
func (g *Gate) Evaluate(route Route) Decision {
	if !g.session.IsAuthenticated() {
		return Decision{Redirect: PathLogin}
	}
	role := g.session.Role()
	if route.RequiredRole != "" && role != route.RequiredRole {
		return Decision{Redirect: role.HomePath()}
	}
	if route.RequiredPermission != "" && !role.Has(route.RequiredPermission) {
		return Decision{Redirect: role.HomePath()}
	}
	return Decision{Allow: true}
}

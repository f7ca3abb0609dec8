package session

// Decision is the outcome of a route-guard check.
type Decision int

const (
	// RedirectToLogin denies entry: no session, or the wrong role.
	RedirectToLogin Decision = iota
	// Allow grants entry to the protected surface.
	Allow
)

// String returns the decision name for logs.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	default:
		return "unknown"
	}
}

// Guard gates entry to protected surfaces by role. Roles are compared
// by exact string equality; there is no hierarchy, an admin credential
// does not imply customer access or vice versa.
type Guard struct {
	sessions *Service
}

// NewGuard returns a Guard backed by the session service.
func NewGuard(sessions *Service) *Guard {
	return &Guard{sessions: sessions}
}

// CanEnter decides whether the current session may enter a surface
// requiring the given role. An empty requiredRole admits any
// authenticated session. Querying the role triggers the service's
// usual self-heal, so a corrupt credential both denies entry and is
// discarded.
func (g *Guard) CanEnter(requiredRole string) Decision {
	role := g.sessions.Role()
	if role == "" {
		return RedirectToLogin
	}
	if requiredRole != "" && role != requiredRole {
		return RedirectToLogin
	}
	return Allow
}

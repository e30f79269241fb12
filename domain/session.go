package domain

type SessionState int

const (
	Unknown SessionState = iota
	Unauthenticated
	CodeSent
	Authenticated
)

func (s SessionState) String() string {
	switch s {
	case Unauthenticated:
		return "Unauthenticated"
	case CodeSent:
		return "CodeSent"
	case Authenticated:
		return "Authenticated"
	default:
		return "Unknown"
	}
}

// Session is a read-only snapshot of the session manager state.
// It is handed explicitly to every component that needs the current identity.
type Session struct {
	State    SessionState
	Identity *Identity
}

func (s Session) IsAuthenticated() bool {
	return s.State == Authenticated && s.Identity != nil
}

// IdentityID returns the current identity id, empty when not authenticated.
func (s Session) IdentityID() string {
	if !s.IsAuthenticated() {
		return ""
	}
	return s.Identity.ID
}

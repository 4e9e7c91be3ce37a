package domain

// SessionState is the console's belief about the operator's authentication.
type SessionState int

const (
	StateUnverified SessionState = iota
	StateVerifying
	StateAuthenticated
	StateUnauthenticated
)

var sessionStateNames = map[SessionState]string{
	StateUnverified:      "unverified",
	StateVerifying:       "verifying",
	StateAuthenticated:   "authenticated",
	StateUnauthenticated: "unauthenticated",
}

func (s SessionState) String() string {
	if name, ok := sessionStateNames[s]; ok {
		return name
	}
	return "unknown"
}

// validSessionTransitions defines the allowed guard transitions. Logout from
// any state lands in Unauthenticated, so it is listed everywhere.
var validSessionTransitions = map[SessionState][]SessionState{
	StateUnverified:      {StateVerifying, StateUnauthenticated},
	StateVerifying:       {StateAuthenticated, StateUnauthenticated},
	StateAuthenticated:   {StateUnauthenticated, StateAuthenticated},
	StateUnauthenticated: {StateAuthenticated, StateUnauthenticated, StateVerifying},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s SessionState) CanTransitionTo(next SessionState) bool {
	for _, allowed := range validSessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Settled reports whether the state may be rendered. Verifying and
// Unverified render nothing but a loading indicator.
func (s SessionState) Settled() bool {
	return s == StateAuthenticated || s == StateUnauthenticated
}

// Session is a snapshot of the guard.
type Session struct {
	State   SessionState `json:"-"`
	User    *UserProfile `json:"user"`
	Loading bool         `json:"loading"`
}

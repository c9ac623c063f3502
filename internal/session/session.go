package session

import "errors"

var ErrAlreadyBound = errors.New("session already bound to a room")
var ErrTerminated = errors.New("session terminated")

type State int

const (
	Unbound State = iota
	Bound
	Terminated
)

func (s State) String() string {
	switch s {
	case Unbound:
		return "unbound"
	case Bound:
		return "bound"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Binding holds the keys a bound session uses to find its player in the
// room registry.
type Binding struct {
	RoomCode   string
	PlayerID   string
	PlayerName string
}

// Session ties one transport connection to at most one room for its whole
// lifetime.
type Session struct {
	ConnID  string
	state   State
	binding Binding
}

func New(connID string) *Session {
	return &Session{ConnID: connID}
}

func (s *Session) State() State { return s.state }

// Bind moves an unbound session to Bound. It never rebinds.
func (s *Session) Bind(b Binding) error {
	switch s.state {
	case Bound:
		return ErrAlreadyBound
	case Terminated:
		return ErrTerminated
	}
	s.binding = b
	s.state = Bound
	return nil
}

// Binding returns the current binding; ok is false unless the session is Bound.
func (s *Session) Binding() (Binding, bool) {
	if s.state != Bound {
		return Binding{}, false
	}
	return s.binding, true
}

// Terminate ends the session. It returns the binding the session held, if
// any, and is a no-op on an already terminated session.
func (s *Session) Terminate() (Binding, bool) {
	b, ok := s.Binding()
	s.state = Terminated
	s.binding = Binding{}
	return b, ok
}

package livesync

// Mode selects which view a Controller feeds.
type Mode int

const (
	ModeAggregate Mode = iota
	ModeDetail
)

func (m Mode) String() string {
	switch m {
	case ModeAggregate:
		return "aggregate"
	case ModeDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// ConnState is the push channel's connection state.
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
)

func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

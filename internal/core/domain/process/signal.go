package process

// ProcessSignal represents signals that can be sent to processes
type ProcessSignal int

const (
	SignalTerminate ProcessSignal = iota // SIGTERM
	SignalInterrupt                      // SIGINT
	SignalKill                           // SIGKILL
)

// String returns the conventional signal name
func (s ProcessSignal) String() string {
	switch s {
	case SignalInterrupt:
		return "SIGINT"
	case SignalKill:
		return "SIGKILL"
	default:
		return "SIGTERM"
	}
}

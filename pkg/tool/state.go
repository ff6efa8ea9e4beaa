package tool

// State identifies the machine's current mode.
type State uint8

const (
	// StateIdle means the placement tool is inactive.
	StateIdle State = iota

	// StateAwaitingSelection means the tool is active but no definition is
	// resolved: the chooser is up, or a re-selection was cancelled.
	StateAwaitingSelection

	// StatePlacingInstance means a pending instance follows the pointer
	// inside an open transaction.
	StatePlacingInstance
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingSelection:
		return "awaiting-selection"
	case StatePlacingInstance:
		return "placing-instance"
	default:
		return "unknown"
	}
}

package component

// MovementState is the movement the on-screen control zones request.
type MovementState int

const (
	MovementStatic MovementState = iota
	MovementForward
	MovementLeft
	MovementRight
)

func (s MovementState) String() string {
	switch s {
	case MovementForward:
		return "forward"
	case MovementLeft:
		return "left"
	case MovementRight:
		return "right"
	default:
		return "static"
	}
}

// Player holds movement tuning and the current movement request.
type Player struct {
	MoveSpeed     float64
	RotationSpeed float64
	Gravity       float64
	Radius        float64

	// Zone is set by the control zone UI; Keys by the keyboard. Keys win.
	Zone  MovementState
	Keys  MovementState
	State MovementState
}

var PlayerComponent = NewComponent[Player]()

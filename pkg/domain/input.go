package domain

// Button identifies the mouse button of a click event.
type Button int

const (
	ButtonLeft Button = iota + 1
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	default:
		return "unknown"
	}
}

// Key names a key press the application reacts to.
type Key string

const (
	KeyQuit     Key = "quit"
	KeySnapshot Key = "snapshot"
)

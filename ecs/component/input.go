package component

// Input stores per-frame input state for an entity. *Pressed fields are true
// only on the frame the button went down.
type Input struct {
	PointerX float64
	PointerY float64

	Primary        bool
	PrimaryPressed bool

	Forward bool
	Left    bool
	Right   bool

	SelectPrevPressed bool
	SelectNextPressed bool
	ConfirmPressed    bool
	ReportPressed     bool
}

var InputComponent = NewComponent[Input]()

package component

// CaptureCamera is the virtual camera that renders into the capture buffer.
// It rides on its owner's transform, raised by EyeHeight.
type CaptureCamera struct {
	FOV       float64
	Near      float64
	Far       float64
	EyeHeight float64
	Pitch     float64
}

var CaptureCameraComponent = NewComponent[CaptureCamera]()

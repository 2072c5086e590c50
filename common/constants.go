package common

const (
	TPS        = 60
	FixedDelta = 1.0 / TPS

	ScreenWidth  = 1280
	ScreenHeight = 720

	DefaultCharacterRadius = 0.3

	// CursorHotspot is where the mode cursors point, in cursor pixels.
	CursorHotspot = 8
	CursorSize    = 17
)

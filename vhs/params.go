// Package vhs is the tape-look post process applied when the capture buffer
// is drawn to the screen.
package vhs

// Params are the effect tweakables. Time and jitter are driven by the effect
// itself.
type Params struct {
	NoiseIntensity    float64 `yaml:"noise_intensity"`
	NoiseScale        float64 `yaml:"noise_scale"`
	ScanlineIntensity float64 `yaml:"scanline_intensity"`
	ScanlineCount     float64 `yaml:"scanline_count"`
	ScanlineSpeed     float64 `yaml:"scanline_speed"`
	Chromatic         float64 `yaml:"chromatic"`
	WobbleAmp         float64 `yaml:"wobble_amp"`
	WobbleFreq        float64 `yaml:"wobble_freq"`
	Vignette          float64 `yaml:"vignette"`
	Desaturation      float64 `yaml:"desaturation"`
	Contrast          float64 `yaml:"contrast"`
	JitterSpeed       float64 `yaml:"jitter_speed"`
	JitterAmount      float64 `yaml:"jitter_amount"`
	Disabled          bool    `yaml:"disabled"`
}

func DefaultParams() Params {
	return Params{
		NoiseIntensity:    0.12,
		NoiseScale:        200,
		ScanlineIntensity: 0.25,
		ScanlineCount:     400,
		ScanlineSpeed:     1,
		Chromatic:         0.003,
		WobbleAmp:         0.01,
		WobbleFreq:        8,
		Vignette:          0.25,
		Desaturation:      0,
		Contrast:          1.1,
		JitterSpeed:       10,
		JitterAmount:      1,
	}
}

// Clamped keeps every value inside the range the shader expects.
func (p Params) Clamped() Params {
	p.NoiseIntensity = clamp(p.NoiseIntensity, 0, 1)
	p.ScanlineIntensity = clamp(p.ScanlineIntensity, 0, 1)
	p.Chromatic = clamp(p.Chromatic, 0, 0.02)
	p.WobbleAmp = clamp(p.WobbleAmp, 0, 0.05)
	p.Vignette = clamp(p.Vignette, 0, 1)
	p.Desaturation = clamp(p.Desaturation, 0, 1)
	p.Contrast = clamp(p.Contrast, 0.5, 2)
	p.NoiseScale = max(p.NoiseScale, 1)
	p.ScanlineCount = max(p.ScanlineCount, 0)
	return p
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

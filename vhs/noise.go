package vhs

import (
	"math"

	"github.com/milk9111/vhscam/common"
)

// hash2 maps a lattice point to [0,1).
func hash2(x, y int64) float64 {
	h := uint64(x)*0x9E3779B97F4A7C15 ^ uint64(y)*0xC2B2AE3D27D4EB4F
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	return float64(h>>11) / float64(1<<53)
}

// ValueNoise is smooth 2D value noise in [0,1).
func ValueNoise(x, y float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	ix, iy := int64(x0), int64(y0)
	tx := common.Smoothstep(x - x0)
	ty := common.Smoothstep(y - y0)

	a := hash2(ix, iy)
	b := hash2(ix+1, iy)
	c := hash2(ix, iy+1)
	d := hash2(ix+1, iy+1)
	return common.Lerp(common.Lerp(a, b, tx), common.Lerp(c, d, tx), ty)
}

// Jitter is the frame offset at time t, in source pixels. Each axis stays in
// [-amount, amount].
func Jitter(t, speed, amount float64) (float64, float64) {
	jx := (ValueNoise(t*speed, 0) - 0.5) * 2 * amount
	jy := (ValueNoise(0, t*speed*0.7) - 0.5) * 2 * amount
	return jx, jy
}

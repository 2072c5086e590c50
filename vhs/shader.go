package vhs

const shaderSrc = `//kage:unit pixels

package main

var Time float
var NoiseIntensity float
var NoiseScale float
var ScanlineIntensity float
var ScanlineCount float
var ScanlineSpeed float
var Chromatic float
var WobbleAmp float
var WobbleFreq float
var Vignette float
var Desaturation float
var Contrast float
var Jitter vec2

func hash(p vec2) float {
	return fract(sin(dot(p, vec2(12.9898, 78.233))) * 43758.5453)
}

func sampleAt(uv vec2) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	pos := clamp(origin+uv*size, origin, origin+size-vec2(1))
	return imageSrc0At(pos)
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	uv := (srcPos - origin) / size

	uv.x += sin(uv.y*WobbleFreq+Time*2.0) * WobbleAmp
	uv += Jitter / size

	r := sampleAt(uv + vec2(Chromatic, 0)).r
	g := sampleAt(uv).g
	b := sampleAt(uv - vec2(Chromatic, 0)).b
	col := vec3(r, g, b)

	scan := 0.5 + 0.5*sin((uv.y*ScanlineCount+Time*ScanlineSpeed)*3.14159265)
	col *= 1.0 - ScanlineIntensity*scan

	n := hash(floor(uv*NoiseScale) + vec2(floor(Time*30.0), 0))
	col += (n - 0.5) * NoiseIntensity

	gray := dot(col, vec3(0.299, 0.587, 0.114))
	col = mix(col, vec3(gray), Desaturation)
	col = (col-0.5)*Contrast + 0.5

	d := uv - 0.5
	col *= 1.0 - dot(d, d)*Vignette*2.0

	return vec4(clamp(col, vec3(0), vec3(1)), 1) * color.a
}
`

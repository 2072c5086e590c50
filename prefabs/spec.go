package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/vhscam/vhs"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// DecodeComponentSpec re-decodes a loosely typed component block into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// SceneSpec is a whole level: capture and camera setup, player tuning, action
// tuning, the VHS look, and the world entities.
type SceneSpec struct {
	Capture     CaptureSpec       `yaml:"capture"`
	Camera      CameraSpec        `yaml:"camera"`
	Player      PlayerSpec        `yaml:"player"`
	Interaction InteractionSpec   `yaml:"interaction"`
	Shotgun     ShotgunSpec       `yaml:"shotgun"`
	Modes       ModesSpec         `yaml:"modes"`
	VHS         vhs.Params        `yaml:"vhs"`
	Entities    []EntityBuildSpec `yaml:"entities"`
}

type CaptureSpec struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Interval Seconds `yaml:"interval"`
	Pooled   bool    `yaml:"pooled"`
}

type CameraSpec struct {
	FOV       float64 `yaml:"fov"`
	Near      float64 `yaml:"near"`
	Far       float64 `yaml:"far"`
	EyeHeight float64 `yaml:"eye_height"`
	Pitch     float64 `yaml:"pitch"`
}

type PlayerSpec struct {
	Spawn         Vec3    `yaml:"spawn"`
	Yaw           float64 `yaml:"yaw"`
	MoveSpeed     float64 `yaml:"move_speed"`
	RotationSpeed float64 `yaml:"rotation_speed"`
	Gravity       float64 `yaml:"gravity"`
	Radius        float64 `yaml:"radius"`
	StartMode     string  `yaml:"start_mode"`
}

type InteractionSpec struct {
	MaxDistance float64 `yaml:"max_distance"`
}

type ShotgunSpec struct {
	Damage      int     `yaml:"damage"`
	MaxDistance float64 `yaml:"max_distance"`
}

type ModesSpec struct {
	// Selectable is how many mode bar entries are offered, not the last index.
	Selectable    int `yaml:"selectable"`
	CursorHotspot int `yaml:"cursor_hotspot"`
}

// EntityBuildSpec is one world entity: a name and its component blocks.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

// DefaultScene is what a scene file is decoded on top of.
func DefaultScene() SceneSpec {
	return SceneSpec{
		Capture: CaptureSpec{Width: 320, Height: 180, Interval: Seconds(200 * time.Millisecond)},
		Camera:  CameraSpec{FOV: 60, Near: 0.05, Far: 60, EyeHeight: 1.6},
		Player: PlayerSpec{
			MoveSpeed:     2.5,
			RotationSpeed: 90,
			Gravity:       9.81,
			Radius:        0.3,
			StartMode:     "walk",
		},
		Interaction: InteractionSpec{MaxDistance: 2},
		Shotgun:     ShotgunSpec{Damage: 4, MaxDistance: 2},
		Modes:       ModesSpec{Selectable: 4, CursorHotspot: 8},
		VHS:         vhs.DefaultParams(),
	}
}

func LoadScene(name string) (SceneSpec, error) {
	data, err := Load(name)
	if err != nil {
		return SceneSpec{}, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	return ParseScene(data)
}

func ParseScene(data []byte) (SceneSpec, error) {
	spec := DefaultScene()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return SceneSpec{}, fmt.Errorf("prefabs: unmarshal scene: %w", err)
	}
	for i, e := range spec.Entities {
		if len(e.Components) == 0 {
			return SceneSpec{}, fmt.Errorf("prefabs: entity %d (%q) has no components", i, e.Name)
		}
	}
	return spec, nil
}

// Seconds is a duration written in YAML as fractional seconds.
type Seconds time.Duration

func (s Seconds) Duration() time.Duration {
	return time.Duration(s)
}

func (s *Seconds) UnmarshalYAML(value *yaml.Node) error {
	var f float64
	if err := value.Decode(&f); err != nil {
		return fmt.Errorf("seconds must be a number: %w", err)
	}
	*s = Seconds(time.Duration(f * float64(time.Second)))
	return nil
}

func (s Seconds) MarshalYAML() (any, error) {
	return time.Duration(s).Seconds(), nil
}

// Vec3 is written as [x, y, z].
type Vec3 [3]float64

func (v Vec3) Vec() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	var xs []float64
	if err := value.Decode(&xs); err != nil {
		return fmt.Errorf("vector must be a list of numbers: %w", err)
	}
	if len(xs) != 3 {
		return fmt.Errorf("vector needs 3 components, got %d", len(xs))
	}
	copy(v[:], xs)
	return nil
}

type YAMLColor struct {
	color.RGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	var channels [4]uint8
	channels[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Errorf("invalid color format: %s", value.Value)
		}
		channels[i] = uint8(v)
	}

	// premultiply to match color.RGBA
	a := uint16(channels[3])
	c.RGBA = color.RGBA{
		R: uint8(uint16(channels[0]) * a / 255),
		G: uint8(uint16(channels[1]) * a / 255),
		B: uint8(uint16(channels[2]) * a / 255),
		A: channels[3],
	}
	return nil
}

// Component blocks.

type TransformComponentSpec struct {
	Position Vec3    `yaml:"position"`
	Yaw      float64 `yaml:"yaw"`
}

type BoxColliderComponentSpec struct {
	Size   Vec3  `yaml:"size"`
	Offset Vec3  `yaml:"offset"`
	Solid  *bool `yaml:"solid"`
}

type RenderableComponentSpec struct {
	Color  YAMLColor `yaml:"color"`
	Hidden bool      `yaml:"hidden"`
}

type DestructibleComponentSpec struct {
	Life int `yaml:"life"`
}

type ScriptComponentSpec struct {
	Path string `yaml:"path"`
}

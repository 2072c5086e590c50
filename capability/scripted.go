package capability

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Scripts assign on_interact and on_shoot with "=", the prelude declares them.
const scriptPrelude = `
on_interact := func(engine, state) {}
on_shoot := func(engine, state, damage) {}
`

const scriptDispatch = `
if __event == "interact" {
	on_interact(__engine, __state)
} else if __event == "shoot" {
	on_shoot(__engine, __state, __damage)
}
`

// Scripted runs a tengo script for both actions. The script's state map
// persists across calls.
type Scripted struct {
	owner    Handle
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

func NewScripted(owner Handle, name string, src []byte) (*Scripted, error) {
	full := scriptPrelude + "\n" + string(src) + "\n" + scriptDispatch
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__event", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__damage", 0)
	script.SetImports(stdlib.GetModuleMap("math", "text", "fmt"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("capability: compile script %s: %w", name, err)
	}
	return &Scripted{
		owner:    owner,
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (s *Scripted) Interact() {
	s.run("interact", 0)
}

func (s *Scripted) Shoot(damage int) {
	s.run("shoot", damage)
}

// State returns a copy of the script's state as Go values.
func (s *Scripted) State() map[string]any {
	out := make(map[string]any, len(s.state.Value))
	for k, v := range s.state.Value {
		out[k] = tengo.ToInterface(v)
	}
	return out
}

func (s *Scripted) run(event string, damage int) {
	if s == nil || s.compiled == nil || !s.owner.Alive() {
		return
	}
	if err := s.set(event, damage); err != nil {
		log.Printf("capability: script %s: %v", s.name, err)
		return
	}
	if err := s.compiled.Run(); err != nil {
		log.Printf("capability: script %s %s: %v", s.name, event, err)
	}
}

func (s *Scripted) set(event string, damage int) error {
	if err := s.compiled.Set("__event", event); err != nil {
		return err
	}
	if err := s.compiled.Set("__engine", s.engine()); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return err
	}
	return s.compiled.Set("__damage", damage)
}

func (s *Scripted) engine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["name"] = &tengo.String{Value: s.name}

	values["destroy"] = &tengo.UserFunction{Name: "destroy", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if s.owner.Destroy() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			str, _ := tengo.ToString(a)
			parts = append(parts, str)
		}
		log.Printf("script %s: %s", s.name, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

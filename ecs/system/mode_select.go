package system

import (
	"github.com/milk9111/vhscam/ecs"
	"github.com/milk9111/vhscam/ecs/component"
	"github.com/milk9111/vhscam/modes"
)

// ModeSelectSystem moves the mode bar highlight and applies it on confirm.
type ModeSelectSystem struct {
	selector   *modes.Selector
	controller *modes.Controller
}

func NewModeSelectSystem(selector *modes.Selector, controller *modes.Controller) *ModeSelectSystem {
	return &ModeSelectSystem{selector: selector, controller: controller}
}

func (s *ModeSelectSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.selector == nil {
		return
	}
	e, ok := w.First(component.InputComponent.Kind())
	if !ok {
		return
	}
	input, _ := ecs.Get(w, e, component.InputComponent.Kind())

	if input.SelectPrevPressed {
		s.selector.Prev()
	}
	if input.SelectNextPressed {
		s.selector.Next()
	}
	if input.ConfirmPressed && s.controller != nil {
		s.selector.Apply(s.controller)
	}
}

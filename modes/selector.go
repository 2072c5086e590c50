package modes

// selectorOrder is the order modes appear on the mode bar.
var selectorOrder = [...]Mode{Walk, Interact, Inventory, Weapon}

// SelectorSize is the most entries a mode bar can show.
const SelectorSize = len(selectorOrder)

// Selector is the mode bar highlight. It cycles over the first count entries
// of the bar and wraps at both ends.
type Selector struct {
	count int
	index int
}

func NewSelector(count int) *Selector {
	s := &Selector{}
	s.Resize(count)
	return s
}

// Resize changes how many modes the bar offers, keeping the highlight in range.
func (s *Selector) Resize(count int) {
	s.count = min(max(count, 1), len(selectorOrder))
	if s.index >= s.count {
		s.index = s.count - 1
	}
}

func (s *Selector) Count() int { return s.count }

func (s *Selector) Index() int { return s.index }

func (s *Selector) Next() {
	s.index = (s.index + 1) % s.count
}

func (s *Selector) Prev() {
	s.index = (s.index - 1 + s.count) % s.count
}

func (s *Selector) Selected() Mode {
	return selectorOrder[s.index]
}

// Modes lists the selectable modes in bar order.
func (s *Selector) Modes() []Mode {
	return append([]Mode(nil), selectorOrder[:s.count]...)
}

// Sync moves the highlight to m if it is selectable.
func (s *Selector) Sync(m Mode) {
	for i := 0; i < s.count; i++ {
		if selectorOrder[i] == m {
			s.index = i
			return
		}
	}
}

// Apply switches c to the highlighted mode.
func (s *Selector) Apply(c *Controller) {
	c.SetMode(s.Selected())
}

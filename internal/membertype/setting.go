// Package membertype holds the per member type settings that drive declaration ordering.
package membertype

// Property identifies which field of a Setting changed.
type Property string

const (
	// PropertyEffectiveName is reported when SetEffectiveName is called.
	PropertyEffectiveName Property = "EffectiveName"
	// PropertyOrder is reported when SetOrder is called.
	PropertyOrder Property = "Order"
)

// Change describes one write to a Setting.
type Change struct {
	Setting  *Setting
	Property Property
	Value    interface{}
}

// Listener receives change notifications.
type Listener func(Change)

// Setting is one configurable member type: a fixed default name, a user facing
// effective name and a sort order. It is not safe for concurrent mutation.
type Setting struct {
	defaultName   string
	effectiveName string
	order         int

	listeners map[int]Listener
	nextID    int
}

// New creates a Setting. No validation is performed.
func New(defaultName, effectiveName string, order int) *Setting {
	return &Setting{
		defaultName:   defaultName,
		effectiveName: effectiveName,
		order:         order,
	}
}

// DefaultName is the identity of the member type and never changes.
func (s *Setting) DefaultName() string {
	return s.defaultName
}

// EffectiveName is the label shown to users.
func (s *Setting) EffectiveName() string {
	return s.effectiveName
}

// SetEffectiveName assigns the effective name and notifies listeners, even if
// the value did not change.
func (s *Setting) SetEffectiveName(name string) {
	s.effectiveName = name
	s.notify(PropertyEffectiveName, name)
}

// Order is the relative position of the member type among its siblings.
func (s *Setting) Order() int {
	return s.order
}

// SetOrder assigns the order and notifies listeners, even if the value did not change.
func (s *Setting) SetOrder(order int) {
	s.order = order
	s.notify(PropertyOrder, order)
}

// Subscribe registers l for every subsequent change and returns a func that removes it.
func (s *Setting) Subscribe(l Listener) (unsubscribe func()) {
	if s.listeners == nil {
		s.listeners = make(map[int]Listener)
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		delete(s.listeners, id)
	}
}

func (s *Setting) notify(p Property, v interface{}) {
	if len(s.listeners) == 0 {
		return
	}

	// registration order keeps notifications deterministic
	for id := 0; id < s.nextID; id++ {
		if l, ok := s.listeners[id]; ok {
			l(Change{Setting: s, Property: p, Value: v})
		}
	}
}

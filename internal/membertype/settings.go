package membertype

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind is the default name of a Go member type.
type Kind = string

// Known member types, in their canonical order.
const (
	Constant    Kind = "constant"
	Variable    Kind = "variable"
	Interface   Kind = "interface"
	Struct      Kind = "struct"
	Type        Kind = "type"
	Constructor Kind = "constructor"
	Function    Kind = "function"
	Method      Kind = "method"
)

// Kinds lists every member type in canonical order.
var Kinds = []Kind{Constant, Variable, Interface, Struct, Type, Constructor, Function, Method}

// DefaultEffectiveName is the label a member type gets when nobody renamed it,
// e.g. "Constants" for constant.
func DefaultEffectiveName(kind Kind) string {
	return cases.Title(language.English).String(kind) + "s"
}

// Settings is the full catalogue of member type settings.
type Settings struct {
	items []*Setting
	index map[string]int
}

// DefaultSettings returns a fresh catalogue with orders 1..n in canonical order.
func DefaultSettings() *Settings {
	items := make([]*Setting, len(Kinds))
	for i, kind := range Kinds {
		items[i] = New(kind, DefaultEffectiveName(kind), i+1)
	}
	return newSettings(items)
}

func newSettings(items []*Setting) *Settings {
	s := &Settings{
		items: items,
		index: make(map[string]int, len(items)),
	}
	for i, item := range items {
		s.index[item.DefaultName()] = i
	}
	return s
}

// LoadSettings starts from the defaults and replaces every entry whose text
// deserializes to a known member type. Anything else is reported to debug and
// the default is kept.
func LoadSettings(serialized []string, debug Debugger) *Settings {
	s := DefaultSettings()
	for _, text := range serialized {
		setting := Deserialize(text, debug)
		if setting == nil {
			continue
		}

		i, ok := s.index[setting.DefaultName()]
		if !ok {
			if debug != nil {
				debug.Printf("ignoring unknown member type %q", setting.DefaultName())
			}
			continue
		}
		s.items[i] = setting
	}
	return s
}

// Get returns the setting for a default name.
func (s *Settings) Get(defaultName string) (*Setting, bool) {
	i, ok := s.index[defaultName]
	if !ok {
		return nil, false
	}
	return s.items[i], true
}

// All returns the settings in canonical order.
func (s *Settings) All() []*Setting {
	out := make([]*Setting, len(s.items))
	copy(out, s.items)
	return out
}

// Sorted returns the settings by order, ties keeping canonical order.
func (s *Settings) Sorted() []*Setting {
	out := s.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order() < out[j].Order()
	})
	return out
}

// Strings serializes every setting in canonical order.
func (s *Settings) Strings() []string {
	out := make([]string, len(s.items))
	for i, item := range s.items {
		out[i] = Format(item)
	}
	return out
}

// Subscribe listens on every setting in the catalogue.
func (s *Settings) Subscribe(l Listener) (unsubscribe func()) {
	cancels := make([]func(), len(s.items))
	for i, item := range s.items {
		cancels[i] = item.Subscribe(l)
	}
	return func() {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

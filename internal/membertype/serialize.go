package membertype

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Delimiter separates the fields of a serialized Setting.
const Delimiter = "||"

// Pattern is the accepted serialized form: default name, order, effective name.
// A single trailing newline after the effective name is tolerated.
const Pattern = `^([\p{L}\p{Mn}\p{Nd}\p{Pc}]+)\|\|([0-9]+)\|\|(.*)\n?$`

var serializedRegexp = regexp.MustCompile(Pattern)

// ErrNoMatch is wrapped by ParseError when the text does not have the serialized shape.
var ErrNoMatch = errors.New("text does not match " + Pattern)

// Debugger is the diagnostic sink used when deserialization fails.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// ParseError reports text that could not be turned into a Setting.
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse member type setting %q: %v", e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads "{defaultName}||{order}||{effectiveName}". The effective name runs
// to the end of the text, so it may itself contain the delimiter.
func Parse(text string) (*Setting, error) {
	m := serializedRegexp.FindStringSubmatch(text)
	if m == nil {
		return nil, &ParseError{Text: text, Err: ErrNoMatch}
	}

	order, err := strconv.ParseInt(m[2], 10, 32)
	if err != nil {
		return nil, &ParseError{Text: text, Err: err}
	}

	return New(m[1], m[3], int(order)), nil
}

// Deserialize is Parse for callers that only want a value: a failure is written
// to debug once and nil is returned.
func Deserialize(text string, debug Debugger) *Setting {
	s, err := Parse(text)
	if err != nil {
		if debug != nil {
			debug.Printf("Unable to deserialize member type settings: %v", err)
		}
		return nil
	}
	return s
}

// Format writes s in its persisted form. Nothing is escaped.
func Format(s *Setting) string {
	return s.defaultName + Delimiter + strconv.Itoa(s.order) + Delimiter + s.effectiveName
}

// String is Format.
func (s *Setting) String() string {
	return Format(s)
}

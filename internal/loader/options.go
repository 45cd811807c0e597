package loader

import (
	"path/filepath"
	"strings"
)

// NewService creates a new loader service with optional configuration
func NewService(options ...Option) *Service {
	s := &Service{
		parseVendor:    false,
		excludes:       make(map[string]struct{}),
		parseExtension: ".go",
		skipGenerated:  true,
		debug:          &noOpDebugger{},
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithParseVendor sets whether to walk vendor directories
func WithParseVendor(parse bool) Option {
	return func(s *Service) {
		s.parseVendor = parse
	}
}

// WithExcludes sets directory exclusion patterns
func WithExcludes(excludes map[string]struct{}) Option {
	return func(s *Service) {
		s.excludes = excludes
	}
}

// WithParseExtension sets the file extension to parse
func WithParseExtension(ext string) Option {
	return func(s *Service) {
		s.parseExtension = ext
	}
}

// WithSkipGenerated sets whether files carrying a "Code generated" header are ignored
func WithSkipGenerated(skip bool) Option {
	return func(s *Service) {
		s.skipGenerated = skip
	}
}

// WithDebugger sets the debugger for logging
func WithDebugger(debugger Debugger) Option {
	return func(s *Service) {
		s.debug = debugger
	}
}

// ParseExcludes converts a comma-separated exclude list to a set of absolute paths.
func ParseExcludes(excludes []string) map[string]struct{} {
	result := make(map[string]struct{})
	for _, exclude := range excludes {
		exclude = strings.TrimSpace(exclude)
		if exclude == "" {
			continue
		}
		if abs, err := filepath.Abs(exclude); err == nil {
			exclude = abs
		}
		result[exclude] = struct{}{}
	}
	return result
}

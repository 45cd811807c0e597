// Package reorganize reorders the top-level declarations of Go files by member type.
package reorganize

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/griffnb/core-maid/internal/member"
	"github.com/griffnb/core-maid/internal/membertype"
)

// Options tune how declarations are arranged.
type Options struct {
	// Alphabetize sorts by name inside a group instead of keeping source order.
	Alphabetize bool
	// Regions wraps each group in "// region <name>" and "// endregion" lines.
	// Markers between declarations are regenerated, so they are removed
	// when Regions is off.
	Regions bool
}

const (
	regionStart = "// region "
	regionEnd   = "// endregion"
)

var regionMarker = regexp.MustCompile(`^\s*//\s*(region|endregion)\b`)

// segment is the text of one member: any floating comments above it, its doc
// comment, the declaration and a trailing comment on its last line.
type segment struct {
	member member.Member
	order  int
	text   string
}

// File parses src and reorganizes it.
func File(src []byte, settings *membertype.Settings, opts Options) ([]byte, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	return Source(fset, file, src, settings, opts)
}

// Source reorganizes an already parsed file. file must have been parsed from
// src with comments. The package clause and imports stay on top, everything
// after them is grouped by the order of its member type setting.
func Source(fset *token.FileSet, file *ast.File, src []byte, settings *membertype.Settings, opts Options) ([]byte, error) {
	members := member.Classify(file)
	if len(members) == 0 {
		return src, nil
	}

	tf := fset.File(file.Package)
	if tf == nil {
		return nil, fmt.Errorf("no position information for file")
	}
	off := func(p token.Pos) int { return tf.Offset(p) }

	headerDecl := off(file.Name.End())
	for _, decl := range file.Decls {
		if gen, ok := decl.(*ast.GenDecl); ok && gen.Tok == token.IMPORT {
			headerDecl = off(decl.End())
		}
	}
	headerEnd := lineEnd(src, headerDecl)
	if first := declStart(members[0].Decl, off); headerEnd > first {
		headerEnd = headerDecl
	}

	markers := regionMarkers(src, file, off)

	segments := make([]segment, len(members))
	start := skipSeparator(src, headerEnd)
	for i, m := range members {
		end := lineEnd(src, off(m.Decl.End()))
		if i+1 < len(members) {
			if next := declStart(members[i+1].Decl, off); end > next {
				end = off(m.Decl.End())
			}
		}
		end = extendOverComments(src, file.Comments, off, end)

		segments[i] = segment{
			member: m,
			order:  orderOf(settings, m.Kind),
			text:   cutRanges(src, start, end, markers),
		}
		start = skipSeparator(src, end)
	}
	trailer := cutRanges(src, start, len(src), markers)

	sort.SliceStable(segments, func(i, j int) bool {
		a, b := segments[i], segments[j]
		if a.order != b.order {
			return a.order < b.order
		}
		if opts.Alphabetize && a.member.Name != b.member.Name {
			return a.member.Name < b.member.Name
		}
		return a.member.Index < b.member.Index
	})

	var buf bytes.Buffer
	buf.WriteString(strings.TrimRight(string(src[:headerEnd]), " \t\r\n"))
	buf.WriteString("\n\n")

	for _, group := range groupSegments(segments) {
		if opts.Regions {
			buf.WriteString(regionStart + groupName(settings, group) + "\n\n")
		}
		for _, seg := range group {
			buf.WriteString(cleanText(seg.text))
			buf.WriteString("\n\n")
		}
		if opts.Regions {
			buf.WriteString(regionEnd + "\n\n")
		}
	}

	if rest := cleanText(trailer); rest != "" {
		buf.WriteString(rest)
		buf.WriteString("\n")
	}

	out, err := format.Source(bytes.TrimRight(buf.Bytes(), "\n"))
	if err != nil {
		return nil, fmt.Errorf("formatting reorganized source: %w", err)
	}
	return out, nil
}

func orderOf(settings *membertype.Settings, kind membertype.Kind) int {
	if settings != nil {
		if s, ok := settings.Get(kind); ok {
			return s.Order()
		}
	}
	return math.MaxInt
}

// groupSegments splits sorted segments into runs of equal order.
func groupSegments(segments []segment) [][]segment {
	var groups [][]segment
	for i, seg := range segments {
		if i == 0 || seg.order != segments[i-1].order {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], seg)
	}
	return groups
}

// groupName joins the effective names of the member types present in a group,
// in canonical order.
func groupName(settings *membertype.Settings, group []segment) string {
	present := make(map[membertype.Kind]bool)
	for _, seg := range group {
		present[seg.member.Kind] = true
	}

	var names []string
	for _, kind := range membertype.Kinds {
		if !present[kind] {
			continue
		}
		name := membertype.DefaultEffectiveName(kind)
		if settings != nil {
			if s, ok := settings.Get(kind); ok {
				name = s.EffectiveName()
			}
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

// cleanText drops leading blank lines and trailing whitespace.
func cleanText(text string) string {
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	return strings.TrimRight(strings.Join(lines, "\n"), " \t\r\n")
}

// regionMarkers returns the line ranges of region comments that stand on
// their own line outside every declaration. Comments inside bodies are kept.
func regionMarkers(src []byte, file *ast.File, off func(token.Pos) int) [][2]int {
	var ranges [][2]int
	for _, cg := range file.Comments {
		for _, c := range cg.List {
			if !regionMarker.MatchString(c.Text) || insideDecl(file.Decls, c.Pos()) {
				continue
			}
			begin := off(c.Pos())
			lineStart := bytes.LastIndexByte(src[:begin], '\n') + 1
			if len(bytes.TrimSpace(src[lineStart:begin])) > 0 {
				continue
			}
			ranges = append(ranges, [2]int{lineStart, lineEnd(src, off(c.End()))})
		}
	}
	return ranges
}

func insideDecl(decls []ast.Decl, pos token.Pos) bool {
	for _, decl := range decls {
		if decl.Pos() <= pos && pos < decl.End() {
			return true
		}
	}
	return false
}

// cutRanges returns src[start:end] without the given sorted ranges.
func cutRanges(src []byte, start, end int, ranges [][2]int) string {
	var b strings.Builder
	for _, r := range ranges {
		if r[1] <= start || r[0] >= end {
			continue
		}
		if r[0] > start {
			b.Write(src[start:r[0]])
		}
		if r[1] > start {
			start = r[1]
		}
	}
	if start < end {
		b.Write(src[start:end])
	}
	return b.String()
}

// skipSeparator moves past the blanks and semicolon that separate two
// declarations sharing a line.
func skipSeparator(src []byte, offset int) int {
	for offset < len(src) && (src[offset] == ' ' || src[offset] == '\t' || src[offset] == ';') {
		offset++
	}
	return offset
}

func declStart(decl ast.Decl, off func(token.Pos) int) int {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.Doc != nil {
			return off(d.Doc.Pos())
		}
	case *ast.GenDecl:
		if d.Doc != nil {
			return off(d.Doc.Pos())
		}
	}
	return off(decl.Pos())
}

// extendOverComments moves end past any comment that starts before it and ends after it.
func extendOverComments(src []byte, comments []*ast.CommentGroup, off func(token.Pos) int, end int) int {
	for _, cg := range comments {
		for _, c := range cg.List {
			if off(c.Pos()) < end && off(c.End()) > end {
				end = lineEnd(src, off(c.End()))
			}
		}
	}
	return end
}

// lineEnd returns the offset of the newline ending the line that contains offset.
func lineEnd(src []byte, offset int) int {
	if offset >= len(src) {
		return len(src)
	}
	if i := bytes.IndexByte(src[offset:], '\n'); i >= 0 {
		return offset + i
	}
	return len(src)
}

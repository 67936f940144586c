// Package source places every file the compiler reads in one shared
// byte-offset space and maps spans back to the file and text they came
// from.
//
// Grounded on original_source/compiler/zhoo-util/src/source.rs: a single
// growing byte buffer, one record per added file recording the offset at
// which its text starts, and a span-to-source lookup that walks those
// offsets.
package source

import (
	"sort"

	"github.com/monsieurbadia/zhoo/internal/span"
)

// Id identifies one added source file by index of insertion.
type Id int

type entry struct {
	path   string
	offset uint32
	text   string
}

// Map owns each added file's text together with the offset at which it
// starts in the shared offset space.
type Map struct {
	entries []entry
}

// New returns an empty source map.
func New() *Map {
	return &Map{}
}

// AddSource appends text under path and returns its id.
func (m *Map) AddSource(path, text string) Id {
	offset := uint32(0)
	if n := len(m.entries); n > 0 {
		last := m.entries[n-1]
		offset = last.offset + uint32(len(last.text))
	}
	m.entries = append(m.entries, entry{path: path, offset: offset, text: text})
	return Id(len(m.entries) - 1)
}

// SourceId finds the file that s falls inside of, by binary-searching the
// recorded start offsets. Span.Zero resolves to id 0 when at least one
// file has been added.
func (m *Map) SourceId(s span.Span) Id {
	if len(m.entries) == 0 {
		return 0
	}
	lo := s.Lo
	i := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].offset > lo
	})
	if i == 0 {
		return 0
	}
	return Id(i - 1)
}

// Path returns the path recorded for id.
func (m *Map) Path(id Id) string {
	return m.entries[id].path
}

// Code returns the exact text recorded for id.
func (m *Map) Code(id Id) string {
	return m.entries[id].text
}

// Snippet returns the text of a source covered by s, relative to that
// source's own start offset. If the slice would be empty, or no source
// has been added, a single newline is substituted so diagnostic rendering
// has something to anchor carets to.
func (m *Map) Snippet(s span.Span) string {
	if len(m.entries) == 0 {
		return "\n"
	}
	id := m.SourceId(s)
	e := m.entries[id]
	lo := int(s.Lo) - int(e.offset)
	hi := int(s.Hi) - int(e.offset)
	if lo < 0 {
		lo = 0
	}
	if hi > len(e.text) {
		hi = len(e.text)
	}
	if lo >= hi {
		return "\n"
	}
	return e.text[lo:hi]
}

// LocalOffsets converts s into offsets relative to its own source's text.
func (m *Map) LocalOffsets(s span.Span) (lo, hi int) {
	if len(m.entries) == 0 {
		return int(s.Lo), int(s.Hi)
	}
	id := m.SourceId(s)
	e := m.entries[id]
	return int(s.Lo) - int(e.offset), int(s.Hi) - int(e.offset)
}

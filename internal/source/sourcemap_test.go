package source_test

import (
	"testing"

	"github.com/monsieurbadia/zhoo/internal/source"
	"github.com/monsieurbadia/zhoo/internal/span"
	"github.com/stretchr/testify/assert"
)

func TestAddSourceAssignsSequentialIds(t *testing.T) {
	m := source.New()
	a := m.AddSource("a.zh", "fun main() {}")
	b := m.AddSource("b.zh", "fun foo() {}")

	assert.Equal(t, source.Id(0), a)
	assert.Equal(t, source.Id(1), b)
	assert.Equal(t, "fun main() {}", m.Code(a))
	assert.Equal(t, "fun foo() {}", m.Code(b))
}

func TestSourceIdZeroSpan(t *testing.T) {
	m := source.New()
	m.AddSource("a.zh", "fun main() {}")

	assert.Equal(t, source.Id(0), m.SourceId(span.Zero))
}

func TestSourceIdLocatesSecondFile(t *testing.T) {
	m := source.New()
	m.AddSource("a.zh", "0123456789")
	m.AddSource("b.zh", "abcdefgh")

	s := span.New(11, 13)
	assert.Equal(t, source.Id(1), m.SourceId(s))
	assert.Equal(t, "bc", m.Snippet(s))
}

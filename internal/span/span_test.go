package span_test

import (
	"testing"

	"github.com/monsieurbadia/zhoo/internal/span"
	"github.com/stretchr/testify/assert"
)

func TestMergeIdempotent(t *testing.T) {
	a := span.New(3, 7)
	assert.Equal(t, a, span.Merge(a, a))
}

func TestMergeContainsBoth(t *testing.T) {
	a := span.New(3, 7)
	b := span.New(10, 20)
	m := span.Merge(a, b)

	assert.True(t, m.Contains(a))
	assert.True(t, m.Contains(b))
	assert.Equal(t, uint32(3), m.Lo)
	assert.Equal(t, uint32(20), m.Hi)
}

func TestZeroIsZero(t *testing.T) {
	assert.True(t, span.Zero.IsZero())
	assert.False(t, span.New(0, 1).IsZero())
}

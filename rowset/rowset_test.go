package rowset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_Basics(t *testing.T) {
	s := New(3, 1, 2)
	assert.Equal(t, 3, s.Len())
	assert.False(t, s.IsEmpty())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(4))

	s.Add(2) // idempotent
	assert.Equal(t, 3, s.Len())

	s.Remove(2)
	assert.False(t, s.Contains(2))
	s.Remove(99) // absent is fine
	assert.Equal(t, 2, s.Len())

	// Negative positions are ignored everywhere
	s.Add(-1)
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Contains(-1))

	assert.True(t, New().IsEmpty())
}

func TestSet_BooleanOps(t *testing.T) {
	a := New(1, 2, 3, 4)
	b := New(3, 4, 5)

	and := a.Clone()
	and.And(b)
	assert.Equal(t, []int{3, 4}, and.Slice())

	or := a.Clone()
	or.Or(b)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, or.Slice())

	diff := a.Clone()
	diff.AndNot(b)
	assert.Equal(t, []int{1, 2}, diff.Slice())

	// Operands are untouched
	assert.Equal(t, []int{1, 2, 3, 4}, a.Slice())
	assert.Equal(t, []int{3, 4, 5}, b.Slice())
}

func TestSet_CloneIsIndependent(t *testing.T) {
	a := New(1, 2)
	b := a.Clone()
	b.Add(3)

	assert.Equal(t, []int{1, 2}, a.Slice())
	assert.Equal(t, []int{1, 2, 3}, b.Slice())
}

func TestSet_All(t *testing.T) {
	s := New(5, 1, 9)

	var got []int
	for p := range s.All() {
		got = append(got, p)
	}
	require.Equal(t, []int{1, 5, 9}, got)

	// Early break
	var first []int
	for p := range s.All() {
		first = append(first, p)
		break
	}
	assert.Equal(t, []int{1}, first)
}

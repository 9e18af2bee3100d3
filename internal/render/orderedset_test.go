package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedSet(t *testing.T) {
	s := newOrderedSet()
	assert.True(t, s.Add("b"))
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("b"))
	s.AddAll([]string{"c", "a", "d"})

	assert.Equal(t, []string{"b", "a", "c", "d"}, s.Items())
	assert.Equal(t, 4, s.Len())

	items := s.Items()
	items[0] = "mutated"
	assert.Equal(t, "b", s.Items()[0], "Items returns a copy")
}

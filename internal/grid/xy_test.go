package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXY_Neighbors_AtOrigin(t *testing.T) {
	n := NewXY(0, 0).Neighbors()
	assert.Len(t, n, 3)
	assert.Contains(t, n, NewXY(0, 1))
	assert.Contains(t, n, NewXY(1, 1))
	assert.Contains(t, n, NewXY(1, 0))
}

func TestXY_CardinalNeighbors(t *testing.T) {
	assert.Equal(t, []XY{{1, 0}, {2, 1}, {1, 2}, {0, 1}}, NewXY(1, 1).CardinalNeighbors())
	assert.Equal(t, []XY{{1, 0}, {0, 1}}, NewXY(0, 0).CardinalNeighbors())
}

func TestXY_Steps(t *testing.T) {
	_, ok := NewXY(0, 3).Left()
	assert.False(t, ok)
	_, ok = NewXY(3, 0).Up()
	assert.False(t, ok)

	p, ok := NewXY(2, 3).Right()
	require.True(t, ok)
	assert.Equal(t, NewXY(3, 3), p)

	p, ok = NewXY(2, 3).Down()
	require.True(t, ok)
	assert.Equal(t, NewXY(2, 4), p)
}

func TestXY_AddAndEquality(t *testing.T) {
	assert.Equal(t, NewXY(5, 7), NewXY(2, 3).Add(NewXY(3, 4)))

	seen := map[XY]bool{NewXY(1, 2): true}
	assert.True(t, seen[XY{X: 1, Y: 2}])
}

func TestParseXY(t *testing.T) {
	p, err := ParseXY("162,817")
	require.NoError(t, err)
	assert.Equal(t, NewXY(162, 817), p)
	assert.Equal(t, "162,817", p.String())

	for _, bad := range []string{"", "1", "a,2", "1,b", "-1,2"} {
		_, err := ParseXY(bad)
		assert.Error(t, err, bad)
	}
}

package model

import (
	"encoding/json"
	"testing"

	"github.com/piwi3910/GiftPack/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCell(t *testing.T) {
	c, err := ParseCell('#')
	require.NoError(t, err)
	assert.Equal(t, Filled, c)

	c, err = ParseCell('.')
	require.NoError(t, err)
	assert.Equal(t, Empty, c)

	_, err = ParseCell('x')
	assert.Error(t, err)
}

func TestNewPresent_OccupiedCells(t *testing.T) {
	p := MustParsePresent(
		"###",
		"##.",
		"##.",
	)
	assert.Equal(t, 3, p.Width())
	assert.Equal(t, 3, p.Height())
	assert.Equal(t, 7, p.CellCount())
	assert.Equal(t, []grid.XY{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
		{X: 0, Y: 1}, {X: 1, Y: 1},
		{X: 0, Y: 2}, {X: 1, Y: 2},
	}, p.OccupiedCells())
}

func TestParsePresent_Invalid(t *testing.T) {
	_, err := ParsePresent("#x#")
	assert.Error(t, err)

	_, err = ParsePresent("###", "##")
	assert.Error(t, err)
}

func TestPresent_TransformsRederiveOccupiedCells(t *testing.T) {
	p := MustParsePresent(
		"##.",
		"#..",
	)
	r := p.Rotate90()
	assert.Equal(t, 2, r.Width())
	assert.Equal(t, 3, r.Height())
	assert.Equal(t, []string{"##", ".#", ".."}, r.Rows())

	// The occupied list must describe the rotated grid, not the source.
	g := r.Grid()
	for _, xy := range r.OccupiedCells() {
		v, ok := g.At(xy)
		require.True(t, ok)
		assert.Equal(t, Filled, v)
	}
	assert.Equal(t, []grid.XY{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, r.OccupiedCells())
}

func TestPresent_CellCountInvariantAcrossOrientations(t *testing.T) {
	shapes := []Present{
		MustParsePresent("###", "##.", "##."),
		MustParsePresent("#..", "###", "..#"),
		MustParsePresent("####"),
		MustParsePresent("#.", "##", ".#", "..", ".#"),
	}
	for _, p := range shapes {
		for _, o := range AllOrientations {
			assert.Equal(t, p.CellCount(), o.Apply(p).CellCount(), "%s of\n%s", o, p)
		}
	}
}

func TestPresent_TransformsKeepIdentity(t *testing.T) {
	p := MustParsePresent("##", "#.")
	p.Index = 4
	p.Label = "L"
	f := p.FlipVertical()
	assert.Equal(t, 4, f.Index)
	assert.Equal(t, "L", f.Label)
}

func TestPresent_EqualIgnoresBoundingBox(t *testing.T) {
	a := MustParsePresent("##", "#.")
	b := MustParsePresent("##.", "#..", "...")
	c := MustParsePresent("##", ".#")

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())
	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestPresent_SymmetricShapeOrientationsEqual(t *testing.T) {
	square := MustParsePresent("##", "##")
	for _, o := range AllOrientations {
		assert.True(t, square.Equal(o.Apply(square)), o.String())
	}
}

func TestPresent_JSON(t *testing.T) {
	p := MustParsePresent("#.", "##")
	p.Index = 2
	p.Label = "step"

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"index":2,"label":"step","rows":["#.","##"]}`, string(data))

	var back Present
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, p.Equal(back))
	assert.Equal(t, 2, back.Index)
	assert.Equal(t, 2, back.Width())

	err = json.Unmarshal([]byte(`{"index":1,"rows":["#?"]}`), &back)
	assert.Error(t, err)
}

func TestOrientation_String(t *testing.T) {
	assert.Equal(t, "Identity", Identity.String())
	assert.Equal(t, "Rotate 270", Rotate270.String())
	assert.Equal(t, "Flip vertical", FlipVertical.String())
	assert.Len(t, AllOrientations, 6)
}

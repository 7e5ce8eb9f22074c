package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_RenumbersPresents(t *testing.T) {
	a := MustParsePresent("##")
	a.Index = 7
	b := MustParsePresent("#", "#")
	b.Index = 3

	c := NewCatalog("Basics", "two dominoes", []Present{a, b})
	assert.Len(t, c.ID, 8)
	assert.NotEmpty(t, c.CreatedAt)
	require.Len(t, c.Presents, 2)
	assert.Equal(t, 0, c.Presents[0].Index)
	assert.Equal(t, 1, c.Presents[1].Index)
	assert.Equal(t, 7, a.Index, "source presents are not modified")
}

func TestCatalog_ToProblem(t *testing.T) {
	c := NewCatalog("Basics", "", testCatalog())

	p, err := c.ToProblem([]Region{NewRegion(3, 3, []int{1, 0, 0})})
	require.NoError(t, err)
	assert.Len(t, p.Presents, 3)

	_, err = c.ToProblem([]Region{NewRegion(3, 3, []int{1})})
	assert.ErrorIs(t, err, ErrPresentCountMismatch)
}

func TestCatalogStore(t *testing.T) {
	store := NewCatalogStore()
	first := NewCatalog("First", "", testCatalog())
	second := NewCatalog("Second", "", testCatalog()[:1])
	store.Add(first)
	store.Add(second)

	assert.Equal(t, []string{"First", "Second"}, store.Names())
	require.NotNil(t, store.FindByName("Second"))
	assert.Equal(t, second.ID, store.FindByName("Second").ID)
	assert.Nil(t, store.FindByName("Missing"))
	require.NotNil(t, store.FindByID(first.ID))

	assert.True(t, store.Remove(first.ID))
	assert.False(t, store.Remove(first.ID))
	assert.Nil(t, store.FindByID(first.ID))
	assert.Len(t, store.Catalogs, 1)
}

package ui

import (
	"testing"

	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestGiftPackTheme_Variants(t *testing.T) {
	dark := NewGiftPackTheme("dark")
	assert.False(t, dark.system)
	assert.Equal(t, theme.VariantDark, dark.variant)
	assert.Equal(t,
		theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantDark),
		dark.Color(theme.ColorNameBackground, theme.VariantLight))

	light := NewGiftPackTheme("light")
	assert.Equal(t, theme.VariantLight, light.variant)

	system := NewGiftPackTheme("system")
	assert.True(t, system.system)
	assert.Equal(t,
		theme.DefaultTheme().Color(theme.ColorNameBackground, theme.VariantDark),
		system.Color(theme.ColorNameBackground, theme.VariantDark))

	assert.True(t, NewGiftPackTheme("purple").system)
}

func TestGiftPackTheme_CompactSizes(t *testing.T) {
	th := NewGiftPackTheme("system")
	assert.Equal(t, float32(12), th.Size(theme.SizeNameText))
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNameScrollBar), th.Size(theme.SizeNameScrollBar))
}

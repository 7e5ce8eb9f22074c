// Package ui provides the GiftPack viewer's windows, dialogs and panels.
//
// This file defines a compact Fyne theme for the dense region listings.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// GiftPackTheme wraps the default Fyne theme with compact sizing overrides.
type GiftPackTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewGiftPackTheme creates a theme for the "system", "light" or "dark"
// preference stored in the app config. Unknown names follow the system.
func NewGiftPackTheme(name string) *GiftPackTheme {
	t := &GiftPackTheme{base: theme.DefaultTheme()}
	t.SetVariantName(name)
	return t
}

// SetVariantName switches between light, dark and the system variant.
func (t *GiftPackTheme) SetVariantName(name string) {
	switch name {
	case "light":
		t.variant, t.system = theme.VariantLight, false
	case "dark":
		t.variant, t.system = theme.VariantDark, false
	default:
		t.system = true
	}
}

// Color delegates to the base theme, forcing the stored variant unless the
// theme follows the system.
func (t *GiftPackTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.system {
		return t.base.Color(name, variant)
	}
	return t.base.Color(name, t.variant)
}

func (t *GiftPackTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *GiftPackTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *GiftPackTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// --- カスタムテーマ定義 ---
type myTheme struct {
	fyne.Theme
	colors map[fyne.ThemeColorName]color.Color
}

var darkColors = map[fyne.ThemeColorName]color.Color{
	theme.ColorNameBackground:      color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xff},
	theme.ColorNameInputBackground: color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff},
	theme.ColorNameForeground:      color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	theme.ColorNamePrimary:         color.NRGBA{R: 0x00, G: 0xff, B: 0xcc, A: 0xff},
	theme.ColorNameButton:          color.NRGBA{R: 0x2c, G: 0x2c, B: 0x2c, A: 0xff},
	theme.ColorNameInputBorder:     color.NRGBA{R: 0x52, G: 0x52, B: 0x52, A: 0xff},
	theme.ColorNamePlaceHolder:     color.NRGBA{R: 0x75, G: 0x75, B: 0x75, A: 0xff},
	theme.ColorNameHover:           color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff},
	theme.ColorNameDisabled:        color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff},
	theme.ColorNameError:           color.NRGBA{R: 0xff, G: 0x55, B: 0x55, A: 0xff},
}

var lightColors = map[fyne.ThemeColorName]color.Color{
	theme.ColorNameBackground:      color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff},
	theme.ColorNameInputBackground: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	theme.ColorNameForeground:      color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	theme.ColorNamePrimary:         color.NRGBA{R: 0x03, G: 0xa9, B: 0xf4, A: 0xff},
	theme.ColorNameButton:          color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
	theme.ColorNameInputBorder:     color.NRGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff},
	theme.ColorNamePlaceHolder:     color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff},
	theme.ColorNameHover:           color.NRGBA{R: 0xea, G: 0xea, B: 0xea, A: 0xff},
	theme.ColorNameDisabled:        color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff},
	theme.ColorNameError:           color.NRGBA{R: 0xcc, G: 0x00, B: 0x00, A: 0xff},
}

// NewTheme はダーク/ライトのテーマを返します。
func NewTheme(dark bool) fyne.Theme {
	if dark {
		return &myTheme{Theme: theme.DarkTheme(), colors: darkColors}
	}
	return &myTheme{Theme: theme.LightTheme(), colors: lightColors}
}

func (m *myTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, ok := m.colors[name]; ok {
		return c
	}
	return m.Theme.Color(name, variant)
}

func (m *myTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6
	case theme.SizeNameText:
		return 14
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 17
	case theme.SizeNameCaptionText:
		return 12
	}
	return m.Theme.Size(name)
}

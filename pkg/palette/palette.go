// Package palette is the terminal-palette reference table: a static mapping
// from the 256 standard palette indices to human-readable names and hex
// color codes, plus the index->RGB math for the 6x6x6 color cube and the
// grayscale ramp, and SGR escape helpers for writing colored output.
package palette

import (
	"fmt"
	"sort"
	"strings"
)

// Color is one palette entry.
type Color struct {
	Index   int
	Name    string
	Hex     string
	R, G, B uint8
}

// cubeLevels are the channel values used by the 6x6x6 color cube
// (indices 16-231).
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// systemColors are the 16 base colors (indices 0-15) with their
// conventional names and default RGB values.
var systemColors = [16]Color{
	{0, "Black", "#000000", 0x00, 0x00, 0x00},
	{1, "Maroon", "#800000", 0x80, 0x00, 0x00},
	{2, "Green", "#008000", 0x00, 0x80, 0x00},
	{3, "Olive", "#808000", 0x80, 0x80, 0x00},
	{4, "Navy", "#000080", 0x00, 0x00, 0x80},
	{5, "Purple", "#800080", 0x80, 0x00, 0x80},
	{6, "Teal", "#008080", 0x00, 0x80, 0x80},
	{7, "Silver", "#c0c0c0", 0xc0, 0xc0, 0xc0},
	{8, "Grey", "#808080", 0x80, 0x80, 0x80},
	{9, "Red", "#ff0000", 0xff, 0x00, 0x00},
	{10, "Lime", "#00ff00", 0x00, 0xff, 0x00},
	{11, "Yellow", "#ffff00", 0xff, 0xff, 0x00},
	{12, "Blue", "#0000ff", 0x00, 0x00, 0xff},
	{13, "Fuchsia", "#ff00ff", 0xff, 0x00, 0xff},
	{14, "Aqua", "#00ffff", 0x00, 0xff, 0xff},
	{15, "White", "#ffffff", 0xff, 0xff, 0xff},
}

// RGB returns the channel values for a palette index. Indices 16-231 come
// from the color cube, 232-255 from the grayscale ramp, 0-15 from the
// default system palette.
func RGB(index int) (r, g, b uint8, ok bool) {
	switch {
	case index >= 0 && index <= 15:
		c := systemColors[index]
		return c.R, c.G, c.B, true
	case index >= 16 && index <= 231:
		c := index - 16
		return cubeLevels[c/36], cubeLevels[(c/6)%6], cubeLevels[c%6], true
	case index >= 232 && index <= 255:
		g := uint8(8 + 10*(index-232))
		return g, g, g, true
	default:
		return 0, 0, 0, false
	}
}

// Hex returns the canonical "#rrggbb" string for a palette index, or "" for
// out-of-range indices.
func Hex(index int) string {
	r, g, b, ok := RGB(index)
	if !ok {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Name returns the conventional name for a palette index, or "" for
// out-of-range indices. Names above index 15 are not unique.
func Name(index int) string {
	if index >= 0 && index <= 15 {
		return systemColors[index].Name
	}
	return ExtendedNames[index]
}

// Lookup returns the full entry for an index.
func Lookup(index int) (Color, bool) {
	name := Name(index)
	if name == "" {
		return Color{}, false
	}
	r, g, b, _ := RGB(index)
	return Color{Index: index, Name: name, Hex: Hex(index), R: r, G: g, B: b}, true
}

// ByName returns every index carrying the given name, case-insensitively,
// in ascending order. Several extended names map to multiple indices.
func ByName(name string) []int {
	var out []int
	for i := 0; i <= 255; i++ {
		if strings.EqualFold(Name(i), name) {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// All returns the complete palette in index order.
func All() []Color {
	out := make([]Color, 0, 256)
	for i := 0; i <= 255; i++ {
		c, _ := Lookup(i)
		out = append(out, c)
	}
	return out
}

// Foreground returns the SGR sequence selecting the index as the text color.
func Foreground(index int) string {
	return fmt.Sprintf("\x1b[38;5;%dm", index)
}

// Background returns the SGR sequence selecting the index as the background.
func Background(index int) string {
	return fmt.Sprintf("\x1b[48;5;%dm", index)
}

// Reset is the SGR sequence restoring default colors.
const Reset = "\x1b[0m"

// Luminance returns the relative luminance of an index, used to pick a
// readable label color on the HTML swatch page.
func Luminance(index int) float64 {
	r, g, b, ok := RGB(index)
	if !ok {
		return 0
	}
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
}

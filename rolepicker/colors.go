package rolepicker

import (
	"math/rand"
	"sort"
)

// Explicit table of embed color names. Names mirror the palette the picker
// documents have historically used; lookups never fall back to reflection.
var colorValues = map[string]int{
	"default":     0x000000,
	"teal":        0x1abc9c,
	"dark_teal":   0x11806a,
	"green":       0x2ecc71,
	"dark_green":  0x1f8b4c,
	"blue":        0x3498db,
	"dark_blue":   0x206694,
	"purple":      0x9b59b6,
	"dark_purple": 0x71368a,
	"magenta":     0xe91e63,
	"gold":        0xf1c40f,
	"orange":      0xe67e22,
	"red":         0xe74c3c,
	"dark_red":    0x992d22,
	"brand_red":   0xed4245,
	"brand_green": 0x57f287,
	"blurple":     0x5865f2,
	"grey":        0x95a5a6,
	"dark_grey":   0x607d8b,
	"light_grey":  0x979c9f,
	"greyple":     0x99aab5,
}

// ColorValue resolves a configured color name. An unrecognized or empty name
// resolves to the fallback and reports false so callers can log the
// configuration problem.
func ColorValue(name string, fallback int) (int, bool) {
	if name == "" {
		return fallback, false
	}

	if v, ok := colorValues[name]; ok {
		return v, true
	}

	return fallback, false
}

// ColorNames returns every recognized color name in stable order
func ColorNames() []string {
	names := make([]string, 0, len(colorValues))
	for name := range colorValues {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// RandomColor picks an arbitrary color from the table
func RandomColor() int {
	names := ColorNames()
	return colorValues[names[rand.Intn(len(names))]]
}

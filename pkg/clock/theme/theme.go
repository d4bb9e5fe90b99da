// Package theme defines the fixed registry of clock face themes.
//
// A [Theme] bundles a color [Palette], a numeral style, and a [Decoration]:
// the ornament set drawn on top of the stock face. Decorations form a closed
// set of four variants ([Tower], [Cuckoo], [Watch], [Learning]), each
// carrying its own immutable configuration. Renderers dispatch on the
// concrete type with a type switch:
//
//	switch d := th.Decoration.(type) {
//	case theme.Tower:
//	    // d.Stones, d.SpireColor, ...
//	case theme.Learning:
//	    // d.Sectors, d.Radii, ...
//	}
//
// Themes are looked up by [ID]. [Get] rejects unknown identifiers with an
// INVALID_THEME error; [Lookup] falls back to [Default].
package theme

import (
	"strings"

	"github.com/matzehuels/uhrzeit/pkg/errors"
)

// ID identifies a theme.
type ID string

// Known theme identifiers, in registry order.
const (
	IDTower    ID = "tower"
	IDCuckoo   ID = "cuckoo"
	IDWatch    ID = "watch"
	IDLearning ID = "learning"
)

// Default is the theme used when none is configured or the configured one is unknown.
const Default = IDCuckoo

// Palette holds the fourteen named colors of a clock face.
type Palette struct {
	OuterRing         string `json:"outerRing"`
	OuterRingStroke   string `json:"outerRingStroke"`
	FaceGradientStart string `json:"faceGradientStart"`
	FaceGradientEnd   string `json:"faceGradientEnd"`
	HourMarker        string `json:"hourMarker"`
	MinuteMarker      string `json:"minuteMarker"`
	Numbers           string `json:"numbers"`
	HourHand          string `json:"hourHand"`
	MinuteHand        string `json:"minuteHand"`
	CenterOuter       string `json:"centerOuter"`
	CenterInner       string `json:"centerInner"`
	HandleHour        string `json:"handleHour"`
	HandleMinute      string `json:"handleMinute"`
	HandShadow        string `json:"handShadow"`
}

// Font describes how numerals are typeset.
type Font struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
	Weight string  `json:"weight"`
}

// Theme is an immutable clock face theme.
type Theme struct {
	ID            ID         `json:"id"`
	Name          string     `json:"name"`
	Icon          string     `json:"icon"`
	Description   string     `json:"description"`
	Colors        Palette    `json:"colors"`
	RomanNumerals bool       `json:"romanNumerals"`
	Numerals      Font       `json:"numerals"`
	Decoration    Decoration `json:"-"`
}

// ParseID validates s as a theme identifier.
func ParseID(s string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := index[id]; !ok {
		return "", errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (must be one of %s)", s, strings.Join(idStrings(), ", "))
	}
	return id, nil
}

// Valid reports whether id names a registered theme.
func (id ID) Valid() bool {
	_, ok := index[id]
	return ok
}

// Get returns the theme registered under id.
func Get(id ID) (Theme, error) {
	i, ok := index[id]
	if !ok {
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q", string(id))
	}
	return registry[i], nil
}

// Lookup returns the theme registered under id, or the default theme.
func Lookup(id ID) Theme {
	if th, err := Get(id); err == nil {
		return th
	}
	return registry[index[Default]]
}

// All returns every theme in registry order.
func All() []Theme {
	out := make([]Theme, len(registry))
	copy(out, registry[:])
	return out
}

// IDs returns every theme identifier in registry order.
func IDs() []ID {
	out := make([]ID, len(registry))
	for i, th := range registry {
		out[i] = th.ID
	}
	return out
}

func idStrings() []string {
	out := make([]string, len(registry))
	for i, th := range registry {
		out[i] = string(th.ID)
	}
	return out
}

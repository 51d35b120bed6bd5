// Package voices holds the fixed catalog of ElevenLabs voices the panel
// offers.
package voices

import "strings"

// Voice is a selectable synthetic voice.
type Voice struct {
	ID   string
	Name string
}

var catalog = [...]Voice{
	{ID: "EXAVITQu4vr4xnSDxMaL", Name: "Sarah"},
	{ID: "TX3LPaxmHKxFdv7VOQHJ", Name: "Liam"},
	{ID: "XB0fDUnXU5powFXDhCwa", Name: "Charlotte"},
	{ID: "pFZP5JQG7iQjIQuC4Bku", Name: "Lily"},
}

// All returns a copy of the catalog in display order.
func All() []Voice {
	out := make([]Voice, len(catalog))
	copy(out, catalog[:])
	return out
}

// Default returns the voice selected when the panel starts.
func Default() Voice {
	return catalog[0]
}

// Lookup finds a voice by its id.
func Lookup(id string) (Voice, bool) {
	for _, v := range catalog {
		if v.ID == id {
			return v, true
		}
	}
	return Voice{}, false
}

// Resolve accepts either a voice id or a display name (case-insensitive)
// and returns the matching voice.
func Resolve(s string) (Voice, bool) {
	if v, ok := Lookup(s); ok {
		return v, true
	}
	for _, v := range catalog {
		if strings.EqualFold(v.Name, s) {
			return v, true
		}
	}
	return Voice{}, false
}

// Names returns the display names in catalog order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, v := range catalog {
		names[i] = v.Name
	}
	return names
}

// Package provenance tags generated content with where it came from.
package provenance

// Source records how a piece of content was produced.
type Source string

const (
	None    Source = "none"
	AI      Source = "ai"
	Default Source = "default"
)

// Parse maps a wire value to a Source. Unknown values map to None.
func Parse(s string) Source {
	switch Source(s) {
	case AI, Default:
		return Source(s)
	default:
		return None
	}
}

// Label returns a short badge for display.
func (s Source) Label() string {
	switch s {
	case AI:
		return "AI"
	case Default:
		return "Default"
	default:
		return ""
	}
}

package entities

import "fmt"

// Quantity represents an integer quantity value for discrete manufacturing units
type Quantity int64

// Size represents the size class shared by parts, designs and products
type Size int

const (
	Small Size = iota
	Large
)

// Sizes lists every supported size class in display order
var Sizes = []Size{Small, Large}

// String method for Size enum, returns the wire token
func (s Size) String() string {
	switch s {
	case Small:
		return "S"
	case Large:
		return "L"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the supported size classes
func (s Size) Valid() bool {
	return s == Small || s == Large
}

// ParseSize converts a wire token into a Size
func ParseSize(token string) (Size, error) {
	switch token {
	case "S":
		return Small, nil
	case "L":
		return Large, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected S or L)", ErrUnsupportedSize, token)
	}
}

// MarshalText encodes the wire token
func (s Size) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSize, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a wire token
func (s *Size) UnmarshalText(text []byte) error {
	size, err := ParseSize(string(text))
	if err != nil {
		return err
	}
	*s = size
	return nil
}

// Part identifies one unit of raw material by type tag and size class.
// Two parts are the same entity iff tag and size both match.
type Part struct {
	Tag  string `json:"tag"`
	Size Size   `json:"size"`
}

// NewPart creates a validated Part
func NewPart(tag string, size Size) (Part, error) {
	if tag == "" {
		return Part{}, fmt.Errorf("part tag cannot be empty")
	}
	if !size.Valid() {
		return Part{}, fmt.Errorf("%w: %d", ErrUnsupportedSize, int(size))
	}
	return Part{Tag: tag, Size: size}, nil
}

// String returns the wire form, e.g. "aS"
func (p Part) String() string {
	return p.Tag + p.Size.String()
}

// Less orders parts by tag, then size
func (p Part) Less(other Part) bool {
	if p.Tag != other.Tag {
		return p.Tag < other.Tag
	}
	return p.Size < other.Size
}

// Package text reads designs and parts in the line-oriented wire format:
//
//	[Chair]S1a1b1c4    design: name, size, (count, tag)+, total parts
//	aS                 part: tag, size
package text

import (
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/vsinha/assembler/pkg/domain/entities"
)

var (
	designPattern     = regexp.MustCompile(`^\[(.+)\]([SL])((?:\d+[a-z])+)(\d+)$`)
	designPartPattern = regexp.MustCompile(`(\d+)([a-z])`)
	partPattern       = regexp.MustCompile(`^([a-z])([SL])$`)
)

// Loader handles parsing designs and parts from text lines
type Loader struct{}

// NewLoader creates a new text loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadDesigns parses every line of the design phase
func (l *Loader) LoadDesigns(src *Source) ([]*entities.Design, error) {
	var designs []*entities.Design
	for lineNo, line := range src.DesignLines() {
		design, err := l.ParseDesign(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		designs = append(designs, design)
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("failed to read designs: %w", err)
	}
	return designs, nil
}

// ParseDesign converts a design line such as "[Chair]S1a1b1c4" into a Design.
// A tag named more than once has its counts summed.
func (l *Loader) ParseDesign(line string) (*entities.Design, error) {
	match := designPattern.FindStringSubmatch(line)
	if match == nil {
		return nil, fmt.Errorf("%w: incorrect design format %q", entities.ErrMalformedInput, line)
	}

	name := norm.NFC.String(match[1])
	size, err := entities.ParseSize(match[2])
	if err != nil {
		return nil, fmt.Errorf("%w: design %q: %v", entities.ErrMalformedInput, line, err)
	}

	parts := make(map[entities.Part]entities.Quantity)
	for _, pm := range designPartPattern.FindAllStringSubmatch(match[3], -1) {
		amount, err := parseQuantity(pm[1])
		if err != nil {
			return nil, fmt.Errorf("%w: design %q: %v", entities.ErrMalformedInput, line, err)
		}
		parts[entities.Part{Tag: pm[2], Size: size}] += amount
	}

	total, err := parseQuantity(match[4])
	if err != nil {
		return nil, fmt.Errorf("%w: design %q: %v", entities.ErrMalformedInput, line, err)
	}

	design, err := entities.NewDesign(name, size, parts, total)
	if err != nil {
		return nil, fmt.Errorf("%w: design %q: %v", entities.ErrMalformedInput, line, err)
	}
	return design, nil
}

// ParsePart converts a part line such as "aS" into a Part
func (l *Loader) ParsePart(line string) (entities.Part, error) {
	match := partPattern.FindStringSubmatch(line)
	if match == nil {
		return entities.Part{}, fmt.Errorf("%w: incorrect part format %q", entities.ErrMalformedInput, line)
	}

	size, err := entities.ParseSize(match[2])
	if err != nil {
		return entities.Part{}, fmt.Errorf("%w: part %q: %v", entities.ErrMalformedInput, line, err)
	}
	return entities.Part{Tag: match[1], Size: size}, nil
}

func parseQuantity(s string) (entities.Quantity, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: %w", s, err)
	}
	return entities.Quantity(n), nil
}

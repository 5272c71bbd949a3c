package services

import (
	"fmt"
	"sort"

	"github.com/vsinha/assembler/pkg/domain/entities"
)

// DesignValidator checks a design set for shapes that parse fine but are
// likely mistakes
type DesignValidator struct{}

// NewDesignValidator creates a new design validator
func NewDesignValidator() *DesignValidator {
	return &DesignValidator{}
}

// ValidationResult contains the results of design validation
type ValidationResult struct {
	DuplicateNames []string
	FillerOnly     []string
	Shadowed       []ShadowedDesign
	Warnings       []string
}

// ShadowedDesign is a design that a design queued before it always beats: the
// earlier one needs a subset of its parts, so whenever the later design is
// satisfiable the earlier one is too.
type ShadowedDesign struct {
	Design string
	By     string
}

// HasIssues reports whether any warning was produced
func (r *ValidationResult) HasIssues() bool {
	return len(r.Warnings) > 0
}

// ValidateDesigns inspects designs in queue order
func (v *DesignValidator) ValidateDesigns(designs []*entities.Design) *ValidationResult {
	result := &ValidationResult{
		DuplicateNames: make([]string, 0),
		FillerOnly:     make([]string, 0),
		Shadowed:       make([]ShadowedDesign, 0),
		Warnings:       make([]string, 0),
	}

	result.DuplicateNames = v.detectDuplicateNames(designs)
	for _, name := range result.DuplicateNames {
		result.Warnings = append(result.Warnings, fmt.Sprintf("design name %q is used more than once", name))
	}

	for _, design := range designs {
		if len(design.Parts) == 0 && design.TotalParts > 0 {
			result.FillerOnly = append(result.FillerOnly, design.Name)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("design %s names no parts; all %d parts are filler", design.Name, design.TotalParts))
		}
	}

	result.Shadowed = v.detectShadowed(designs)
	for _, s := range result.Shadowed {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("design %s only fires after %s has rotated behind it", s.Design, s.By))
	}

	return result
}

// detectDuplicateNames returns names that appear more than once, sorted
func (v *DesignValidator) detectDuplicateNames(designs []*entities.Design) []string {
	counts := make(map[string]int)
	for _, design := range designs {
		counts[design.Name]++
	}

	duplicates := make([]string, 0)
	for name, n := range counts {
		if n > 1 {
			duplicates = append(duplicates, name)
		}
	}
	sort.Strings(duplicates)
	return duplicates
}

// detectShadowed finds later designs whose requirements cover an earlier
// design of the same size
func (v *DesignValidator) detectShadowed(designs []*entities.Design) []ShadowedDesign {
	shadowed := make([]ShadowedDesign, 0)
	for i, later := range designs {
		for _, earlier := range designs[:i] {
			if earlier.Name != later.Name && covers(later, earlier) {
				shadowed = append(shadowed, ShadowedDesign{Design: later.Name, By: earlier.Name})
				break
			}
		}
	}
	return shadowed
}

// covers reports whether every stock state satisfying a also satisfies b
func covers(a, b *entities.Design) bool {
	if a.Size != b.Size || a.TotalParts < b.TotalParts {
		return false
	}
	for part, qty := range b.Parts {
		if a.Parts[part] < qty {
			return false
		}
	}
	return true
}

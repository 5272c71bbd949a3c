package entities

import (
	"errors"
	"testing"
)

func TestDesign_Validation(t *testing.T) {
	a := Part{Tag: "a", Size: Small}
	b := Part{Tag: "b", Size: Small}

	validDesign, err := NewDesign("Chair", Small, map[Part]Quantity{a: 1, b: 2}, 5)
	if err != nil {
		t.Fatalf("Expected valid design creation to succeed: %v", err)
	}
	if validDesign.NamedCount() != 3 {
		t.Errorf("Expected named count 3, got %d", validDesign.NamedCount())
	}
	if validDesign.FillerCount() != 2 {
		t.Errorf("Expected filler count 2, got %d", validDesign.FillerCount())
	}

	testCases := []struct {
		name        string
		designName  string
		size        Size
		parts       map[Part]Quantity
		total       Quantity
		expectError string
	}{
		{"empty name", "", Small, map[Part]Quantity{a: 1}, 1, "design name cannot be empty"},
		{
			"zero quantity",
			"Chair",
			Small,
			map[Part]Quantity{a: 0},
			1,
			"design Chair: quantity for part aS must be positive, got 0",
		},
		{
			"mismatched part size",
			"Chair",
			Large,
			map[Part]Quantity{a: 1},
			1,
			"design Chair: part aS does not match design size L",
		},
		{
			"total below named",
			"Chair",
			Small,
			map[Part]Quantity{a: 2, b: 2},
			3,
			"design Chair: total parts (3) cannot be less than named parts (4)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDesign(tc.designName, tc.size, tc.parts, tc.total)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestDesign_UnsupportedSize(t *testing.T) {
	_, err := NewDesign("Chair", Size(7), nil, 1)
	if !errors.Is(err, ErrUnsupportedSize) {
		t.Fatalf("Expected ErrUnsupportedSize, got %v", err)
	}
}

func TestDesign_CopiesParts(t *testing.T) {
	a := Part{Tag: "a", Size: Small}
	parts := map[Part]Quantity{a: 1}

	design, err := NewDesign("Box", Small, parts, 3)
	if err != nil {
		t.Fatalf("Failed to create design: %v", err)
	}
	parts[a] = 10

	if design.Parts[a] != 1 {
		t.Errorf("Expected design to keep its own copy of parts, got %d", design.Parts[a])
	}
}

func TestDesign_String(t *testing.T) {
	design, err := NewDesign("Trash can", Large, map[Part]Quantity{
		{Tag: "d", Size: Large}: 6,
		{Tag: "a", Size: Large}: 1,
		{Tag: "c", Size: Large}: 4,
		{Tag: "b", Size: Large}: 12,
	}, 30)
	if err != nil {
		t.Fatalf("Failed to create design: %v", err)
	}

	expected := "[Trash can]L1a12b4c6d30"
	if design.String() != expected {
		t.Errorf("Expected %s, got %s", expected, design.String())
	}
}

package dto

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/assembler/pkg/domain/entities"
)

// DesignCount is the number of products one design produced
type DesignCount struct {
	Design   string `json:"design"`
	Products int    `json:"products"`
}

// AssemblySummary describes a run of the assembly service
type AssemblySummary struct {
	PartsReceived     entities.Quantity `json:"parts_received"`
	ProductsAssembled int               `json:"products_assembled"`
	NamedUnits        entities.Quantity `json:"named_units"`
	FillerUnits       entities.Quantity `json:"filler_units"`
	// FillerRatio is FillerUnits / (NamedUnits + FillerUnits), zero when nothing was consumed
	FillerRatio    decimal.Decimal   `json:"filler_ratio"`
	StockRemaining entities.Quantity `json:"stock_remaining"`
	DesignsQueued  int               `json:"designs_queued"`
	PerDesign      []DesignCount     `json:"per_design"`
}

// FillerRatio computes filler / (named + filler) rounded to four places
func FillerRatio(named, filler entities.Quantity) decimal.Decimal {
	consumed := named + filler
	if consumed <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(filler)).
		DivRound(decimal.NewFromInt(int64(consumed)), 4)
}

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vsinha/assembler/pkg/application/dto"
	"github.com/vsinha/assembler/pkg/domain/entities"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidFormats lists the accepted --format values
var ValidFormats = []string{FormatText, FormatJSON}

// IsValidFormat reports whether format is one of ValidFormats
func IsValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// ProductRecord is the JSON form of one assembled product
type ProductRecord struct {
	ID     string                       `json:"id"`
	Name   string                       `json:"name"`
	Size   string                       `json:"size"`
	Parts  map[string]entities.Quantity `json:"parts"`
	Filler map[string]entities.Quantity `json:"filler"`
	Text   string                       `json:"text"`
}

// NewProductRecord flattens a product for JSON output
func NewProductRecord(product *entities.Product) ProductRecord {
	return ProductRecord{
		ID:     product.ID,
		Name:   product.Name,
		Size:   product.Size.String(),
		Parts:  partKeys(product.Parts),
		Filler: partKeys(product.Filler),
		Text:   product.String(),
	}
}

// Writer prints products, stock and summaries in one format
type Writer struct {
	format string
	w      io.Writer
	enc    *json.Encoder
}

// NewWriter creates a writer for format ("text" or "json")
func NewWriter(w io.Writer, format string) (*Writer, error) {
	if !IsValidFormat(format) {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	return &Writer{format: format, w: w, enc: json.NewEncoder(w)}, nil
}

// Product prints one product: its canonical text, or one JSON object per line
func (o *Writer) Product(product *entities.Product) error {
	if o.format == FormatJSON {
		return o.enc.Encode(NewProductRecord(product))
	}
	_, err := fmt.Fprintln(o.w, product.String())
	return err
}

// Design prints one design in its wire form
func (o *Writer) Design(design *entities.Design) error {
	if o.format == FormatJSON {
		return o.enc.Encode(struct {
			Name       string                       `json:"name"`
			Size       string                       `json:"size"`
			Parts      map[string]entities.Quantity `json:"parts"`
			TotalParts entities.Quantity            `json:"total_parts"`
			Text       string                       `json:"text"`
		}{design.Name, design.Size.String(), partKeys(design.Parts), design.TotalParts, design.String()})
	}
	_, err := fmt.Fprintln(o.w, design.String())
	return err
}

// Stock prints the stock listing
func (o *Writer) Stock(stock map[entities.Part]entities.Quantity) error {
	if o.format == FormatJSON {
		var total entities.Quantity
		for _, qty := range stock {
			total += qty
		}
		return o.enc.Encode(struct {
			Stock map[string]entities.Quantity `json:"stock"`
			Total entities.Quantity            `json:"total"`
		}{partKeys(stock), total})
	}
	_, err := fmt.Fprintln(o.w, StockListing(stock))
	return err
}

// Summary prints run statistics
func (o *Writer) Summary(summary dto.AssemblySummary) error {
	if o.format == FormatJSON {
		return o.enc.Encode(struct {
			Summary dto.AssemblySummary `json:"summary"`
		}{summary})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Parts received: %d\n", summary.PartsReceived)
	fmt.Fprintf(&b, "Products assembled: %d\n", summary.ProductsAssembled)
	fmt.Fprintf(&b, "Units consumed: %d named, %d filler (filler ratio %s)\n",
		summary.NamedUnits, summary.FillerUnits, summary.FillerRatio.StringFixed(2))
	fmt.Fprintf(&b, "Stock remaining: %d\n", summary.StockRemaining)
	for _, dc := range summary.PerDesign {
		fmt.Fprintf(&b, "  %s: %d\n", dc.Design, dc.Products)
	}
	_, err := io.WriteString(o.w, b.String())
	return err
}

// StockListing renders stock as "aS: 1" lines ordered by tag, then a total
func StockListing(stock map[entities.Part]entities.Quantity) string {
	var b strings.Builder
	var total entities.Quantity
	for _, pq := range entities.SortPartQuantities(stock) {
		fmt.Fprintf(&b, "%s: %d\n", pq.Part, pq.Quantity)
		total += pq.Quantity
	}
	fmt.Fprintf(&b, "Total: %d", total)
	return b.String()
}

func partKeys(parts map[entities.Part]entities.Quantity) map[string]entities.Quantity {
	keyed := make(map[string]entities.Quantity, len(parts))
	for part, qty := range parts {
		keyed[part.String()] = qty
	}
	return keyed
}

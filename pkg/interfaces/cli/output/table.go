package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"

	"github.com/vsinha/assembler/pkg/domain/entities"
)

var (
	boldStyle = lipgloss.NewStyle().Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// newTable creates a table with the first column in bold
func newTable(w io.Writer, headers ...interface{}) table.Table {
	tbl := table.New(headers...)
	tbl.WithWriter(w)
	tbl.WithFirstColumnFormatter(func(format string, vals ...interface{}) string {
		return boldStyle.Render(fmt.Sprintf(format, vals...))
	})
	tbl.WithPadding(2)
	tbl.WithWidthFunc(lipgloss.Width)
	return tbl
}

// StockTable prints stock as a table with one row per part, marking parts that
// some design names.
func StockTable(w io.Writer, stock map[entities.Part]entities.Quantity, referenced func(entities.Part) bool) {
	tbl := newTable(w, "PART", "SIZE", "COUNT", "NAMED")

	var total entities.Quantity
	for _, pq := range entities.SortPartQuantities(stock) {
		named := dimStyle.Render("no")
		if referenced != nil && referenced(pq.Part) {
			named = "yes"
		}
		tbl.AddRow(pq.Part.Tag, pq.Part.Size, pq.Quantity, named)
		total += pq.Quantity
	}
	tbl.AddRow("total", "", total, "")
	tbl.Print()
}

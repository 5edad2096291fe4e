package table

import (
	"fmt"
	"io"

	"scrapers/tools/internal/domain"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var header = table.Row{"Name", "Capital city", "Flag"}

// Printer renders countries as a centered three column table followed by a
// blank line. Rows keep the input order.
type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Print(countries []domain.Country) error {
	t := table.NewWriter()
	t.SetStyle(plainStyle())
	t.AppendHeader(header)

	columns := make([]table.ColumnConfig, 0, len(header))
	for i := range header {
		columns = append(columns, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignCenter,
			AlignHeader: text.AlignCenter,
		})
	}
	t.SetColumnConfigs(columns)

	for _, country := range countries {
		row := country.Row()
		t.AppendRow(table.Row{row.Name, row.Capital, row.Flag})
	}

	if _, err := fmt.Fprintf(p.out, "%s\n\n", t.Render()); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

// plainStyle draws no borders or separators and keeps header case as is.
func plainStyle() table.Style {
	style := table.StyleDefault
	style.Name = "Plain"
	style.Options = table.OptionsNoBordersAndSeparators
	style.Format.Header = text.FormatDefault
	return style
}

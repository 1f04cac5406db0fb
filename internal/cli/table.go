package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jacksmith/lmdb/internal/model"
)

// DefaultMaxTitleWidth is the default maximum visible width for title columns.
const DefaultMaxTitleWidth = 60

// FilmTable renders films as a table in the order given.
func FilmTable(films []model.Film) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{"ID", "Title", "Director", "Year"})
	for _, f := range films {
		tw.AppendRow(table.Row{
			model.FormatID(f.ID),
			orDash(f.Title),
			orDash(f.Director),
			strconv.Itoa(f.Year),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft, WidthMax: DefaultMaxTitleWidth},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft, WidthMax: DefaultMaxTitleWidth},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

// FilmDetails renders one film as labelled lines.
func FilmDetails(f model.Film) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Bold(model.FormatID(f.ID)), f.Title)
	fmt.Fprintf(&b, "  %-9s %s\n", "Title:", orDash(f.Title))
	fmt.Fprintf(&b, "  %-9s %s\n", "Director:", orDash(f.Director))
	fmt.Fprintf(&b, "  %-9s %d\n", "Year:", f.Year)
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

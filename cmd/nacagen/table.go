package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"nacagen/internal/audit"
	"nacagen/internal/batch"
	"nacagen/internal/report"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func render(t table.Writer, markdown bool) {
	if markdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}

func coord(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

// renderCoordinates prints the parsed ordinates. Symmetric sections have a
// single thickness column.
func renderCoordinates(w io.Writer, c *report.Coordinates, markdown bool) {
	t := newTable(w)
	right := []table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	}
	if c.Schema == report.Symmetric {
		t.AppendHeader(table.Row{"#", "x", "y"})
		for i := range c.X {
			t.AppendRow(table.Row{i + 1, coord(c.X[i]), coord(c.YUpper[i])})
		}
	} else {
		t.AppendHeader(table.Row{"#", "x", "y upper", "y lower"})
		for i := range c.X {
			t.AppendRow(table.Row{i + 1, coord(c.X[i]), coord(c.YUpper[i]), coord(c.YLower[i])})
		}
	}
	t.SetColumnConfigs(right)
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d points", c.Len())})
	render(t, markdown)
}

func renderBatch(w io.Writer, res *batch.RunResult, markdown bool) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Name", "Stem", "Schema", "Points", "Export"})
	for _, item := range res.Items {
		t.AppendRow(table.Row{item.Index, item.Name, item.Stem, item.Schema, item.Points, item.Export})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 5, Align: text.AlignRight}})
	render(t, markdown)
}

func renderHistory(w io.Writer, events []audit.Event, markdown bool) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Time", "Type", "Stem", "Payload"})
	for _, ev := range events {
		t.AppendRow(table.Row{ev.ID, ev.Time.Local().Format("2006-01-02 15:04:05"), ev.Type, ev.Stem, ev.PayloadJSON})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 5, WidthMax: 60}})
	render(t, markdown)
}

package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// reportTable describes one titled table printed by the check and devices
// commands. Caption is printed under the table when set.
type reportTable struct {
	Title   string
	Headers []string
	Rows    [][]string
	Aligns  []columnAlignment
	// Wrap caps a column's width (by index), soft-wrapping longer cells.
	// Paths and driver strings are the usual offenders.
	Wrap    map[int]int
	Caption string
}

func (r reportTable) Render() string {
	columns := len(r.Headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if r.Title != "" {
		tw.SetTitle(r.Title)
	}
	if r.Caption != "" {
		tw.SetCaption(r.Caption)
	}

	header := make(table.Row, columns)
	for i, h := range r.Headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range r.Rows {
		cells := make(table.Row, columns)
		for i := range cells {
			cells[i] = ""
			if i < len(row) {
				cells[i] = row[i]
			}
		}
		tw.AppendRow(cells)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		cfg := table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		}
		if i < len(r.Aligns) && r.Aligns[i] == alignRight {
			cfg.Align = text.AlignRight
		}
		if width, ok := r.Wrap[i]; ok && width > 0 {
			cfg.WidthMax = width
			cfg.WidthMaxEnforcer = text.WrapSoft
		}
		configs = append(configs, cfg)
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

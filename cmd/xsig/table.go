package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/wippyai/offload/callspec"
)

var headers = []string{"#", "kind", "type", "dims", "shape", "mode", "bytes", "values"}

// renderTable prints one row per bound descriptor. Colors are applied only
// when styled is set.
func renderTable(b *callspec.Binding, styled bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)

	for i := 0; i < b.Len(); i++ {
		t.Row(describe(b, i)...)
	}

	if styled {
		t.BorderStyle(helpStyle).StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Bold(true).Foreground(accent)
			case col == 1:
				return style.Inherit(kernelStyle)
			case col == 2:
				return style.Inherit(typeStyle)
			case col == len(headers)-1:
				return style.Inherit(valueStyle)
			}
			return style
		})
	}
	return t.String()
}

func describe(b *callspec.Binding, i int) []string {
	d := &b.Signature[i]

	mode := "value"
	if d.ByRef() {
		mode = "ref"
	}

	shape := make([]string, 0, len(d.Shape()))
	for _, extent := range d.Shape() {
		shape = append(shape, strconv.Itoa(extent))
	}

	size := "?"
	if n, err := d.DataSize(); err == nil {
		size = strconv.Itoa(n)
	}

	values, err := b.Format(i)
	if err != nil {
		values = fmt.Sprintf("error: %v", err)
	}

	return []string{
		strconv.Itoa(i),
		d.Kind().String(),
		d.Type().String(),
		strconv.Itoa(d.Dims()),
		"[" + strings.Join(shape, "x") + "]",
		mode,
		size,
		values,
	}
}

package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/holon-run/nativegen/pkg/codegen"
)

func renderSummary(w io.Writer, stats codegen.Stats) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.AppendHeader(table.Row{"Namespace", "Functions", "Placeholders", "Out params"})

	var placeholders, outParams int
	for _, ns := range stats.Namespaces {
		tbl.AppendRow(table.Row{ns.Name, ns.Functions, ns.Placeholders, ns.OutParams})
		placeholders += ns.Placeholders
		outParams += ns.OutParams
	}
	tbl.AppendFooter(table.Row{"Total", stats.Functions(), placeholders, outParams})
	tbl.Render()
}

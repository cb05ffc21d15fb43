// Package report renders the driver-facing artifacts spec.md §6 describes
// as external to the core: an HTML symbol-table report and plain-text error
// logs. None of the retrieved example repos import a third-party HTML
// templating library (the pack's only template usage is text/template for
// source-code generation, an unrelated concern) so this uses the standard
// library's html/template, auto-escaping every rendered field - the
// DESIGN.md-required justification for a standard-library choice.
package report

import (
	"fmt"
	"html/template"
	"io"
	"sort"

	"github.com/dekarrin/coins/internal/coins/coinserr"
	"github.com/dekarrin/coins/internal/coins/symtab"
)

const symbolTableTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Coins symbol table</title>
<style>
table { border-collapse: collapse; font-family: monospace; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
</style>
</head>
<body>
<h1>Symbol table</h1>
<table>
<tr><th>Name</th><th>Category</th><th>Declared type</th><th>Signature</th><th>Current value</th></tr>
{{range .}}<tr><td>{{.Name}}</td><td>{{.Category}}</td><td>{{.DeclaredType}}</td><td>{{.Signature}}</td><td>{{.CurrentValue}}</td></tr>
{{end}}</table>
</body>
</html>
`

var tmpl = template.Must(template.New("symtab").Parse(symbolTableTemplate))

// row is the template-facing view of a symtab.Symbol; Signature is
// pre-rendered here since html/template has no convenient way to format a
// []ParamInfo inline.
type row struct {
	Name         string
	Category     string
	DeclaredType string
	Signature    string
	CurrentValue string
}

// WriteSymbolTableHTML renders syms as an HTML table to w, in insertion
// order (spec.md §3: "insertion order is preserved for rendering").
func WriteSymbolTableHTML(w io.Writer, syms *symtab.Table) error {
	symbols := syms.All()
	rows := make([]row, len(symbols))
	for i, s := range symbols {
		rows[i] = row{
			Name:         s.Name,
			Category:     s.Category.String(),
			DeclaredType: s.DeclaredType,
			Signature:    signatureOf(s),
			CurrentValue: s.CurrentValue,
		}
	}
	return tmpl.Execute(w, rows)
}

func signatureOf(s symtab.Symbol) string {
	if s.Category != symtab.Procedure && s.Category != symtab.Function {
		return ""
	}
	sig := "("
	for i, p := range s.Params {
		if i > 0 {
			sig += ", "
		}
		sig += p.Type + " " + p.Name
	}
	sig += ")"
	if s.Category == symtab.Function {
		sig += " -> " + s.ReturnType
	}
	return sig
}

// WriteErrorLog writes diags as one plain-text line per diagnostic,
// prefixed by category, per spec.md §6.4: "Error logs are plain text, one
// error per line, prefixed by category." Diagnostics are sorted by source
// position so the log reads in file order regardless of which phase or
// pass order they were collected in.
func WriteErrorLog(w io.Writer, diags []coinserr.Diagnostic) error {
	sorted := make([]coinserr.Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Pos.Offset < sorted[j].Pos.Offset
	})
	for _, d := range sorted {
		if _, err := fmt.Fprintf(w, "[%s] %s (%s)\n", d.Cat, d.Msg, d.Pos); err != nil {
			return err
		}
	}
	return nil
}

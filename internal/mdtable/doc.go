// Package mdtable reads and writes the pipe-delimited markdown tables that
// hold task board state.
//
// Tables are parsed into Rows keyed by header text and rendered back with an
// explicit header order:
//
//	headers, rows := mdtable.Parse(mdtable.ExtractSection(doc, "Backlog"))
//	text, err := mdtable.Render(rows, headers)
//
// Cell values are not escaped. A value containing a literal "|" splits into
// two cells the next time the table is parsed.
//
// A table is one run of consecutive pipe lines, so a section may hold
// several, each under its own "###" sub-heading. Document wraps a whole
// markdown file so one table can be replaced without touching the rest of
// the text.
package mdtable

// Package board reads and mutates per-project markdown task boards.
//
// A board lives at <root>/<agents>/projects/<name>/tasks.md. Each "## Section"
// heading holds one markdown table and the section a row sits in is its
// status. Mutations (Move, UpdateField) parse the affected tables, change the
// structured rows, and re-render the whole document; no text is patched in
// place.
//
// Column layouts differ between boards, so decoding goes through a Schema
// resolved once per project. The standard schema is header driven; the
// legacy schema reads the Backlog table positionally.
package board

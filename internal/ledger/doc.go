// Package ledger aggregates open work across every project board into a
// single regenerated markdown document (OPENTASKS.md).
//
// Only Backlog and In Progress rows are collected; the ledger is an
// open-work view, not a history. The document is rebuilt in full on every
// run and always parses, even when it holds no table.
package ledger

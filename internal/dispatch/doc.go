// Package dispatch hands a ledger task to external agent CLIs.
//
// Each supported tool (claude, codex, gemini, jules) is a child process run
// from the board root. A successful run writes the tool's summary to its
// configured output file as
//
//	# <Label> Task: <id>
//
//	<summary>
//
// Runs are sequential and fail-soft: RunAll keeps going after a tool fails
// and reports every outcome. Tools with a daily limit consult a
// UsageCounter and ask for confirmation once the limit is reached.
package dispatch

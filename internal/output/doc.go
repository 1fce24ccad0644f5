// Package output provides structured output handling for the taskboard CLI.
//
// Every command writes through a Printer so the same command works for a human
// at a terminal and for an agent that passes --json.
//
// # Printer
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "Moved WBR-001 to In Progress"})
//	printer.Table([]string{"ID", "Title"}, rows)
//	printer.Panel("Task Selected", body)
//
// In JSON mode success payloads are written as-is and errors become
// {"error": "...", "code": N}.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad flags, project/task not found, malformed input
//	output.ExitSystemError // 2: I/O failures
//	output.ExitConflict    // 3: entry already logged
//	output.ExitDispatch    // 4: every selected agent run failed
package output

package dispatch

import "errors"

// Sentinel errors, wrapped with tool context.
var (
	ErrUnknownTool      = errors.New("unknown agent tool")
	ErrToolNotInstalled = errors.New("agent CLI not found")
	ErrToolFailed       = errors.New("agent CLI failed")
	ErrQuotaDeclined    = errors.New("run skipped: daily quota reached")
)

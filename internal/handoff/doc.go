// Package handoff maintains HANDOFFS.md, the running log agents leave for
// whoever picks up next.
//
// Each entry is tagged with an HTML comment marker,
//
//	<!-- handoff-id: pr-42 -->
//
// so re-running the merge hook for the same pull request is a no-op.
// Entries written without a key get a random UUID and fall back to the
// older title check: any existing entry containing the quoted title counts
// as a duplicate, which can misfire when unrelated entries share a title.
package handoff

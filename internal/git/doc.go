// Package git provides the few Git operations taskboard needs, via exec.
//
// Commands run through Run, RunContext, or RunIn (which sets the working
// directory). Failures come back as *output.ExitError:
//   - ExitSystemError (2) when git is missing or a command fails
//
// Board root discovery uses RepoRoot; the ledger, handoff, and sitemap
// commands use SafeCommit to stage and commit regenerated files:
//
//	committed, err := git.SafeCommit(ctx, root, []string{"agents/OPENTASKS.md"}, "chore: refresh ledger")
package git

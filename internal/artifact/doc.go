// Package artifact renders the markdown files an agent works from: per-task
// session logs, implementation prompts, and free-form working session logs.
//
// Templates are markdown with YAML frontmatter and {{var}} placeholders.
// They resolve in order:
//  1. <root>/<agents>/templates/<name>.md (board)
//  2. <config dir>/templates/<name>.md (user global)
//  3. Built-in templates (embedded in binary)
package artifact

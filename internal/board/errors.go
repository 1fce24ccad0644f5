package board

import "errors"

// Sentinel errors. Callers match with errors.Is.
var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrTasksFileMissing = errors.New("tasks file not found")
	ErrNoTasks          = errors.New("no tasks found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrUnknownSection   = errors.New("unknown section")
	ErrUnknownField     = errors.New("unknown field")
	ErrUnknownSchema    = errors.New("unknown table schema")
)

// Package editor provides handlers for text editing commands.
//
// EditHandler implements delete, insert, undo and redo. YankHandler
// implements the kill ring commands yank, paste, paste-before and
// rotate-kill-ring. Every edit applies to all selections of the active
// view as one undo unit.
package editor

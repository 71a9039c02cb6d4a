// Package rebase rewrites interactive rebase todo files.
//
// stepwise registers itself as git's sequence editor. Each invocation reads
// the todo, applies one Mode and writes it back. Modes splice exec lines
// that call back into stepwise so that every phase of a step edit (amend,
// renumber, re-render manuals) happens inside the same rebase. State between
// phases travels through the storage package.
package rebase

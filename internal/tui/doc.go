// Package tui holds the interactive prompts of stepwise (using bubbletea and
// bubbles). Prompts refuse to run when STEPWISE_NON_INTERACTIVE is set, so
// commands invoked by git never block on a terminal.
package tui

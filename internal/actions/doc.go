// Package actions provides the business logic behind the stepwise commands.
//
// User-facing actions (step edit, step reword, manual render-all) start an
// interactive rebase whose sequence editor is stepwise itself. The rebase
// then calls back into the helper actions (reword, super-pick, render,
// commit-msg hook) from the exec lines the editor composed, passing state
// through the flag store.
//
// Key patterns:
//   - Actions accept runtime.Context which provides Repo, Config, Store and Splog
//   - Actions never hold state between invocations; each rebase phase is a new process
//   - Prompts go through the tui package and survey, only when utils.IsInteractive
package actions

// Package ui contains the Bubble Tea program that powers the selection menu.
// Model focuses on message orchestration while small helpers own navigation
// and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry (key presses, window size changes).
//   - Key presses move the cursor held by internal/ui/state.Cursor. Enter and
//     q resolve a menu.Selection and quit the program.
//   - View renders a frame only when the cursor, the terminal size, or the
//     corner index visibility changed; otherwise the previous frame is reused.
//
// Terminal ownership:
//   - Session captures the terminal mode when it is created and puts it back
//     in Close, once, whatever path the program leaves by.
//   - Option payloads are never executed here; the caller inspects the
//     returned Selection after the program has released the terminal.
package ui

// Package completion proposes text completions at the caret and manages the
// popup that presents them.
//
// The package has two halves:
//
//   - Providers answer "should I activate for this character" and "what do
//     I suggest for this prefix". PrefixProvider filters a flat catalogue
//     case-insensitively and ranks shorter matches first. Any other source
//     implements the Provider interface; a Registry composes several.
//   - Controller is the popup state machine. It is either hidden or visible
//     with a non-empty candidate list, owns exactly one tooltip marker while
//     visible, and turns Up/Down/Tab/Enter/Escape into selection changes.
//
// Accepting a candidate is reported, not performed: when HandleKeyPress
// returns true for Tab or Enter the caller reads SelectedItem, edits its
// own buffer and hides the controller.
//
// Nothing in this package is safe for concurrent use; it runs on the UI
// goroutine alongside the buffer it completes.
package completion

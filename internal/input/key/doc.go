// Package key provides key event types for the input system.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a named key, or KeyRune for ordinary characters
//   - Modifier: Bit set of modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: A single key press with its rune and modifiers
//
// Named keys form a closed set so that consumers can switch over them
// exhaustively; everything else arrives as KeyRune with the character in
// Event.Rune.
package key

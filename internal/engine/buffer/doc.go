// Package buffer provides the text storage the completion host edits and
// the read-only view completion providers receive.
//
// Position Types:
//
//   - ByteOffset: Raw byte position in the buffer, totally ordered
//   - Point: Line and column position (0-indexed, column in bytes)
//   - Range: Half-open byte range [Start, End)
//
// Providers only ever see the Reader interface; they may read but never
// mutate the text they are asked to complete.
package buffer

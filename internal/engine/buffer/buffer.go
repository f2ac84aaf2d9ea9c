package buffer

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
)

// Reader is the read-only view of a buffer handed to completion providers.
type Reader interface {
	// Text returns the full content.
	Text() string
	// TextRange returns the text in [start, end), clamped to the content.
	TextRange(start, end ByteOffset) string
	// Len returns the content length in bytes.
	Len() ByteOffset
	// OffsetToPoint converts a byte offset to a line/column point.
	OffsetToPoint(offset ByteOffset) Point
}

// Buffer is an in-memory text buffer with line-aware coordinate conversion.
// It is owned by the UI goroutine and is not safe for concurrent use.
type Buffer struct {
	text string
}

var _ Reader = (*Buffer)(nil)

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewBufferFromString creates a buffer with initial content.
// Line endings are normalized to LF.
func NewBufferFromString(s string) *Buffer {
	return &Buffer{text: normalizeLineEndings(s)}
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	return b.text
}

// TextRange returns text in the given byte range.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	n := ByteOffset(len(b.text))
	start = clampOffset(start, n)
	end = clampOffset(end, n)
	if start >= end {
		return ""
	}
	return b.text[start:end]
}

func clampOffset(offset, n ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > n {
		return n
	}
	return offset
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() ByteOffset {
	return ByteOffset(len(b.text))
}

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	return len(b.text) == 0
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() uint32 {
	return uint32(strings.Count(b.text, "\n")) + 1
}

// LineText returns the text of a line without its terminating newline.
func (b *Buffer) LineText(line uint32) string {
	start := b.LineStartOffset(line)
	end := b.LineEndOffset(line)
	return b.text[start:end]
}

// LineStartOffset returns the offset of the first byte of a line.
// Lines past the end map to the buffer length.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	if line == 0 {
		return 0
	}
	var seen uint32
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			seen++
			if seen == line {
				return ByteOffset(i + 1)
			}
		}
	}
	return b.Len()
}

// LineEndOffset returns the offset of a line's newline (or the buffer end).
func (b *Buffer) LineEndOffset(line uint32) ByteOffset {
	start := b.LineStartOffset(line)
	if idx := strings.IndexByte(b.text[start:], '\n'); idx >= 0 {
		return start + ByteOffset(idx)
	}
	return b.Len()
}

// OffsetToPoint converts a byte offset to a line/column point.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	offset = clampOffset(offset, b.Len())
	prefix := b.text[:offset]
	line := strings.Count(prefix, "\n")
	col := offset
	if idx := strings.LastIndexByte(prefix, '\n'); idx >= 0 {
		col = offset - ByteOffset(idx+1)
	}
	return Point{Line: uint32(line), Column: uint32(col)}
}

// PointToOffset converts a line/column point to a byte offset.
// Columns past the end of the line clamp to the line end.
func (b *Buffer) PointToOffset(p Point) ByteOffset {
	start := b.LineStartOffset(p.Line)
	end := b.LineEndOffset(p.Line)
	if off := start + ByteOffset(p.Column); off < end {
		return off
	}
	return end
}

// RuneBefore returns the rune ending at offset and its size in bytes.
// Returns (utf8.RuneError, 0) at the start of the buffer.
func (b *Buffer) RuneBefore(offset ByteOffset) (rune, int) {
	offset = clampOffset(offset, b.Len())
	if offset == 0 {
		return utf8.RuneError, 0
	}
	return utf8.DecodeLastRuneInString(b.text[:offset])
}

// RuneAt returns the rune starting at offset and its size in bytes.
// Returns (utf8.RuneError, 0) at the end of the buffer.
func (b *Buffer) RuneAt(offset ByteOffset) (rune, int) {
	if offset < 0 || offset >= b.Len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(b.text[offset:])
}

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	if offset < 0 || offset > b.Len() {
		return 0, ErrOffsetOutOfRange
	}
	text = normalizeLineEndings(text)
	b.text = b.text[:offset] + text + b.text[offset:]
	return offset + ByteOffset(len(text)), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	if start < 0 || start > end || end > b.Len() {
		return ErrRangeInvalid
	}
	b.text = b.text[:start] + b.text[end:]
	return nil
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	if start < 0 || start > end || end > b.Len() {
		return 0, ErrRangeInvalid
	}
	text = normalizeLineEndings(text)
	b.text = b.text[:start] + text + b.text[end:]
	return start + ByteOffset(len(text)), nil
}

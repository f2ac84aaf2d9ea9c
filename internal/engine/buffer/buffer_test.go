package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBufferFromStringNormalizesLineEndings(t *testing.T) {
	b := NewBufferFromString("a\r\nb\rc")
	assert.Equal(t, "a\nb\nc", b.Text())
	assert.Equal(t, uint32(3), b.LineCount())
}

func TestBufferTextRangeClamps(t *testing.T) {
	b := NewBufferFromString("hello")

	tests := []struct {
		name       string
		start, end ByteOffset
		want       string
	}{
		{"inside", 1, 3, "el"},
		{"negative start", -4, 2, "he"},
		{"end past length", 3, 99, "lo"},
		{"inverted", 4, 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.TextRange(tt.start, tt.end))
		})
	}
}

func TestBufferLines(t *testing.T) {
	b := NewBufferFromString("first\nsecond\n\nlast")

	assert.Equal(t, uint32(4), b.LineCount())
	assert.Equal(t, "first", b.LineText(0))
	assert.Equal(t, "second", b.LineText(1))
	assert.Equal(t, "", b.LineText(2))
	assert.Equal(t, "last", b.LineText(3))
	assert.Equal(t, ByteOffset(6), b.LineStartOffset(1))
	assert.Equal(t, ByteOffset(12), b.LineEndOffset(1))
	assert.Equal(t, b.Len(), b.LineStartOffset(10))
}

func TestBufferOffsetPointRoundTrip(t *testing.T) {
	b := NewBufferFromString("ab\ncde\nf")

	p := b.OffsetToPoint(5)
	assert.Equal(t, Point{Line: 1, Column: 2}, p)
	assert.Equal(t, ByteOffset(5), b.PointToOffset(p))

	assert.Equal(t, Point{Line: 0, Column: 0}, b.OffsetToPoint(-1))
	assert.Equal(t, Point{Line: 2, Column: 1}, b.OffsetToPoint(100))
	assert.Equal(t, ByteOffset(6), b.PointToOffset(Point{Line: 1, Column: 40}))
}

func TestBufferEdits(t *testing.T) {
	b := NewBuffer()
	require.True(t, b.IsEmpty())

	end, err := b.Insert(0, "$cl")
	require.NoError(t, err)
	assert.Equal(t, ByteOffset(3), end)

	end, err = b.Replace(1, 3, "clk_en")
	require.NoError(t, err)
	assert.Equal(t, ByteOffset(7), end)
	assert.Equal(t, "$clk_en", b.Text())

	require.NoError(t, b.Delete(4, 7))
	assert.Equal(t, "$clk", b.Text())

	_, err = b.Insert(99, "x")
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
	assert.ErrorIs(t, b.Delete(3, 1), ErrRangeInvalid)
	_, err = b.Replace(0, 50, "x")
	assert.ErrorIs(t, err, ErrRangeInvalid)
}

func TestBufferRunes(t *testing.T) {
	b := NewBufferFromString("aé")

	r, size := b.RuneBefore(3)
	assert.Equal(t, 'é', r)
	assert.Equal(t, 2, size)

	r, size = b.RuneAt(0)
	assert.Equal(t, 'a', r)
	assert.Equal(t, 1, size)

	_, size = b.RuneBefore(0)
	assert.Zero(t, size)
	_, size = b.RuneAt(3)
	assert.Zero(t, size)
}

func TestRange(t *testing.T) {
	r := NewRange(2, 5)
	assert.Equal(t, "[2:5)", r.String())
	assert.Equal(t, ByteOffset(3), r.Len())
	assert.True(t, r.Contains(2))
	assert.False(t, r.Contains(5))
	assert.True(t, r.Overlaps(NewRange(4, 9)))
	assert.False(t, r.Overlaps(NewRange(5, 9)))
	assert.True(t, NewRange(3, 3).Overlaps(r))
	assert.False(t, NewRange(5, 5).Overlaps(r))
}

func TestPointCompare(t *testing.T) {
	a := Point{Line: 1, Column: 4}
	b := Point{Line: 2, Column: 0}
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, a.Before(b))
	assert.Equal(t, "(1:4)", a.String())
}

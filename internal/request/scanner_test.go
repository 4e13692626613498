package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineCursor(t *testing.T) {
	t.Run("lines and remainder", func(t *testing.T) {
		c := newLineCursor([]byte("one\r\ntwo\r\n\r\nrest"))

		line, ok := c.Next()
		require.True(t, ok)
		assert.Equal(t, "one", string(line))

		line, ok = c.Next()
		require.True(t, ok)
		assert.Equal(t, "two", string(line))

		line, ok = c.Next()
		require.True(t, ok)
		assert.Empty(t, line)

		_, ok = c.Next()
		assert.False(t, ok)

		assert.Equal(t, "rest", string(c.Remaining()))
	})

	t.Run("no terminator leaves offset alone", func(t *testing.T) {
		c := newLineCursor([]byte("a\r\nno end"))
		_, ok := c.Next()
		require.True(t, ok)
		pos := c.pos

		_, ok = c.Next()
		assert.False(t, ok)
		assert.Equal(t, pos, c.pos)
		assert.Equal(t, "no end", string(c.Remaining()))
	})

	t.Run("bare CR and LF are not terminators", func(t *testing.T) {
		for _, in := range []string{"a\nb", "a\rb", "a\n\rb", "\r", "\n", ""} {
			c := newLineCursor([]byte(in))
			_, ok := c.Next()
			assert.False(t, ok, "input %q", in)
		}

		c := newLineCursor([]byte("a\nb\rc\r\n"))
		line, ok := c.Next()
		require.True(t, ok)
		assert.Equal(t, "a\nb\rc", string(line))
	})

	t.Run("terminator at the very end", func(t *testing.T) {
		c := newLineCursor([]byte("abc\r\n"))
		line, ok := c.Next()
		require.True(t, ok)
		assert.Equal(t, "abc", string(line))
		rest := c.Remaining()
		assert.NotNil(t, rest)
		assert.Len(t, rest, 0)
	})

	t.Run("remaining is terminal", func(t *testing.T) {
		c := newLineCursor([]byte("a\r\nb\r\n"))
		assert.Equal(t, "a\r\nb\r\n", string(c.Remaining()))

		_, ok := c.Next()
		assert.False(t, ok)
		_, ok = c.Take(1)
		assert.False(t, ok)
		assert.Empty(t, c.Remaining())
	})

	t.Run("returned slices cannot grow into the buffer", func(t *testing.T) {
		buf := []byte("ab\r\ncd")
		c := newLineCursor(buf)
		line, ok := c.Next()
		require.True(t, ok)
		assert.Equal(t, 2, cap(line))

		_ = append(line, 'X')
		assert.Equal(t, "ab\r\ncd", string(buf))
	})

	t.Run("take", func(t *testing.T) {
		c := newLineCursor([]byte("abc\r\ndef"))
		b, ok := c.Take(5)
		require.True(t, ok)
		assert.Equal(t, "abc\r\n", string(b))

		_, ok = c.Take(4)
		assert.False(t, ok)
		_, ok = c.Take(-1)
		assert.False(t, ok)

		b, ok = c.Take(3)
		require.True(t, ok)
		assert.Equal(t, "def", string(b))
	})
}

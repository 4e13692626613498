package request

import "bytes"

var registeredNurse = []byte("\r\n")

// lineCursor walks a buffer one CRLF-terminated line at a time.
// The offset only moves forward.
type lineCursor struct {
	data []byte
	pos  int
	done bool
}

func newLineCursor(data []byte) *lineCursor {
	return &lineCursor{data: data}
}

// Next returns the bytes up to the next CRLF and moves past the terminator.
// A bare CR or LF does not end a line. When no CRLF is left, Next returns
// false and the offset stays where it was.
func (c *lineCursor) Next() ([]byte, bool) {
	if c.done {
		return nil, false
	}

	rest := c.data[c.pos:]
	i := bytes.Index(rest, registeredNurse)
	if i < 0 {
		return nil, false
	}

	c.pos += i + len(registeredNurse)
	return rest[:i:i], true
}

// Take returns the next n bytes verbatim, ignoring line boundaries.
func (c *lineCursor) Take(n int) ([]byte, bool) {
	if c.done || n < 0 || n > len(c.data)-c.pos {
		return nil, false
	}

	b := c.data[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, true
}

// Remaining hands out everything after the offset and ends the scan.
// Any later call to Next, Take or Remaining sees an exhausted cursor.
func (c *lineCursor) Remaining() []byte {
	if c.done {
		return c.data[len(c.data):]
	}

	c.done = true
	rest := c.data[c.pos:len(c.data):len(c.data)]
	c.pos = len(c.data)
	return rest
}

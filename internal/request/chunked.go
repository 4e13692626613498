package request

import (
	"bytes"
	"strconv"
)

func parseHexadecimal(hex string) (int, error) {
	n, err := strconv.ParseInt(hex, 16, 64)
	return int(n), err
}

// parseChunkSize reads the chunk-size of a chunk line, dropping any
// extensions. Only hex digits are allowed; ParseInt would also take a sign.
func parseChunkSize(line []byte) (int, error) {
	size, _, _ := bytes.Cut(line, []byte(";"))
	size = bytes.TrimSpace(size)
	if len(size) == 0 {
		return 0, ErrMalformedChunk
	}
	for _, c := range size {
		if !isHexDigit(c) {
			return 0, ErrMalformedChunk
		}
	}
	n, err := parseHexadecimal(string(size))
	if err != nil || n < 0 {
		return 0, ErrMalformedChunk
	}
	return n, nil
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// decodeChunked decodes a chunked body. Chunk extensions and trailer fields
// are skipped.
// https://datatracker.ietf.org/doc/html/rfc9112#section-7.1
func decodeChunked(body []byte) ([]byte, error) {
	buf := bytes.NewBuffer([]byte{})
	cursor := newLineCursor(body)

	for {
		line, ok := cursor.Next()
		if !ok {
			return nil, ErrIncompleteBody
		}

		chunkSize, err := parseChunkSize(line)
		if err != nil {
			return nil, err
		}

		if chunkSize == 0 {
			break
		}

		chunk, ok := cursor.Take(chunkSize)
		if !ok {
			return nil, ErrIncompleteBody
		}
		buf.Write(chunk)

		end, ok := cursor.Take(len(registeredNurse))
		if !ok {
			return nil, ErrIncompleteBody
		}
		if !bytes.Equal(end, registeredNurse) {
			return nil, ErrMalformedChunk
		}
	}

	// trailer section, terminated by an empty line
	for {
		line, ok := cursor.Next()
		if !ok {
			return nil, ErrIncompleteBody
		}
		if len(line) == 0 {
			return buf.Bytes(), nil
		}
	}
}

// ChunkScanner finds the end of a chunked body that arrives in pieces.
// Every call to Scan resumes where the previous one stopped, so each byte is
// walked once.
type ChunkScanner struct {
	pos      int
	trailers bool
}

// Scan reports whether body holds the complete chunked body, last chunk and
// trailer section included. body must extend the slice given to the previous
// call.
func (cs *ChunkScanner) Scan(body []byte) (bool, error) {
	for {
		rest := body[cs.pos:]
		i := bytes.Index(rest, registeredNurse)
		if i == -1 {
			return false, nil
		}
		line := rest[:i]

		if cs.trailers {
			cs.pos += i + len(registeredNurse)
			if len(line) == 0 {
				return true, nil
			}
			continue
		}

		size, err := parseChunkSize(line)
		if err != nil {
			return false, err
		}
		if size == 0 {
			cs.trailers = true
			cs.pos += i + len(registeredNurse)
			continue
		}

		data := rest[i+len(registeredNurse):]
		if len(data)-len(registeredNurse) < size {
			return false, nil
		}
		if !bytes.Equal(data[size:size+len(registeredNurse)], registeredNurse) {
			return false, ErrMalformedChunk
		}
		cs.pos += i + len(registeredNurse) + size + len(registeredNurse)
	}
}

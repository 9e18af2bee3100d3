package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mithrel/chostmd/pkg/cohost"
)

// Format is the layout of an export file.
type Format int

const (
	// FormatAuto picks array or NDJSON from the first non-space byte.
	FormatAuto Format = iota
	// FormatArray is a single JSON array of posts (cohost-dl posts.json).
	FormatArray
	// FormatNDJSON is one post object per line (cohost-dl liked.json).
	FormatNDJSON
)

func (f Format) String() string {
	switch f {
	case FormatArray:
		return "array"
	case FormatNDJSON:
		return "ndjson"
	default:
		return "auto"
	}
}

// maxLineSize bounds one NDJSON record; posts with long share trees get big.
const maxLineSize = 64 << 20

// Record is one decoded post. Err is set when that record is malformed;
// the remaining records are still delivered.
type Record struct {
	Index int
	Post  cohost.Post
	Err   error
}

// Load calls fn for every record in r. An error returned by fn stops the
// load and is returned as is. Errors in the outer layout (a truncated array,
// unreadable input) are fatal; errors in a single record are not.
func Load(r io.Reader, format Format, fn func(Record) error) error {
	br := bufio.NewReaderSize(r, 1<<20)
	first, err := peekFirstNonSpace(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	switch format {
	case FormatArray:
		if first != '[' {
			return fmt.Errorf("expected a JSON array, found %q", first)
		}
	case FormatNDJSON:
		if first == '[' {
			return fmt.Errorf("expected one JSON object per line, found an array")
		}
	default:
		if first == '[' {
			format = FormatArray
		} else {
			format = FormatNDJSON
		}
	}

	if format == FormatArray {
		return loadArray(br, fn)
	}
	return loadNDJSON(br, fn)
}

// LoadFile opens path and loads it.
func LoadFile(path string, format Format, fn func(Record) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Load(f, format, fn)
}

// ReadFile collects every record of path.
func ReadFile(path string, format Format) ([]Record, error) {
	var out []Record
	err := LoadFile(path, format, func(rec Record) error {
		out = append(out, rec)
		return nil
	})
	return out, err
}

func loadArray(r io.Reader, fn func(Record) error) error {
	dec := json.NewDecoder(r)
	if _, err := dec.Token(); err != nil {
		return err
	}
	for i := 0; dec.More(); i++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if err := fn(decode(i, raw)); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("unterminated array: %w", err)
	}
	return nil
}

func loadNDJSON(r io.Reader, fn func(Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<20), maxLineSize)
	i := 0
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := fn(decode(i, line)); err != nil {
			return err
		}
		i++
	}
	return sc.Err()
}

func decode(i int, raw []byte) Record {
	p, err := cohost.DecodePost(raw)
	if err != nil {
		return Record{Index: i, Err: fmt.Errorf("record %d: %w", i, err)}
	}
	return Record{Index: i, Post: p}
}

func peekFirstNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if b == ' ' || b == '\n' || b == '\r' || b == '\t' {
			continue
		}
		// put it back for the decoder
		if err := r.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}

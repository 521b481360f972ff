package gcra

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mediocregopher/radix/v3/resp"
	"github.com/mediocregopher/radix/v3/resp/resp2"
)

// The codecs below let callers persist a State; the package itself never
// does. A set TAT is encoded as decimal Unix nanoseconds and an unset one as
// empty text (or the nil bulk string in RESP). Monotonic clock readings do
// not survive encoding.

var (
	_ resp.Marshaler   = State{}
	_ resp.Unmarshaler = (*State)(nil)
)

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.hasTAT {
		return []byte{}, nil
	}
	return strconv.AppendInt(nil, s.tat.UnixNano(), 10), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		s.Reset()
		return nil
	}
	nanos, err := strconv.ParseInt(string(text), 10, 64)
	if err != nil {
		return fmt.Errorf("parse tat: %w", err)
	}
	*s = StateAt(time.Unix(0, nanos))
	return nil
}

// MarshalRESP writes the state as a RESP bulk string, or the nil bulk
// string when no TAT is set.
func (s State) MarshalRESP(w io.Writer) error {
	if !s.hasTAT {
		return resp2.BulkStringBytes{}.MarshalRESP(w)
	}
	text, err := s.MarshalText()
	if err != nil {
		return err
	}
	return resp2.BulkStringBytes{B: text}.MarshalRESP(w)
}

// UnmarshalRESP reads a bulk string written by MarshalRESP. A nil bulk
// string, as returned by GET on a missing key, yields an unset state.
func (s *State) UnmarshalRESP(br *bufio.Reader) error {
	var bs resp2.BulkStringBytes
	if err := bs.UnmarshalRESP(br); err != nil {
		return err
	}
	if bs.B == nil {
		s.Reset()
		return nil
	}
	return s.UnmarshalText(bs.B)
}

package tempo

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes i as an ISO-8601 UTC string with milliseconds.
// Invalid instants encode as null.
func (i Instant) MarshalJSON() ([]byte, error) {
	if !i.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(i.ISOString())
}

// UnmarshalJSON decodes an ISO-8601 or RFC 2822 string, keeping the offset
// it carries. null leaves i unchanged.
func (i *Instant) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("tempo: decode instant: %w", err)
	}
	return i.UnmarshalText([]byte(s))
}

// MarshalText encodes i like MarshalJSON, without quotes.
func (i Instant) MarshalText() ([]byte, error) {
	if !i.Valid() {
		return nil, fmt.Errorf("tempo: encode invalid instant: %w", i.err)
	}
	return []byte(i.ISOString()), nil
}

// UnmarshalText strictly parses text with i's engine, keeping the offset
// it carries.
func (i *Instant) UnmarshalText(text []byte) error {
	v, err := i.eng().Parse(string(text), ParseStrict(), ParseZone())
	if err != nil {
		return err
	}
	*i = v
	return nil
}

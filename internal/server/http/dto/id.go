package dto

import (
	"bytes"
	"strconv"
)

// ID accepts a record id as a JSON number or numeric string. Parsing is deferred so that
// a malformed id can be reported as such instead of as a malformed body.
type ID struct {
	raw string
	set bool
}

// UnmarshalJSON stores the raw token.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	id.raw = string(bytes.Trim(data, `"`))
	id.set = true
	return nil
}

// Set reports whether the field was present.
func (id ID) Set() bool { return id.set }

// Int64 parses the stored token.
func (id ID) Int64() (int64, bool) {
	v, err := strconv.ParseInt(id.raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// NewID builds an ID from a raw string such as a query parameter.
func NewID(raw string) ID {
	return ID{raw: raw, set: raw != ""}
}

package controllers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// looseUint decodes 12 or "12".
type looseUint uint

func (v *looseUint) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}
	raw = strings.Trim(raw, `"`)
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return fmt.Errorf("expected an unsigned integer, got %s", b)
	}
	*v = looseUint(n)
	return nil
}

// looseString decodes "4821" or 4821. Numbers keep their literal digits.
type looseString string

func (v *looseString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = looseString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a string or number, got %s", b)
	}
	*v = looseString(n.String())
	return nil
}

package stripekit

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Resource identifiers are opaque strings with a short, resource-specific
// prefix ("cus_", "pi_", ...). Generated packages declare one string type
// per resource and validate the prefix through CheckID on construction and
// deserialization, so an id of one resource cannot be mistaken for another.

const maxIDLength = 255

// CheckID validates that s looks like an identifier for a resource with one
// of the given prefixes. The prefixes are given without the underscore.
func CheckID(s string, prefixes ...string) error {
	if s == "" {
		return clientErrorf("invalid_id: empty identifier")
	}
	if len(s) > maxIDLength {
		return clientErrorf("invalid_id: identifier exceeds %d bytes", maxIDLength)
	}
	for _, p := range prefixes {
		rest, ok := strings.CutPrefix(s, p+"_")
		if ok && rest != "" {
			return nil
		}
	}
	return clientErrorf("invalid_id: %q does not match prefix set %v", s, prefixes)
}

// UnmarshalID decodes a JSON string into id, enforcing the prefix set.
// Generated id types call this from their UnmarshalJSON.
func UnmarshalID(data []byte, id *string, prefixes ...string) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid_id: %w", err)
	}
	if err := CheckID(s, prefixes...); err != nil {
		return err
	}
	*id = s
	return nil
}

// Object is implemented by every value that carries a Stripe identifier.
// The paginator and Expandable rely on it.
type Object interface {
	ObjectID() string
}

package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeName validates a topology node name.
//
// The validation rules mirror what the inventory engine needs:
//   - No empty names
//   - No control characters or whitespace
//   - Must contain a hyphen so the group type can be derived from the
//     prefix (e.g. "leaf-1" groups under "leaf")
//   - The type prefix must be non-empty
func ValidateNodeName(name string) error {
	if name == "" {
		return New(ErrCodeMalformedTopology, "node name cannot be empty")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeMalformedTopology, "node name %q contains invalid characters", name)
		}
	}

	typ, _, found := strings.Cut(name, "-")
	if !found {
		return New(ErrCodeMalformedTopology, "node name %q has no hyphen, cannot derive type", name)
	}
	if typ == "" {
		return New(ErrCodeMalformedTopology, "node name %q has an empty type prefix", name)
	}

	return nil
}

// ValidateInterfaceName validates a declared endpoint interface name.
// Endpoint interface names may be empty (a name is then synthesized), but a
// declared name must be a simple identifier without separators.
func ValidateInterfaceName(name string) error {
	if name == "" {
		return nil
	}

	if strings.ContainsAny(name, ":/\\") {
		return New(ErrCodeMalformedTopology, "interface name %q contains path or endpoint separators", name)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeMalformedTopology, "interface name %q contains invalid characters", name)
		}
	}

	return nil
}

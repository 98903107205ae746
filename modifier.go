package fieldgate

import (
	"fmt"
	"sort"
)

// Wire keys for the modifier's two operation kinds.
const (
	modifierSetKey   = "$set"
	modifierUnsetKey = "$unset"
)

// ParseModifier validates a transport-level modifier value and converts it
// to a [Modifier]. Exactly three shapes are accepted: {$set}, {$unset},
// and {$set,$unset}, where each operation value is a mapping from field
// name to value ($unset values are ignored). Anything else fails with
// [ErrInvalidArgument] before any predicate is evaluated.
//
// Unset field names are returned sorted so that downstream store calls are
// deterministic.
func ParseModifier(raw any) (Modifier, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		if d, isDoc := raw.(Document); isDoc {
			m = d
		} else {
			return Modifier{}, fmt.Errorf("%w: modifier must be a mapping", ErrInvalidArgument)
		}
	}

	if len(m) == 0 {
		return Modifier{}, fmt.Errorf("%w: empty modifier", ErrInvalidArgument)
	}

	var mod Modifier
	for key, value := range m {
		switch key {
		case modifierSetKey:
			fields, err := modifierOperation(key, value)
			if err != nil {
				return Modifier{}, err
			}
			mod.Set = fields
		case modifierUnsetKey:
			fields, err := modifierOperation(key, value)
			if err != nil {
				return Modifier{}, err
			}
			for name := range fields {
				mod.Unset = append(mod.Unset, name)
			}
			sort.Strings(mod.Unset)
		default:
			return Modifier{}, fmt.Errorf("%w: unsupported modifier operation %q", ErrInvalidArgument, key)
		}
	}

	return mod, nil
}

func modifierOperation(key string, value any) (Document, error) {
	switch v := value.(type) {
	case Document:
		return v, nil
	case map[string]any:
		return Document(v), nil
	default:
		return nil, fmt.Errorf("%w: %s must be a mapping of field names", ErrInvalidArgument, key)
	}
}

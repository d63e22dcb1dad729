package order

// shouldMerge decides whether a server-returned field overwrites the local
// one. Non-list values always win, truthy or not, so authoritative scalar
// updates land even when they are 0 or "". List values win only when
// non-empty: the service echoes empty Products/Coupons lists on some
// round-trips and those must never erase locally accumulated entries.
func shouldMerge(v any) bool {
	return truthy(v) || !isList(v)
}

func isList(v any) bool {
	_, ok := v.([]any)
	return ok
}

// truthy reports whether a decoded JSON value is non-empty: nil, false,
// "", 0 and empty collections are falsy, everything else truthy.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// deepCopy clones a JSON-shaped value so a copied line item never aliases
// the catalog template it came from.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return v
	}
}

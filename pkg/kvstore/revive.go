package kvstore

import "time"

// timestampFields lists JSON field names decoded back into time.Time when a value is
// loaded into dynamic JSON (any, map[string]any, []any). Typed structs handle this
// through their own time.Time fields.
var timestampFields = map[string]struct{}{
	"submittedAt": {},
}

func reviveInto[T any](out *T) {
	switch p := any(out).(type) {
	case *any:
		*p = revive(*p)
	case *map[string]any:
		revive(*p)
	case *[]any:
		revive(*p)
	}
}

func revive(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		for k, val := range typed {
			if _, ok := timestampFields[k]; ok {
				if raw, ok := val.(string); ok {
					if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
						typed[k] = ts
						continue
					}
				}
			}
			typed[k] = revive(val)
		}
		return typed
	case []any:
		for i := range typed {
			typed[i] = revive(typed[i])
		}
		return typed
	default:
		return v
	}
}

package input

// MergeIgnoringBlank merges src into dst. Nested maps are merged key by key;
// a nil, empty string, or empty slice from src never replaces a value dst
// already has, so an empty form field cannot wipe out a value from a lower
// priority source.
func MergeIgnoringBlank(src, dst map[string]any) error {
	for key, srcVal := range src {
		dstVal, exists := dst[key]

		if srcMap, ok := srcVal.(map[string]any); ok {
			if dstMap, ok := dstVal.(map[string]any); ok {
				if err := MergeIgnoringBlank(srcMap, dstMap); err != nil {
					return err
				}
				continue
			}
		}

		if shouldOverwrite(srcVal, exists) {
			dst[key] = srcVal
		}
	}
	return nil
}

func shouldOverwrite(src any, dstExists bool) bool {
	if !dstExists {
		return true
	}
	switch v := src.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

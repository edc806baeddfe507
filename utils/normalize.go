// utils/normalize.go - Form data normalization applied at submit time
package utils

// NormalizeFormValues recursively converts empty-string leaf values to
// nil across nested maps and slices. The operation is idempotent.
func NormalizeFormValues(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, child := range v {
			if s, ok := child.(string); ok && s == "" {
				out[key] = nil
				continue
			}
			out[key] = NormalizeFormValues(child)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, child := range v {
			out[i] = NormalizeFormValues(child)
		}
		return out
	default:
		return value
	}
}

// NormalizeFormData applies NormalizeFormValues to a whole form-data map.
func NormalizeFormData(formData map[string]interface{}) map[string]interface{} {
	if formData == nil {
		return nil
	}
	normalized, _ := NormalizeFormValues(formData).(map[string]interface{})
	return normalized
}

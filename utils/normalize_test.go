package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFormData(t *testing.T) {
	t.Run("empty strings become nil", func(t *testing.T) {
		got := NormalizeFormData(map[string]interface{}{
			"main_exam_name": "SSC Exams",
			"notes":          "",
			"attempts":       float64(2),
		})
		assert.Equal(t, map[string]interface{}{
			"main_exam_name": "SSC Exams",
			"notes":          nil,
			"attempts":       float64(2),
		}, got)
	})

	t.Run("nested maps are normalized", func(t *testing.T) {
		got := NormalizeFormData(map[string]interface{}{
			"eligibility": map[string]interface{}{
				"gender":         "",
				"marital_status": "any",
			},
		})
		assert.Equal(t, map[string]interface{}{
			"eligibility": map[string]interface{}{
				"gender":         nil,
				"marital_status": "any",
			},
		}, got)
	})

	t.Run("maps inside slices are normalized", func(t *testing.T) {
		got := NormalizeFormData(map[string]interface{}{
			"subExams": []interface{}{
				map[string]interface{}{"sub_exam_name": "SSC CGL", "short_code": ""},
			},
		})
		assert.Equal(t, map[string]interface{}{
			"subExams": []interface{}{
				map[string]interface{}{"sub_exam_name": "SSC CGL", "short_code": nil},
			},
		}, got)
	})

	t.Run("bare strings inside slices are kept", func(t *testing.T) {
		got := NormalizeFormData(map[string]interface{}{
			"tags": []interface{}{"", "defence"},
		})
		assert.Equal(t, map[string]interface{}{
			"tags": []interface{}{"", "defence"},
		}, got)
	})

	t.Run("idempotent", func(t *testing.T) {
		input := map[string]interface{}{
			"a": "",
			"b": map[string]interface{}{"c": "", "d": []interface{}{map[string]interface{}{"e": ""}}},
		}
		once := NormalizeFormData(input)
		twice := NormalizeFormData(once)
		assert.Equal(t, once, twice)
	})

	t.Run("nil map stays nil", func(t *testing.T) {
		assert.Nil(t, NormalizeFormData(nil))
	})
}

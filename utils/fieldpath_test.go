package utils

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldPathString(t *testing.T) {
	tests := []struct {
		name string
		path FieldPath
		want string
	}{
		{"empty", nil, ""},
		{"single key", FieldPath{}.Child("notes"), "notes"},
		{"nested keys", FieldPath{}.Child("eligibility").Child("gender"), "eligibility.gender"},
		{"index after key", FieldPath{}.Child("subExams").Elem(0).Child("sub_exam_name"), "subExams[0].sub_exam_name"},
		{"index chain", FieldPath{}.Child("matrix").Elem(1).Elem(2), "matrix[1][2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestFieldPathEqual(t *testing.T) {
	a := FieldPath{}.Child("subExams").Elem(0).Child("gender")
	b := FieldPath{}.Child("subExams").Elem(0).Child("gender")
	c := FieldPath{}.Child("subExams").Elem(1).Child("gender")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(a[:2]))
}

func TestFieldPathImmutableExtension(t *testing.T) {
	base := FieldPath{}.Child("subExams").Elem(0)
	first := base.Child("gender")
	second := base.Child("short_code")

	assert.Equal(t, "subExams[0].gender", first.String())
	assert.Equal(t, "subExams[0].short_code", second.String())
}

func TestWalkLeaves(t *testing.T) {
	data := map[string]interface{}{
		"main_exam_name": "SSC Exams",
		"fee":            nil,
		"subExams": []interface{}{
			map[string]interface{}{
				"sub_exam_name": "SSC GD Constable",
				"pwd_eligible":  false,
			},
		},
		"extra": map[string]interface{}{},
	}

	leaves := map[string]interface{}{}
	WalkLeaves(data, func(path FieldPath, value interface{}) {
		leaves[path.String()] = value
	})

	var keys []string
	for k := range leaves {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Empty maps contribute no leaves.
	assert.Equal(t, []string{
		"fee",
		"main_exam_name",
		"subExams[0].pwd_eligible",
		"subExams[0].sub_exam_name",
	}, keys)
	assert.Nil(t, leaves["fee"])
	assert.Equal(t, false, leaves["subExams[0].pwd_eligible"])
}

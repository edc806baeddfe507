package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamAutoFillData(t *testing.T) {
	autofill := NewAutoFillService(NewCatalogService(testCatalog()))

	t.Run("main and sub exam resolve", func(t *testing.T) {
		data := autofill.ExamAutoFillData("1", "1")
		require.NotNil(t, data)
		assert.Equal(t, "SSC Exams", data.MainExamName)
		assert.Equal(t, "SSC", data.ExamCode)
		assert.Equal(t, "Staff Selection Commission", data.ConductingBody)
		assert.Equal(t, "Government - Staff Selection Commission", data.ExamSector)
		require.Len(t, data.SubExams, 1)
		assert.Equal(t, "SSC GD Constable", data.SubExams[0].SubExamName)
		assert.Equal(t, "SSC-GDC", data.SubExams[0].ShortCode)
		require.NotNil(t, data.SubExamID)
		assert.Equal(t, 1, *data.SubExamID)
	})

	t.Run("main exam alone leaves sub exams empty", func(t *testing.T) {
		data := autofill.ExamAutoFillData("1", "")
		require.NotNil(t, data)
		assert.Equal(t, "SSC Exams", data.MainExamName)
		assert.Empty(t, data.SubExams)
		assert.Nil(t, data.SubExamID)
	})

	t.Run("unknown sub exam leaves sub exams empty", func(t *testing.T) {
		data := autofill.ExamAutoFillData("1", "99")
		require.NotNil(t, data)
		assert.Empty(t, data.SubExams)
	})

	t.Run("unknown main exam returns nil without error", func(t *testing.T) {
		assert.Nil(t, autofill.ExamAutoFillData("42", ""))
	})

	t.Run("non numeric main exam returns nil without error", func(t *testing.T) {
		assert.Nil(t, autofill.ExamAutoFillData("abc", ""))
	})

	t.Run("unmapped code falls back to defaults", func(t *testing.T) {
		catalog := testCatalog()
		catalog.Exams[0].Code = "Mystery"
		svc := NewAutoFillService(NewCatalogService(catalog))
		data := svc.ExamAutoFillData("1", "")
		require.NotNil(t, data)
		assert.Equal(t, "Not Specified", data.ConductingBody)
		assert.Equal(t, "Other", data.ExamSector)
	})
}

func TestAutoFilledFormValues(t *testing.T) {
	autofill := NewAutoFillService(NewCatalogService(testCatalog()))

	t.Run("composite id pre-fills one sub exam with defaults", func(t *testing.T) {
		values := autofill.AutoFilledFormValues("1-1", "")
		require.NotNil(t, values)
		assert.Equal(t, "SSC Exams", values["main_exam_name"])
		assert.Equal(t, "SSC", values["exam_code"])

		subExams, ok := values["subExams"].([]interface{})
		require.True(t, ok)
		require.Len(t, subExams, 1)
		sub := subExams[0].(map[string]interface{})
		assert.Equal(t, "SSC GD Constable", sub["sub_exam_name"])
		assert.Equal(t, "SSC-GDC", sub["short_code"])
		// Dependent fields are schema defaults, never catalog values.
		assert.Equal(t, "", sub["gender"])
		assert.Equal(t, "", sub["marital_status"])
		assert.Equal(t, false, sub["pwd_eligible"])
		assert.Equal(t, false, sub["has_age_limit"])
		assert.Empty(t, sub["educationRequirements"])
	})

	t.Run("main only id leaves sub exams for manual selection", func(t *testing.T) {
		values := autofill.AutoFilledFormValues("1", "")
		require.NotNil(t, values)
		assert.Equal(t, "SSC Exams", values["main_exam_name"])
		assert.Empty(t, values["subExams"])
	})

	t.Run("sub exam id embedded composite is re-parsed", func(t *testing.T) {
		values := autofill.AutoFilledFormValues("1", "1-2")
		require.NotNil(t, values)
		subExams := values["subExams"].([]interface{})
		require.Len(t, subExams, 1)
		sub := subExams[0].(map[string]interface{})
		assert.Equal(t, "SSC CGL", sub["sub_exam_name"])
	})

	t.Run("unknown exam yields nil form values", func(t *testing.T) {
		assert.Nil(t, autofill.AutoFilledFormValues("42", ""))
	})
}

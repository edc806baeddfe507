package controllers

import (
	"net/http"

	"exam-data-api/services"

	"github.com/gin-gonic/gin"
)

// AutoFillController resolves exam identifiers into initial form state.
type AutoFillController struct {
	autofill *services.AutoFillService
}

// NewAutoFillController wires the auto-fill endpoint.
func NewAutoFillController(autofill *services.AutoFillService) *AutoFillController {
	return &AutoFillController{autofill: autofill}
}

// Get resolves an exam identifier token and returns the auto-fill
// strategy and pre-filled form values. A token that resolves to nothing
// is a valid outcome: the form starts fully manual.
func (ctrl *AutoFillController) Get(c *gin.Context) {
	examID := c.Param("examId")

	parsed := services.ParseExamAssignment(examID)
	strategy := services.GetAutoFillStrategy(examID)
	formValues := ctrl.autofill.AutoFilledFormValues(examID, c.Query("sub_exam_id"))

	c.JSON(http.StatusOK, gin.H{
		"parsed": gin.H{
			"mainExamId":     parsed.MainExamID,
			"subExamId":      parsed.SubExamID,
			"assignmentId":   parsed.AssignmentID,
			"assignmentType": parsed.AssignmentType,
		},
		"strategy": gin.H{
			"shouldFillMainExam":  strategy.ShouldFillMainExam,
			"shouldFillSubExams":  strategy.ShouldFillSubExams,
			"specificSubExamOnly": strategy.SpecificSubExamOnly,
			"subExamId":           strategy.SubExamID,
		},
		"formValues": formValues,
	})
}

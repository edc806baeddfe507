package controllers

import (
	"net/http"

	"exam-data-api/models"
	"exam-data-api/services"

	"github.com/gin-gonic/gin"
)

// ExamController serves the reference catalog and manages the editable
// exams collection.
type ExamController struct {
	catalog *services.CatalogService
	exams   *services.ExamService
}

// NewExamController wires the exam catalog endpoints.
func NewExamController(catalog *services.CatalogService, exams *services.ExamService) *ExamController {
	return &ExamController{catalog: catalog, exams: exams}
}

// Options returns catalog entries, sectors and conducting bodies for
// selection UIs
func (ctrl *ExamController) Options(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.catalog.AvailableExamOptions())
}

// List returns all stored exams
func (ctrl *ExamController) List(c *gin.Context) {
	exams, err := ctrl.exams.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exams"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exams": exams})
}

type CreateExamRequest struct {
	Name     string           `json:"name" binding:"required"`
	Code     string           `json:"code"`
	SubExams []models.SubExam `json:"sub_exams"`
}

// Create adds a new exam entry
func (ctrl *ExamController) Create(c *gin.Context) {
	var req CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := ctrl.exams.Add(models.StoredExam{
		Name:     req.Name,
		Code:     req.Code,
		SubExams: req.SubExams,
	}, contextString(c, "userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "Exam created successfully"})
}

type UpdateExamRequest struct {
	Name *string `json:"name"`
	Code *string `json:"code"`
}

// Update merges changed fields into an exam entry
func (ctrl *ExamController) Update(c *gin.Context) {
	var req UpdateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Code != nil {
		fields["code"] = *req.Code
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := ctrl.exams.Update(c.Param("id"), fields, contextString(c, "userID")); err != nil {
		respondStoreError(c, err, "Failed to update exam")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exam updated successfully"})
}

type AddSubExamRequest struct {
	ID   int    `json:"id"`
	Name string `json:"name" binding:"required"`
	Code string `json:"code"`
}

// AddSubExam appends a sub-exam to an existing exam entry
func (ctrl *ExamController) AddSubExam(c *gin.Context) {
	var req AddSubExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := ctrl.exams.AddSubExam(c.Param("id"), models.SubExam{
		ID:   req.ID,
		Name: req.Name,
		Code: req.Code,
	}, contextString(c, "userID"))
	if err != nil {
		respondStoreError(c, err, "Failed to add sub-exam")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Sub-exam added successfully"})
}

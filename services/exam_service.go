package services

import (
	"fmt"

	"exam-data-api/models"
	"exam-data-api/store"
)

// ExamService manages the exams collection, the editable mirror of the
// static reference catalog.
type ExamService struct {
	store store.Store
	audit *AuditService
}

// NewExamService wires exam catalog management.
func NewExamService(st store.Store, audit *AuditService) *ExamService {
	return &ExamService{store: st, audit: audit}
}

// Add stores a new exam entry.
func (s *ExamService) Add(exam models.StoredExam, actorID string) (string, error) {
	if exam.Name == "" {
		return "", fmt.Errorf("exam name is required")
	}
	if exam.SubExams == nil {
		exam.SubExams = []models.SubExam{}
	}
	id, err := s.store.Insert(store.CollectionExams, exam)
	if err != nil {
		return "", err
	}
	s.audit.LogBestEffort("exam_created", actorID, "exam", id, map[string]interface{}{
		"name": exam.Name,
		"code": exam.Code,
	})
	return id, nil
}

// All lists every stored exam.
func (s *ExamService) All() ([]models.StoredExam, error) {
	var exams []models.StoredExam
	if err := s.store.QueryAll(store.CollectionExams, &exams); err != nil {
		return nil, err
	}
	if exams == nil {
		exams = []models.StoredExam{}
	}
	return exams, nil
}

// AddSubExam appends a sub-exam to an existing exam entry.
func (s *ExamService) AddSubExam(examID string, sub models.SubExam, actorID string) error {
	var exam models.StoredExam
	if err := s.store.GetByID(store.CollectionExams, examID, &exam); err != nil {
		return err
	}
	exam.SubExams = append(exam.SubExams, sub)
	if err := s.store.UpdateFields(store.CollectionExams, examID, map[string]interface{}{
		"sub_exams": exam.SubExams,
	}); err != nil {
		return err
	}
	s.audit.LogBestEffort("sub_exam_added", actorID, "exam", examID, map[string]interface{}{
		"subExamName": sub.Name,
	})
	return nil
}

// Update merges changed fields into an exam entry.
func (s *ExamService) Update(examID string, fields map[string]interface{}, actorID string) error {
	if err := s.store.UpdateFields(store.CollectionExams, examID, fields); err != nil {
		return err
	}
	s.audit.LogBestEffort("exam_updated", actorID, "exam", examID, nil)
	return nil
}

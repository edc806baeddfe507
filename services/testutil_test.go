package services

import (
	"time"

	"exam-data-api/models"
	"exam-data-api/store"
)

// testEnv wires every service against a fresh in-memory store.
type testEnv struct {
	store       *store.MemoryStore
	audit       *AuditService
	catalog     *CatalogService
	users       *UserService
	exams       *ExamService
	assignments *AssignmentService
	versions    *VersionService
	submissions *SubmissionService
	autofill    *AutoFillService
	quality     *QualityService
	export      *ExportService
	dashboard   *DashboardService
	sentMail    []string
}

func newTestEnv() *testEnv {
	env := &testEnv{store: store.NewMemoryStore()}
	env.audit = NewAuditService(env.store)
	env.catalog = NewCatalogService(testCatalog())
	notify := NewNotificationServiceWithSender(func(to []string, subject, html string) error {
		env.sentMail = append(env.sentMail, subject)
		return nil
	})
	env.users = NewUserService(env.store, env.audit)
	env.exams = NewExamService(env.store, env.audit)
	env.assignments = NewAssignmentService(env.store, env.audit, notify, env.catalog)
	env.versions = NewVersionService(env.store)
	env.submissions = NewSubmissionService(env.store, env.audit, env.versions, env.assignments, notify)
	env.autofill = NewAutoFillService(env.catalog)
	env.quality = NewQualityService(env.store)
	env.export = NewExportService(env.store)
	env.dashboard = NewDashboardService(env.store)
	return env
}

func testCatalog() *models.ExamCatalog {
	return &models.ExamCatalog{
		Exams: []models.MainExam{
			{
				ID:   1,
				Name: "SSC Exams",
				Code: "SSC",
				SubExams: []models.SubExam{
					{ID: 1, Name: "SSC GD Constable", Code: "SSC-GDC"},
					{ID: 2, Name: "SSC CGL", Code: "SSC-CGL"},
				},
			},
			{
				ID:   2,
				Name: "Banking Exams",
				Code: "Banking",
				SubExams: []models.SubExam{
					{ID: 3, Name: "IBPS PO", Code: "IBPS-PO"},
				},
			},
		},
	}
}

// createAssignment creates one assignment for the given intern and
// returns its id.
func (env *testEnv) createAssignment(internID string) (string, error) {
	ids, err := env.assignments.AssignWork(AssignWorkInput{
		MainExamID: "1",
		InternIDs:  []string{internID},
		DueDate:    time.Now().Add(7 * 24 * time.Hour),
		AssignedBy: "admin-1",
		Notes:      "Complete the eligibility form",
	})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

package services

import (
	"sync"
	"time"

	"exam-data-api/models"
	"exam-data-api/store"
)

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalAssignments     int            `json:"totalAssignments"`
	AssignmentsByStatus  map[string]int `json:"assignmentsByStatus"`
	OverdueAssignments   int            `json:"overdueAssignments"`
	TotalSubmissions     int            `json:"totalSubmissions"`
	SubmissionsByStatus  map[string]int `json:"submissionsByStatus"`
	PendingReviews       int            `json:"pendingReviews"`
	TotalInterns         int            `json:"totalInterns"`
	FinalSubmissionCount int            `json:"finalSubmissionCount"`
	RecentLogCount       int            `json:"recentLogCount"`
}

// DashboardService aggregates counts for the admin dashboard. The five
// collection reads are independent and run concurrently.
type DashboardService struct {
	store store.Store
}

// NewDashboardService returns a dashboard aggregator over the store.
func NewDashboardService(st store.Store) *DashboardService {
	return &DashboardService{store: st}
}

// Stats loads and summarizes assignments, submissions, users, final
// submissions and logs.
func (s *DashboardService) Stats() (*DashboardStats, error) {
	var (
		assignments []models.Assignment
		submissions []models.Submission
		users       []models.User
		finals      []models.FinalSubmission
		logs        []models.LogEntry
	)
	errs := make([]error, 5)

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		errs[0] = s.store.QueryAll(store.CollectionAssignments, &assignments)
	}()
	go func() {
		defer wg.Done()
		errs[1] = s.store.QueryAll(store.CollectionSubmissions, &submissions)
	}()
	go func() {
		defer wg.Done()
		errs[2] = s.store.QueryAll(store.CollectionUsers, &users)
	}()
	go func() {
		defer wg.Done()
		errs[3] = s.store.QueryAll(store.CollectionFinalSubmissions, &finals)
	}()
	go func() {
		defer wg.Done()
		errs[4] = s.store.QueryAll(store.CollectionLogs, &logs)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	stats := &DashboardStats{
		TotalAssignments:     len(assignments),
		AssignmentsByStatus:  map[string]int{},
		TotalSubmissions:     len(submissions),
		SubmissionsByStatus:  map[string]int{},
		FinalSubmissionCount: len(finals),
		RecentLogCount:       len(logs),
	}

	for _, assignment := range assignments {
		stats.AssignmentsByStatus[assignment.Status]++
		if assignment.IsOverdue(now) {
			stats.OverdueAssignments++
		}
	}
	for _, submission := range submissions {
		stats.SubmissionsByStatus[submission.Status]++
		if submission.Status == models.SubmissionStatusSubmitted {
			stats.PendingReviews++
		}
	}
	for _, user := range users {
		if user.Role == models.RoleIntern {
			stats.TotalInterns++
		}
	}
	return stats, nil
}

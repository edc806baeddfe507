package services

import (
	"fmt"
	"time"

	"exam-data-api/models"
	"exam-data-api/store"
)

// UserService owns the users collection.
type UserService struct {
	store store.Store
	audit *AuditService
}

// NewUserService wires user management.
func NewUserService(st store.Store, audit *AuditService) *UserService {
	return &UserService{store: st, audit: audit}
}

// Create stores a new user account and returns its id. The password
// hash must already be computed by the caller.
func (s *UserService) Create(email, name, role, passwordHash, actorID string) (string, error) {
	existing, err := s.ByEmail(email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", fmt.Errorf("user with email %s already exists", email)
	}

	user := models.User{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	id, err := s.store.Insert(store.CollectionUsers, user)
	if err != nil {
		return "", err
	}
	s.audit.LogBestEffort("user_created", actorID, "user", id, map[string]interface{}{
		"email": email,
		"role":  role,
	})
	return id, nil
}

// ByID loads one user.
func (s *UserService) ByID(id string) (*models.User, error) {
	var user models.User
	if err := s.store.GetByID(store.CollectionUsers, id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ByEmail finds a user by email; nil when no account matches.
func (s *UserService) ByEmail(email string) (*models.User, error) {
	var users []models.User
	if err := s.store.QueryByField(store.CollectionUsers, "email", email, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// ByRole lists users holding one role, or all users for an empty role.
func (s *UserService) ByRole(role string) ([]models.User, error) {
	var users []models.User
	var err error
	if role == "" {
		err = s.store.QueryAll(store.CollectionUsers, &users)
	} else {
		err = s.store.QueryByField(store.CollectionUsers, "role", role, &users)
	}
	if err != nil {
		return nil, err
	}
	sanitized := make([]models.User, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, user.Sanitized())
	}
	return sanitized, nil
}

// Update merges changed account fields.
func (s *UserService) Update(id string, fields map[string]interface{}, actorID string) error {
	if err := s.store.UpdateFields(store.CollectionUsers, id, fields); err != nil {
		return err
	}
	s.audit.LogBestEffort("user_updated", actorID, "user", id, nil)
	return nil
}

// Delete removes a user account.
func (s *UserService) Delete(id, actorID string) error {
	s.audit.LogBestEffort("user_deleted", actorID, "user", id, nil)
	return s.store.DeleteByID(store.CollectionUsers, id)
}

package controllers

import (
	"net/http"

	"exam-data-api/services"
	"exam-data-api/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// UserController manages admin-facing account operations.
type UserController struct {
	users *services.UserService
}

// NewUserController wires user management endpoints.
func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Create adds a new user account
func (ctrl *UserController) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidateRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	actorID, _ := c.Get("userID")
	id, err := ctrl.users.Create(req.Email, utils.SanitizeInput(req.Name), req.Role, string(hash), actorID.(string))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "User created successfully"})
}

// List returns users, optionally filtered by ?role=
func (ctrl *UserController) List(c *gin.Context) {
	users, err := ctrl.users.ByRole(c.Query("role"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type UpdateUserRequest struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
	Role  *string `json:"role"`
}

// Update merges changed account fields
func (ctrl *UserController) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if req.Email != nil {
		if !utils.ValidateEmail(*req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
			return
		}
		fields["email"] = *req.Email
	}
	if req.Name != nil {
		fields["name"] = utils.SanitizeInput(*req.Name)
	}
	if req.Role != nil {
		if !utils.ValidateRole(*req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
			return
		}
		fields["role"] = *req.Role
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	actorID, _ := c.Get("userID")
	if err := ctrl.users.Update(c.Param("id"), fields, actorID.(string)); err != nil {
		respondStoreError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// Delete removes a user account
func (ctrl *UserController) Delete(c *gin.Context) {
	actorID, _ := c.Get("userID")
	if err := ctrl.users.Delete(c.Param("id"), actorID.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

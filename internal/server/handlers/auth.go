package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/PramodHashantha/GPA-Calculator/internal/auth"
	"github.com/PramodHashantha/GPA-Calculator/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Register creates a new account and signs the user straight in.
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide name, email and a password of at least 6 characters"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := h.db.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating account"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "An account with this email already exists"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating account"})
		return
	}

	user := &types.User{
		ID:                 uuid.New().String(),
		Name:               strings.TrimSpace(req.Name),
		Email:              email,
		PasswordHash:       hash,
		DegreeName:         types.DefaultDegreeName,
		DegreeTotalCredits: types.DefaultDegreeTotalCredits,
		CreditCategories:   types.DefaultCreditCategories(),
		CreatedAt:          time.Now(),
	}

	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating account"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"user":    user,
	})
}

// Login verifies credentials and issues a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide email and password"})
		return
	}

	user, err := h.db.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error signing in"})
		return
	}
	if user == nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error signing in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in successfully",
		"token":   token,
		"user":    user,
	})
}

// Me returns the profile behind the bearer token.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.db.GetUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

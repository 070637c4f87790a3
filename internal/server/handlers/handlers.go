package handlers

import (
	"context"
	"net/http"

	"github.com/PramodHashantha/GPA-Calculator/internal/types"
	"github.com/gin-gonic/gin"
)

// Store is the slice of the Firestore repository the handlers depend on.
type Store interface {
	CreateUser(ctx context.Context, user *types.User) error
	GetUser(ctx context.Context, userID string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	UpdateDegreeInfo(ctx context.Context, userID string, totalCredits *int, degreeName *string) (*types.User, error)
	UpdateCreditCategories(ctx context.Context, userID string, categories types.CreditCategories) error

	CreateSubject(ctx context.Context, subject *types.Subject) error
	GetSubject(ctx context.Context, userID, subjectID string) (*types.Subject, error)
	ListSubjects(ctx context.Context, userID string, filter types.SubjectFilter) ([]types.Subject, error)
	UpdateSubject(ctx context.Context, subject *types.Subject) error
	DeleteSubject(ctx context.Context, userID, subjectID string) error
}

// ReportUploader pushes shared report snapshots to object storage.
type ReportUploader interface {
	UploadShareSnapshot(ctx context.Context, shareToken string, data []byte) (string, error)
}

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	db      Store
	reports ReportUploader
}

// New builds the handler set.
func New(db Store, reports ReportUploader) *Handler {
	return &Handler{db: db, reports: reports}
}

// Health responds with a simple service heartbeat.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"message": "Server is running",
	})
}

// currentUserID pulls the authenticated user's ID set by the auth middleware.
func currentUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// degreeTotalOrDefault falls back to the standard 120-credit degree when a
// profile has no usable target configured.
func degreeTotalOrDefault(user *types.User) int {
	if user.DegreeTotalCredits > 0 {
		return user.DegreeTotalCredits
	}
	return types.DefaultDegreeTotalCredits
}

// degreeNameOrDefault mirrors degreeTotalOrDefault for the degree label.
func degreeNameOrDefault(user *types.User) string {
	if user.DegreeName != "" {
		return user.DegreeName
	}
	return types.DefaultDegreeName
}

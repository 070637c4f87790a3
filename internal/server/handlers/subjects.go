package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PramodHashantha/GPA-Calculator/internal/firebase"
	"github.com/PramodHashantha/GPA-Calculator/internal/gpa"
	"github.com/PramodHashantha/GPA-Calculator/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AddSubject records a completed course attempt. Credits are always derived
// from the trailing digit of the subject code, never taken from the client.
func (h *Handler) AddSubject(c *gin.Context) {
	var req struct {
		SubjectCode  string   `json:"subjectCode" binding:"required"`
		SubjectName  string   `json:"subjectName" binding:"required"`
		CAPercentage *float64 `json:"caPercentage"`
		Grade        string   `json:"grade" binding:"required"`
		Year         int      `json:"year" binding:"required"`
		Semester     int      `json:"semester" binding:"required"`
		Attempts     int      `json:"attempts"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide all required fields"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.SubjectCode))
	credits, ok := gpa.CreditsFromCode(code)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unable to extract credits from subject code"})
		return
	}

	grade := strings.ToUpper(strings.TrimSpace(req.Grade))
	if !gpa.ValidGrade(grade) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid grade. Must be one of: " + strings.Join(gpa.Letters(), ", ")})
		return
	}

	if req.Year < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Year must be a positive number"})
		return
	}
	if req.Semester != 1 && req.Semester != 2 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Semester must be 1 or 2"})
		return
	}

	ca := 0.0
	if req.CAPercentage != nil {
		ca = *req.CAPercentage
		if ca < 0 || ca > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "CA percentage must be between 0 and 100"})
			return
		}
	}

	attempts := req.Attempts
	if attempts < 1 {
		attempts = 1
	}

	now := time.Now()
	subject := &types.Subject{
		ID:           uuid.New().String(),
		UserID:       currentUserID(c),
		SubjectCode:  code,
		SubjectName:  strings.TrimSpace(req.SubjectName),
		Credits:      credits,
		CAPercentage: ca,
		Grade:        grade,
		Year:         req.Year,
		Semester:     req.Semester,
		Attempts:     attempts,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.db.CreateSubject(c.Request.Context(), subject); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding subject"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Subject added successfully",
		"subject": subject,
	})
}

// ListSubjects returns the caller's subjects, optionally filtered by year
// and semester, newest period first.
func (h *Handler) ListSubjects(c *gin.Context) {
	filter, ok := parsePeriodFilter(c)
	if !ok {
		return
	}

	subjects, err := h.db.ListSubjects(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching subjects"})
		return
	}

	sort.SliceStable(subjects, func(i, j int) bool {
		if subjects[i].Year != subjects[j].Year {
			return subjects[i].Year > subjects[j].Year
		}
		if subjects[i].Semester != subjects[j].Semester {
			return subjects[i].Semester > subjects[j].Semester
		}
		return subjects[i].CreatedAt.After(subjects[j].CreatedAt)
	})

	c.JSON(http.StatusOK, gin.H{
		"count":    len(subjects),
		"subjects": subjects,
	})
}

// GetResults returns one period's subjects together with the period GPA.
func (h *Handler) GetResults(c *gin.Context) {
	yearValue := c.Query("year")
	semesterValue := c.Query("semester")
	if yearValue == "" || semesterValue == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Year and semester are required"})
		return
	}

	year, err := strconv.Atoi(yearValue)
	if err != nil || year < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Year must be a positive number"})
		return
	}
	semester, err := strconv.Atoi(semesterValue)
	if err != nil || (semester != 1 && semester != 2) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Semester must be 1 or 2"})
		return
	}

	subjects, err := h.db.ListSubjects(c.Request.Context(), currentUserID(c), types.SubjectFilter{Year: year, Semester: semester})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching results"})
		return
	}

	sort.SliceStable(subjects, func(i, j int) bool {
		return subjects[i].SubjectCode < subjects[j].SubjectCode
	})

	summary := gpa.Summarize(subjects)

	c.JSON(http.StatusOK, gin.H{
		"subjects":     subjects,
		"gpa":          summary.GPA,
		"totalCredits": summary.TotalCredits,
	})
}

// GetOverallGPA folds every recorded subject into the overall GPA.
func (h *Handler) GetOverallGPA(c *gin.Context) {
	subjects, err := h.db.ListSubjects(c.Request.Context(), currentUserID(c), types.SubjectFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error calculating GPA"})
		return
	}

	summary := gpa.Summarize(subjects)

	c.JSON(http.StatusOK, gin.H{
		"overallGPA":    summary.GPA,
		"totalCredits":  summary.TotalCredits,
		"totalSubjects": summary.TotalSubjects,
	})
}

// UpdateSubject applies a partial update. A changed subject code recomputes
// credits when its trailing digit is usable; otherwise the old credits stay.
func (h *Handler) UpdateSubject(c *gin.Context) {
	var req struct {
		SubjectCode  *string  `json:"subjectCode"`
		SubjectName  *string  `json:"subjectName"`
		CAPercentage *float64 `json:"caPercentage"`
		Grade        *string  `json:"grade"`
		Year         *int     `json:"year"`
		Semester     *int     `json:"semester"`
		Attempts     *int     `json:"attempts"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	userID := currentUserID(c)
	subject, err := h.db.GetSubject(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if err == firebase.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Subject not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating subject"})
		return
	}

	if req.SubjectCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.SubjectCode))
		if code != "" && code != subject.SubjectCode {
			if credits, ok := gpa.CreditsFromCode(code); ok {
				subject.Credits = credits
			}
			subject.SubjectCode = code
		}
	}
	if req.SubjectName != nil && strings.TrimSpace(*req.SubjectName) != "" {
		subject.SubjectName = strings.TrimSpace(*req.SubjectName)
	}
	if req.CAPercentage != nil {
		if *req.CAPercentage < 0 || *req.CAPercentage > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "CA percentage must be between 0 and 100"})
			return
		}
		subject.CAPercentage = *req.CAPercentage
	}
	if req.Grade != nil {
		grade := strings.ToUpper(strings.TrimSpace(*req.Grade))
		if !gpa.ValidGrade(grade) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid grade. Must be one of: " + strings.Join(gpa.Letters(), ", ")})
			return
		}
		subject.Grade = grade
	}
	if req.Year != nil {
		if *req.Year < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Year must be a positive number"})
			return
		}
		subject.Year = *req.Year
	}
	if req.Semester != nil {
		if *req.Semester != 1 && *req.Semester != 2 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Semester must be 1 or 2"})
			return
		}
		subject.Semester = *req.Semester
	}
	if req.Attempts != nil && *req.Attempts >= 1 {
		subject.Attempts = *req.Attempts
	}

	subject.UpdatedAt = time.Now()

	if err := h.db.UpdateSubject(c.Request.Context(), subject); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating subject"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subject updated successfully",
		"subject": subject,
	})
}

// DeleteSubject removes one of the caller's subjects.
func (h *Handler) DeleteSubject(c *gin.Context) {
	err := h.db.DeleteSubject(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		if err == firebase.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Subject not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting subject"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subject deleted successfully"})
}

// parsePeriodFilter reads optional year/semester query filters.
func parsePeriodFilter(c *gin.Context) (types.SubjectFilter, bool) {
	var filter types.SubjectFilter

	if value := strings.TrimSpace(c.Query("year")); value != "" {
		year, err := strconv.Atoi(value)
		if err != nil || year < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Year must be a positive number"})
			return filter, false
		}
		filter.Year = year
	}

	if value := strings.TrimSpace(c.Query("semester")); value != "" {
		semester, err := strconv.Atoi(value)
		if err != nil || (semester != 1 && semester != 2) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Semester must be 1 or 2"})
			return filter, false
		}
		filter.Semester = semester
	}

	return filter, true
}

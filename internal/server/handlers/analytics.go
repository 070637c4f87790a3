package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/PramodHashantha/GPA-Calculator/internal/gpa"
	"github.com/PramodHashantha/GPA-Calculator/internal/types"
	"github.com/gin-gonic/gin"
)

// GetDegreeProgress reports completed credits against the degree total.
func (h *Handler) GetDegreeProgress(c *gin.Context) {
	userID := currentUserID(c)

	user, err := h.db.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching degree progress"})
		return
	}

	subjects, err := h.db.ListSubjects(c.Request.Context(), userID, types.SubjectFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching degree progress"})
		return
	}

	summary := gpa.Summarize(subjects)
	total := degreeTotalOrDefault(user)
	progress := gpa.DegreeProgress(summary.TotalCredits, total)

	c.JSON(http.StatusOK, gin.H{
		"degreeName":           degreeNameOrDefault(user),
		"totalCreditsRequired": total,
		"completedCredits":     summary.TotalCredits,
		"remainingCredits":     progress.RemainingCredits,
		"percentage":           progress.Percentage,
		"currentGPA":           summary.GPA,
	})
}

// UpdateDegreeProgress sets the degree name and/or total credit requirement.
// Both fields are optional but validated before anything is written, so a bad
// value never half-applies.
func (h *Handler) UpdateDegreeProgress(c *gin.Context) {
	var req struct {
		TotalCredits *int    `json:"totalCredits"`
		DegreeName   *string `json:"degreeName"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if req.TotalCredits == nil && req.DegreeName == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Provide totalCredits or degreeName to update"})
		return
	}

	if req.TotalCredits != nil && *req.TotalCredits < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Total credits must be a positive number"})
		return
	}

	if req.DegreeName != nil {
		trimmed := strings.TrimSpace(*req.DegreeName)
		if trimmed == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Degree name cannot be empty"})
			return
		}
		req.DegreeName = &trimmed
	}

	user, err := h.db.UpdateDegreeInfo(c.Request.Context(), currentUserID(c), req.TotalCredits, req.DegreeName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating degree progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Degree progress updated successfully",
		"degreeName":   degreeNameOrDefault(user),
		"totalCredits": degreeTotalOrDefault(user),
	})
}

// GetSemesterHistory returns per-semester GPA buckets in chronological order.
func (h *Handler) GetSemesterHistory(c *gin.Context) {
	subjects, err := h.db.ListSubjects(c.Request.Context(), currentUserID(c), types.SubjectFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching semester history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": gpa.SemesterHistory(subjects)})
}

// GetSubjectPerformance returns the caller's best and worst subjects ranked
// by quality points.
func (h *Handler) GetSubjectPerformance(c *gin.Context) {
	subjects, err := h.db.ListSubjects(c.Request.Context(), currentUserID(c), types.SubjectFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching subject performance"})
		return
	}

	performance := gpa.RankPerformance(subjects)

	c.JSON(http.StatusOK, gin.H{
		"bestSubjects":  performance.Best,
		"worstSubjects": performance.Worst,
	})
}

// SolveTargetGPA answers "what do I need to average from here to graduate at
// this GPA". Future credits default to every remaining credit in the degree.
func (h *Handler) SolveTargetGPA(c *gin.Context) {
	var req struct {
		TargetGPA     *float64 `json:"targetGPA" binding:"required"`
		FutureCredits *int     `json:"futureCredits"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid target GPA required (0-4.0)"})
		return
	}

	userID := currentUserID(c)

	user, err := h.db.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error calculating target GPA"})
		return
	}

	subjects, err := h.db.ListSubjects(c.Request.Context(), userID, types.SubjectFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error calculating target GPA"})
		return
	}

	summary := gpa.Summarize(subjects)

	plan, err := gpa.SolveTarget(summary.GPA, summary.TotalCredits, degreeTotalOrDefault(user), *req.TargetGPA, req.FutureCredits)
	if err != nil {
		var verr *gpa.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"message": verr.Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error calculating target GPA"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// GetSummary bundles the overview numbers the dashboard needs in one call.
func (h *Handler) GetSummary(c *gin.Context) {
	userID := currentUserID(c)

	user, err := h.db.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching summary"})
		return
	}

	subjects, err := h.db.ListSubjects(c.Request.Context(), userID, types.SubjectFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching summary"})
		return
	}

	summary := gpa.Summarize(subjects)
	total := degreeTotalOrDefault(user)
	progress := gpa.DegreeProgress(summary.TotalCredits, total)
	history := gpa.SemesterHistory(subjects)

	c.JSON(http.StatusOK, gin.H{
		"overallGPA":       summary.GPA,
		"totalCredits":     summary.TotalCredits,
		"totalSubjects":    summary.TotalSubjects,
		"degreeName":       degreeNameOrDefault(user),
		"degreeCredits":    total,
		"remainingCredits": progress.RemainingCredits,
		"percentage":       progress.Percentage,
		"semesterCount":    len(history),
	})
}

// GetCreditCategories returns the degree credit breakdown, falling back to
// the stock Computer Science split when the user never customized it.
func (h *Handler) GetCreditCategories(c *gin.Context) {
	user, err := h.db.GetUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching credit categories"})
		return
	}

	categories := user.CreditCategories
	if categories == (types.CreditCategories{}) {
		categories = types.DefaultCreditCategories()
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// UpdateCreditCategories replaces the full credit breakdown. All four
// buckets are required so a partial write cannot skew the totals.
func (h *Handler) UpdateCreditCategories(c *gin.Context) {
	var req struct {
		CoreSubjects      *int `json:"coreSubjects" binding:"required"`
		MajorRequirements *int `json:"majorRequirements" binding:"required"`
		Electives         *int `json:"electives" binding:"required"`
		GeneralEducation  *int `json:"generalEducation" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All four credit categories are required"})
		return
	}

	if *req.CoreSubjects < 0 || *req.MajorRequirements < 0 || *req.Electives < 0 || *req.GeneralEducation < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Credit categories cannot be negative"})
		return
	}

	categories := types.CreditCategories{
		CoreSubjects:      *req.CoreSubjects,
		MajorRequirements: *req.MajorRequirements,
		Electives:         *req.Electives,
		GeneralEducation:  *req.GeneralEducation,
	}

	if err := h.db.UpdateCreditCategories(c.Request.Context(), currentUserID(c), categories); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating credit categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Credit categories updated successfully",
		"categories": categories,
	})
}

package handlers

import (
	"net/http"
	"testing"

	"github.com/PramodHashantha/GPA-Calculator/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDegreeProgress(t *testing.T) {
	store := newFakeStore()
	seedUser(store)
	seedSubject(store, "s1", "CS1013", "A", 3, 1, 1)
	seedSubject(store, "s2", "CS1023", "B", 3, 1, 2)
	h := New(store, &fakeUploader{})
	router := newTestRouter(h, testUserID)

	w := perform(router, http.MethodGet, "/api/analytics/degree-progress", nil)
	require.Equal(t, http.StatusOK, w.Code)

	payload := decode(t, w)
	assert.Equal(t, "Computer Science", payload["degreeName"])
	assert.Equal(t, float64(120), payload["totalCreditsRequired"])
	assert.Equal(t, float64(6), payload["completedCredits"])
	assert.Equal(t, float64(114), payload["remainingCredits"])
	assert.Equal(t, 5.0, payload["percentage"])
	assert.InDelta(t, 3.5, payload["currentGPA"], 0.001)
}

func TestUpdateDegreeProgress(t *testing.T) {
	store := newFakeStore()
	seedUser(store)
	h := New(store, &fakeUploader{})
	router := newTestRouter(h, testUserID)

	w := perform(router, http.MethodPut, "/api/analytics/degree-progress", gin.H{
		"totalCredits": 150,
		"degreeName":   "  Software Engineering  ",
	})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decode(t, w)
	assert.Equal(t, "Software Engineering", payload["degreeName"])
	assert.Equal(t, float64(150), payload["totalCredits"])
	assert.Equal(t, 150, store.users[testUserID].DegreeTotalCredits)
}

func TestUpdateDegreeProgressValidation(t *testing.T) {
	store := newFakeStore()
	seedUser(store)
	h := New(store, &fakeUploader{})
	router := newTestRouter(h, testUserID)

	w := perform(router, http.MethodPut, "/api/analytics/degree-progress", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(router, http.MethodPut, "/api/analytics/degree-progress", gin.H{"totalCredits": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Total credits must be a positive number", decode(t, w)["message"])

	w = perform(router, http.MethodPut, "/api/analytics/degree-progress", gin.H{
		"totalCredits": 150,
		"degreeName":   "   ",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Degree name cannot be empty", decode(t, w)["message"])

	// The invalid name must not let the credits half-apply.
	assert.Equal(t, types.DefaultDegreeTotalCredits, store.users[testUserID].DegreeTotalCredits)
}

func TestGetSemesterHistory(t *testing.T) {
	store := newFakeStore()
	seedUser(store)
	seedSubject(store, "s1", "CS2103", "B", 3, 2, 1)
	seedSubject(store, "s2", "CS1013", "A", 3, 1, 1)
	seedSubject(store, "s3", "CS1023", "C", 3, 1, 2)
	h := New(store, &fakeUploader{})
	router := newTestRouter(h, testUserID)

	w := perform(router, http.MethodGet, "/api/analytics/semester-history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	history := decode(t, w)["history"].([]any)
	require.Len(t, history, 3)

	first := history[0].(map[string]any)
	assert.Equal(t, "Year 1 Sem 1", first["label"])
	assert.InDelta(t, 4.0, first["gpa"], 0.001)
	last := history[2].(map[string]any)
	assert.Equal(t, "Year 2 Sem 1", last["label"])
}

func TestGetSubjectPerformance(t *testing.T) {
	store := newFakeStore()
	seedUser(store)
	seedSubject(store, "s1", "CS1013", "A", 3, 1, 1)
	seedSubject(store, "s2", "CS1023", "F", 3, 1, 1)
	seedSubject(store, "s3", "CS1033", "B", 3, 1, 2)
	h := New(store, &fakeUploader{})
	router := newTestRouter(h, testUserID)

	w := perform(router, http.MethodGet, "/api/analytics/subject-performance", nil)
	require.Equal(t, http.StatusOK, w.Code)

	payload := decode(t, w)
	best := payload["bestSubjects"].([]any)
	worst := payload["worstSubjects"].([]any)
	require.NotEmpty(t, best)
	require.NotEmpty(t, worst)
	assert.Equal(t, "CS1013", best[0].(map[string]any)["subjectCode"])
	assert.Equal(t, "CS1023", worst[0].(map[string]any)["subjectCode"])
}

func TestSolveTargetGPA(t *testing.T) {
	store := newFakeStore()
	seedUser(store)
	// 90 completed credits at a 3.0 average, 30 credits remaining.
	seedSubject(store, "s1", "CS1090", "B", 90, 1, 1)
	h := New(store, &fakeUploader{})
	router := newTestRouter(h, testUserID)

	w := perform(router, http.MethodPost, "/api/analytics/target-gpa", gin.H{"targetGPA": 3.2})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decode(t, w)
	assert.Equal(t, true, payload["achievable"])
	assert.InDelta(t, 3.8, payload["requiredGPA"], 0.001)
	assert.Equal(t, "A", payload["minGradeRequired"])
	assert.Equal(t, float64(30), payload["futureCredits"])
	assert.Equal(t, float64(10), payload["estimatedSubjects"])
}

func TestSolveTargetGPANotAchievable(t *testing.T) {
	store := newFakeStore()
	seedUser(store)
	seedSubject(store, "s1", "CS1090", "B", 90, 1, 1)
	h := New(store, &fakeUploader{})
	router := newTestRouter(h, testUserID)

	w := perform(router, http.MethodPost, "/api/analytics/target-gpa", gin.H{"targetGPA": 4.0})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decode(t, w)
	assert.Equal(t, false, payload["achievable"])
	assert.Equal(t, "Target GPA not achievable - required GPA exceeds 4.0", payload["message"])
}

func TestSolveTargetGPAAlreadyExceeded(t *testing.T) {
	store := newFakeStore()
	seedUser(store)
	seedSubject(store, "s1", "CS1090", "A", 90, 1, 1)
	h := New(store, &fakeUploader{})
	router := newTestRouter(h, testUserID)

	w := perform(router, http.MethodPost, "/api/analytics/target-gpa", gin.H{"targetGPA": 2.0})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decode(t, w)
	assert.Equal(t, true, payload["achievable"])
	assert.Equal(t, float64(0), payload["requiredGPA"])
	assert.Equal(t, "F", payload["minGradeRequired"])
	assert.Equal(t, "You already exceed this target GPA! Any grade will work.", payload["message"])
}

func TestSolveTargetGPAValidation(t *testing.T) {
	store := newFakeStore()
	seedUser(store)
	seedSubject(store, "s1", "CS1090", "B", 90, 1, 1)
	h := New(store, &fakeUploader{})
	router := newTestRouter(h, testUserID)

	w := perform(router, http.MethodPost, "/api/analytics/target-gpa", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Valid target GPA required (0-4.0)", decode(t, w)["message"])

	w = perform(router, http.MethodPost, "/api/analytics/target-gpa", gin.H{"targetGPA": 4.5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Valid target GPA required (0-4.0)", decode(t, w)["message"])

	w = perform(router, http.MethodPost, "/api/analytics/target-gpa", gin.H{
		"targetGPA":     3.0,
		"futureCredits": 50,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Future credits (50) cannot exceed remaining credits (30)", decode(t, w)["message"])
}

func TestGetSummary(t *testing.T) {
	store := newFakeStore()
	seedUser(store)
	seedSubject(store, "s1", "CS1013", "A", 3, 1, 1)
	seedSubject(store, "s2", "CS1023", "B", 3, 1, 2)
	h := New(store, &fakeUploader{})
	router := newTestRouter(h, testUserID)

	w := perform(router, http.MethodGet, "/api/analytics/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	payload := decode(t, w)
	assert.InDelta(t, 3.5, payload["overallGPA"], 0.001)
	assert.Equal(t, float64(6), payload["totalCredits"])
	assert.Equal(t, float64(2), payload["totalSubjects"])
	assert.Equal(t, float64(120), payload["degreeCredits"])
	assert.Equal(t, float64(2), payload["semesterCount"])
}

func TestCreditCategories(t *testing.T) {
	store := newFakeStore()
	seedUser(store)
	h := New(store, &fakeUploader{})
	router := newTestRouter(h, testUserID)

	w := perform(router, http.MethodGet, "/api/analytics/credit-categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	categories := decode(t, w)["categories"].(map[string]any)
	assert.Equal(t, float64(24), categories["coreSubjects"])
	assert.Equal(t, float64(84), categories["majorRequirements"])

	w = perform(router, http.MethodPut, "/api/analytics/credit-categories", gin.H{
		"coreSubjects":      30,
		"majorRequirements": 60,
		"electives":         20,
		"generalEducation":  10,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, store.users[testUserID].CreditCategories.CoreSubjects)

	// All four buckets are mandatory.
	w = perform(router, http.MethodPut, "/api/analytics/credit-categories", gin.H{
		"coreSubjects": 30,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All four credit categories are required", decode(t, w)["message"])

	w = perform(router, http.MethodPut, "/api/analytics/credit-categories", gin.H{
		"coreSubjects":      -1,
		"majorRequirements": 60,
		"electives":         20,
		"generalEducation":  10,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Credit categories cannot be negative", decode(t, w)["message"])
}

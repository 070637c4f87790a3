package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportExcel(t *testing.T) {
	store := newFakeStore()
	seedUser(store)
	seedSubject(store, "s1", "CS1013", "A", 3, 1, 1)
	seedSubject(store, "s2", "CS2103", "B", 3, 2, 1)
	h := New(store, &fakeUploader{})
	router := newTestRouter(h, testUserID)

	w := perform(router, http.MethodGet, "/api/export/excel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, excelContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "GPA_Report_Pramod_Hashantha.xlsx")
	// xlsx files are zip archives
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
}

func TestExportPDF(t *testing.T) {
	store := newFakeStore()
	seedUser(store)
	seedSubject(store, "s1", "CS1013", "A", 3, 1, 1)
	h := New(store, &fakeUploader{})
	router := newTestRouter(h, testUserID)

	w := perform(router, http.MethodGet, "/api/export/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, pdfContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "GPA_Report_Pramod_Hashantha.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestShareReport(t *testing.T) {
	store := newFakeStore()
	seedUser(store)
	seedSubject(store, "s1", "CS1013", "A", 3, 1, 1)
	seedSubject(store, "s2", "CS1023", "B", 3, 1, 2)
	uploader := &fakeUploader{}
	h := New(store, uploader)
	router := newTestRouter(h, testUserID)

	w := perform(router, http.MethodGet, "/api/export/share", nil)
	require.Equal(t, http.StatusOK, w.Code)

	payload := decode(t, w)
	token, _ := payload["shareToken"].(string)
	assert.Len(t, token, 32)
	assert.Equal(t, token, uploader.lastToken)
	assert.Equal(t, "https://storage.example.com/shares/"+token+".json", payload["shareLink"])

	// The uploaded snapshot carries only rolled-up numbers.
	var snapshot map[string]any
	require.NoError(t, json.Unmarshal(uploader.lastData, &snapshot))
	assert.InDelta(t, 3.5, snapshot["overallGPA"], 0.001)
	assert.Equal(t, float64(6), snapshot["totalCredits"])
	assert.NotContains(t, snapshot, "subjects")

	breakdown := snapshot["semesterBreakdown"].([]any)
	require.Len(t, breakdown, 2)
	assert.Equal(t, "Year 1 Sem 1", breakdown[0].(map[string]any)["label"])

	shareData := payload["shareData"].(map[string]any)
	assert.Equal(t, "Pramod Hashantha", shareData["studentName"])
	assert.Contains(t, shareData["summary"], "GPA: 3.50")
}

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/PramodHashantha/GPA-Calculator/internal/gpa"
	"github.com/PramodHashantha/GPA-Calculator/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const (
	excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType   = "application/pdf"
)

// periodGroup is one academic period's subjects with its rolled-up summary,
// used by the export renderers.
type periodGroup struct {
	Label    string
	Subjects []types.Subject
	Summary  gpa.Summary
}

// exportData loads everything the export endpoints render: the profile and
// the full subject list sorted chronologically, then by code.
func (h *Handler) exportData(c *gin.Context) (*types.User, []types.Subject, bool) {
	userID := currentUserID(c)

	user, err := h.db.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating report"})
		return nil, nil, false
	}

	subjects, err := h.db.ListSubjects(c.Request.Context(), userID, types.SubjectFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating report"})
		return nil, nil, false
	}

	sort.SliceStable(subjects, func(i, j int) bool {
		if subjects[i].Year != subjects[j].Year {
			return subjects[i].Year < subjects[j].Year
		}
		if subjects[i].Semester != subjects[j].Semester {
			return subjects[i].Semester < subjects[j].Semester
		}
		return subjects[i].SubjectCode < subjects[j].SubjectCode
	})

	return user, subjects, true
}

// groupByPeriod buckets pre-sorted subjects into academic periods.
func groupByPeriod(subjects []types.Subject) []periodGroup {
	var groups []periodGroup
	for _, subject := range subjects {
		label := fmt.Sprintf("Year %d - Semester %d", subject.Year, subject.Semester)
		if len(groups) == 0 || groups[len(groups)-1].Label != label {
			groups = append(groups, periodGroup{Label: label})
		}
		groups[len(groups)-1].Subjects = append(groups[len(groups)-1].Subjects, subject)
	}
	for i := range groups {
		groups[i].Summary = gpa.Summarize(groups[i].Subjects)
	}
	return groups
}

// reportFilename turns the student's name into a safe attachment filename.
func reportFilename(user *types.User, extension string) string {
	name := strings.ReplaceAll(strings.TrimSpace(user.Name), " ", "_")
	if name == "" {
		name = "Student"
	}
	return fmt.Sprintf("GPA_Report_%s.%s", name, extension)
}

// ExportExcel writes the full transcript as a two-sheet workbook: an overall
// summary with every subject, and a semester-by-semester breakdown.
func (h *Handler) ExportExcel(c *gin.Context) {
	user, subjects, ok := h.exportData(c)
	if !ok {
		return
	}

	summary := gpa.Summarize(subjects)
	total := degreeTotalOrDefault(user)
	progress := gpa.DegreeProgress(summary.TotalCredits, total)

	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Academic Summary"
	f.SetSheetName("Sheet1", summarySheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 20, Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1E40AF"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1E40AF"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.MergeCell(summarySheet, "A1", "H1")
	f.SetCellValue(summarySheet, "A1", "ACADEMIC TRANSCRIPT")
	f.SetCellStyle(summarySheet, "A1", "H1", titleStyle)
	f.MergeCell(summarySheet, "A2", "H2")
	f.SetCellValue(summarySheet, "A2", degreeNameOrDefault(user))

	f.SetCellValue(summarySheet, "A4", "Student Name:")
	f.SetCellValue(summarySheet, "B4", user.Name)
	f.SetCellValue(summarySheet, "A5", "Email:")
	f.SetCellValue(summarySheet, "B5", user.Email)
	f.SetCellValue(summarySheet, "A6", "Report Generated:")
	f.SetCellValue(summarySheet, "B6", time.Now().Format("January 2, 2006"))

	f.SetCellValue(summarySheet, "D4", "ACADEMIC SUMMARY")
	f.SetCellStyle(summarySheet, "D4", "D4", headerStyle)
	f.SetCellValue(summarySheet, "D5", "Overall GPA:")
	f.SetCellValue(summarySheet, "E5", fmt.Sprintf("%.2f", summary.GPA))
	f.SetCellValue(summarySheet, "D6", fmt.Sprintf("Credits: %d / %d", summary.TotalCredits, total))
	f.SetCellValue(summarySheet, "E6", fmt.Sprintf("Progress: %.1f%%", progress.Percentage))
	f.SetCellValue(summarySheet, "D7", fmt.Sprintf("Total Subjects: %d", summary.TotalSubjects))

	columns := []string{"Year", "Semester", "Subject Code", "Subject Name", "Credits", "CA %", "Grade", "Grade Points"}
	for i, column := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 8)
		f.SetCellValue(summarySheet, cell, column)
	}
	f.SetCellStyle(summarySheet, "A8", "H8", headerStyle)

	for i, subject := range subjects {
		row := 9 + i
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), subject.Year)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), subject.Semester)
		f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), subject.SubjectCode)
		f.SetCellValue(summarySheet, fmt.Sprintf("D%d", row), subject.SubjectName)
		f.SetCellValue(summarySheet, fmt.Sprintf("E%d", row), subject.Credits)
		f.SetCellValue(summarySheet, fmt.Sprintf("F%d", row), fmt.Sprintf("%.2f", subject.CAPercentage))
		f.SetCellValue(summarySheet, fmt.Sprintf("G%d", row), subject.Grade)
		f.SetCellValue(summarySheet, fmt.Sprintf("H%d", row), gpa.PointsOf(subject.Grade))
	}

	f.SetColWidth(summarySheet, "A", "B", 10)
	f.SetColWidth(summarySheet, "C", "C", 15)
	f.SetColWidth(summarySheet, "D", "D", 45)
	f.SetColWidth(summarySheet, "E", "H", 12)

	const breakdownSheet = "Semester Breakdown"
	f.NewSheet(breakdownSheet)

	row := 1
	for _, group := range groupByPeriod(subjects) {
		f.MergeCell(breakdownSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row))
		f.SetCellValue(breakdownSheet, fmt.Sprintf("A%d", row), group.Label)
		f.SetCellStyle(breakdownSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), titleStyle)
		row++

		f.SetCellValue(breakdownSheet, fmt.Sprintf("A%d", row),
			fmt.Sprintf("Semester GPA: %.2f | Credits: %d", group.Summary.GPA, group.Summary.TotalCredits))
		row++

		headers := []string{"Subject Code", "Subject Name", "Credits", "CA %", "Grade", "Grade Points", "Quality Points", "Attempt"}
		for i, header := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(breakdownSheet, cell, header)
		}
		f.SetCellStyle(breakdownSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), headerStyle)
		row++

		for _, subject := range group.Subjects {
			points := gpa.PointsOf(subject.Grade)
			f.SetCellValue(breakdownSheet, fmt.Sprintf("A%d", row), subject.SubjectCode)
			f.SetCellValue(breakdownSheet, fmt.Sprintf("B%d", row), subject.SubjectName)
			f.SetCellValue(breakdownSheet, fmt.Sprintf("C%d", row), subject.Credits)
			f.SetCellValue(breakdownSheet, fmt.Sprintf("D%d", row), fmt.Sprintf("%.2f", subject.CAPercentage))
			f.SetCellValue(breakdownSheet, fmt.Sprintf("E%d", row), subject.Grade)
			f.SetCellValue(breakdownSheet, fmt.Sprintf("F%d", row), fmt.Sprintf("%.1f", points))
			f.SetCellValue(breakdownSheet, fmt.Sprintf("G%d", row), fmt.Sprintf("%.1f", points*float64(subject.Credits)))
			f.SetCellValue(breakdownSheet, fmt.Sprintf("H%d", row), subject.Attempts)
			row++
		}
		row += 2
	}

	f.SetColWidth(breakdownSheet, "A", "A", 15)
	f.SetColWidth(breakdownSheet, "B", "B", 45)
	f.SetColWidth(breakdownSheet, "C", "H", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating Excel"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportFilename(user, "xlsx")))
	c.Data(http.StatusOK, excelContentType, buf.Bytes())
}

// ExportPDF renders the transcript as a PDF: a header with the overall
// summary followed by a table per semester.
func (h *Handler) ExportPDF(c *gin.Context) {
	user, subjects, ok := h.exportData(c)
	if !ok {
		return
	}

	summary := gpa.Summarize(subjects)
	total := degreeTotalOrDefault(user)
	progress := gpa.DegreeProgress(summary.TotalCredits, total)

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(fmt.Sprintf("GPA Academic Report - %s", user.Name), false)
	pdf.SetAuthor("GPA Calculator", false)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Banner
	pageWidth, _ := pdf.GetPageSize()
	pdf.SetFillColor(30, 64, 175)
	pdf.Rect(0, 0, pageWidth, 42, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(0, 10)
	pdf.CellFormat(pageWidth, 10, "ACADEMIC TRANSCRIPT", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(pageWidth, 8, degreeNameOrDefault(user), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(pageWidth, 6, "Generated: "+time.Now().Format("January 2, 2006"), "", 1, "C", false, 0, "")

	// Student info
	pdf.SetTextColor(31, 41, 55)
	pdf.SetXY(15, 50)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Student Information", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(15)
	pdf.CellFormat(90, 6, "Name: "+user.Name, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Email: "+user.Email, "", 1, "L", false, 0, "")
	pdf.SetX(15)
	pdf.CellFormat(0, 6, "Degree: "+degreeNameOrDefault(user), "", 1, "L", false, 0, "")

	// Summary
	pdf.Ln(4)
	pdf.SetX(15)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(0, 8, "Academic Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetX(15)
	pdf.CellFormat(40, 12, fmt.Sprintf("%.2f", summary.GPA), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(55, 65, 81)
	pdf.CellFormat(0, 12, fmt.Sprintf("Overall GPA | Credits: %d / %d | Subjects: %d | %.1f%% complete",
		summary.TotalCredits, total, summary.TotalSubjects, progress.Percentage), "", 1, "L", false, 0, "")

	// Per-semester tables
	pdf.Ln(4)
	pdf.SetX(15)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(0, 8, "Semester-wise Performance", "", 1, "L", false, 0, "")

	colWidths := []float64{30, 85, 20, 20, 25}
	headers := []string{"Code", "Subject Name", "Credits", "Grade", "Points"}

	for _, group := range groupByPeriod(subjects) {
		pdf.Ln(2)
		pdf.SetX(15)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(31, 41, 55)
		pdf.CellFormat(0, 7, group.Label, "", 1, "L", false, 0, "")
		pdf.SetX(15)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(5, 150, 105)
		pdf.CellFormat(0, 5, fmt.Sprintf("Semester GPA: %.2f | Credits: %d", group.Summary.GPA, group.Summary.TotalCredits), "", 1, "L", false, 0, "")

		pdf.SetX(15)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(30, 64, 175)
		pdf.SetTextColor(255, 255, 255)
		for i, header := range headers {
			pdf.CellFormat(colWidths[i], 7, header, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(31, 41, 55)
		for i, subject := range group.Subjects {
			if i%2 == 0 {
				pdf.SetFillColor(255, 255, 255)
			} else {
				pdf.SetFillColor(249, 250, 251)
			}
			pdf.SetX(15)
			pdf.CellFormat(colWidths[0], 6, subject.SubjectCode, "1", 0, "L", true, 0, "")
			pdf.CellFormat(colWidths[1], 6, subject.SubjectName, "1", 0, "L", true, 0, "")
			pdf.CellFormat(colWidths[2], 6, fmt.Sprintf("%d", subject.Credits), "1", 0, "C", true, 0, "")
			pdf.CellFormat(colWidths[3], 6, subject.Grade, "1", 0, "C", true, 0, "")
			pdf.CellFormat(colWidths[4], 6, fmt.Sprintf("%.1f", gpa.PointsOf(subject.Grade)), "1", 0, "C", true, 0, "")
			pdf.Ln(-1)
		}
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 5, "This is an unofficial transcript. For official transcripts, please contact your academic institution.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportFilename(user, "pdf")))
	c.Data(http.StatusOK, pdfContentType, buf.Bytes())
}

// shareSnapshot is the public shape of a shared report. It deliberately
// carries no subject-level detail, only rolled-up numbers.
type shareSnapshot struct {
	StudentName        string               `json:"studentName"`
	Email              string               `json:"email"`
	DegreeName         string               `json:"degreeName"`
	OverallGPA         float64              `json:"overallGPA"`
	TotalCredits       int                  `json:"totalCredits"`
	TotalSubjects      int                  `json:"totalSubjects"`
	DegreeTotalCredits int                  `json:"degreeTotalCredits"`
	ProgressPercentage float64              `json:"progressPercentage"`
	SemesterBreakdown  []gpa.PeriodSummary  `json:"semesterBreakdown"`
	GeneratedAt        time.Time            `json:"generatedAt"`
	Summary            string               `json:"summary"`
}

// ShareReport snapshots the caller's rolled-up academic record, uploads it to
// object storage, and returns a tokenized public link to the snapshot.
func (h *Handler) ShareReport(c *gin.Context) {
	user, subjects, ok := h.exportData(c)
	if !ok {
		return
	}

	summary := gpa.Summarize(subjects)
	total := degreeTotalOrDefault(user)
	progress := gpa.DegreeProgress(summary.TotalCredits, total)

	snapshot := shareSnapshot{
		StudentName:        user.Name,
		Email:              user.Email,
		DegreeName:         degreeNameOrDefault(user),
		OverallGPA:         summary.GPA,
		TotalCredits:       summary.TotalCredits,
		TotalSubjects:      summary.TotalSubjects,
		DegreeTotalCredits: total,
		ProgressPercentage: progress.Percentage,
		SemesterBreakdown:  gpa.SemesterHistory(subjects),
		GeneratedAt:        time.Now().UTC(),
		Summary: fmt.Sprintf("%s - %s | GPA: %.2f | Credits: %d/%d (%.1f%%)",
			user.Name, degreeNameOrDefault(user), summary.GPA, summary.TotalCredits, total, progress.Percentage),
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating share link"})
		return
	}

	shareToken := strings.ReplaceAll(uuid.New().String(), "-", "")

	shareLink, err := h.reports.UploadShareSnapshot(c.Request.Context(), shareToken, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error generating share link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shareLink":  shareLink,
		"shareToken": shareToken,
		"shareData":  snapshot,
	})
}

package gpa

import (
	"fmt"
	"math"
	"sort"

	"github.com/PramodHashantha/GPA-Calculator/internal/types"
)

// Summary is the reduction of a set of subjects into total credits, total
// quality points and GPA.
type Summary struct {
	GPA           float64 `json:"gpa"`
	TotalCredits  int     `json:"totalCredits"`
	TotalPoints   float64 `json:"totalPoints"`
	TotalSubjects int     `json:"totalSubjects"`
}

// PeriodSummary is the same reduction scoped to one (year, semester) period.
type PeriodSummary struct {
	Label        string  `json:"label"`
	Year         int     `json:"year"`
	Semester     int     `json:"semester"`
	GPA          float64 `json:"gpa"`
	Credits      int     `json:"credits"`
	SubjectCount int     `json:"subjectCount"`
}

// Round2 rounds to 2 decimal places, half away from zero. Display precision
// only; classification logic works on unrounded values.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summarize folds subjects into total credits, total quality points and a
// 2-decimal GPA. GPA is 0 when no credits were earned.
func Summarize(subjects []types.Subject) Summary {
	var credits int
	var pts float64
	for _, s := range subjects {
		credits += s.Credits
		pts += PointsOf(s.Grade) * float64(s.Credits)
	}

	gpa := 0.0
	if credits > 0 {
		gpa = Round2(pts / float64(credits))
	}

	return Summary{
		GPA:           gpa,
		TotalCredits:  credits,
		TotalPoints:   pts,
		TotalSubjects: len(subjects),
	}
}

// SemesterHistory partitions subjects by (year, semester), runs the GPA
// reduction per partition and returns the periods sorted ascending by year
// then semester, oldest first, for trend display.
func SemesterHistory(subjects []types.Subject) []PeriodSummary {
	type bucket struct {
		credits int
		points  float64
		count   int
	}

	type periodKey struct {
		year     int
		semester int
	}

	buckets := make(map[periodKey]*bucket)
	for _, s := range subjects {
		key := periodKey{s.Year, s.Semester}
		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}
		b.credits += s.Credits
		b.points += PointsOf(s.Grade) * float64(s.Credits)
		b.count++
	}

	history := make([]PeriodSummary, 0, len(buckets))
	for key, b := range buckets {
		gpa := 0.0
		if b.credits > 0 {
			gpa = Round2(b.points / float64(b.credits))
		}
		history = append(history, PeriodSummary{
			Label:        fmt.Sprintf("Year %d Sem %d", key.year, key.semester),
			Year:         key.year,
			Semester:     key.semester,
			GPA:          gpa,
			Credits:      b.credits,
			SubjectCount: b.count,
		})
	}

	sort.Slice(history, func(i, j int) bool {
		if history[i].Year != history[j].Year {
			return history[i].Year < history[j].Year
		}
		return history[i].Semester < history[j].Semester
	})

	return history
}

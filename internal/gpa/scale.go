// Package gpa implements the grade-point arithmetic behind the API: the
// letter-grade scale, credit derivation from subject codes, GPA aggregation,
// degree progress, the target-GPA solver, and subject performance ranking.
// Everything in this package is a pure computation over values fetched by the
// caller; nothing here touches Firestore.
package gpa

// GradePoint pairs a letter grade with its quality-point value.
type GradePoint struct {
	Letter string
	Value  float64
}

// scale is ordered from highest to lowest value. A+ and A share 4.0; every
// other step strictly descends. The minimum-grade lookup in the target solver
// depends on this ordering, so new entries must keep it sorted.
var scale = []GradePoint{
	{"A+", 4.0},
	{"A", 4.0},
	{"A-", 3.7},
	{"B+", 3.3},
	{"B", 3.0},
	{"B-", 2.7},
	{"C+", 2.3},
	{"C", 2.0},
	{"C-", 1.7},
	{"D+", 1.3},
	{"D", 1.0},
	{"F", 0.0},
}

var points = func() map[string]float64 {
	m := make(map[string]float64, len(scale))
	for _, g := range scale {
		m[g.Letter] = g.Value
	}
	return m
}()

// PointsOf returns the quality-point value for a letter grade. Unknown
// letters fall back to 0; callers are expected to validate grade membership
// with ValidGrade at input time.
func PointsOf(grade string) float64 {
	return points[grade]
}

// ValidGrade reports whether grade is one of the 12 recognized letters.
func ValidGrade(grade string) bool {
	_, ok := points[grade]
	return ok
}

// Letters returns the letter grades ordered from highest to lowest value.
func Letters() []string {
	out := make([]string, len(scale))
	for i, g := range scale {
		out[i] = g.Letter
	}
	return out
}

// MinGradeAtLeast returns the lowest-valued letter grade whose point value
// still meets or exceeds required. The scale is scanned from the top and the
// last satisfying letter wins, so ties at the top resolve to the cheaper "A"
// rather than "A+". Falls back to "F" when required is not positive.
func MinGradeAtLeast(required float64) string {
	min := "F"
	for _, g := range scale {
		if g.Value+achievableEpsilon >= required {
			min = g.Letter
		} else {
			// everything after this is lower still
			break
		}
	}
	return min
}

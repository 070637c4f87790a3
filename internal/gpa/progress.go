package gpa

// Progress describes how far a user is through their configured degree.
type Progress struct {
	Percentage       float64 `json:"percentage"`
	RemainingCredits int     `json:"remainingCredits"`
}

// DegreeProgress combines completed credits with the degree's total credit
// target. A target of 0 or less yields 0% rather than dividing by zero;
// remaining credits never go negative when a user overshoots the target.
func DegreeProgress(completedCredits, degreeTotalCredits int) Progress {
	pct := 0.0
	if degreeTotalCredits > 0 {
		pct = Round2(float64(completedCredits) / float64(degreeTotalCredits) * 100)
	}

	remaining := degreeTotalCredits - completedCredits
	if remaining < 0 {
		remaining = 0
	}

	return Progress{
		Percentage:       pct,
		RemainingCredits: remaining,
	}
}

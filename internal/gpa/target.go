package gpa

import "fmt"

// achievableEpsilon guards the float comparisons in the solver. A required
// GPA of exactly 4.0 must classify as achievable even when the quality-point
// balance overshoots by a few ulps.
const achievableEpsilon = 1e-9

// nominalSubjectCredits is the assumed per-subject size used only for the
// estimated-subject-count messaging. It never enters achievability or
// required-GPA math.
const nominalSubjectCredits = 3

// ValidationError marks malformed or out-of-range solver input. Handlers map
// it to a 400 response.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// TargetPlan is the solver's answer: the average GPA the user's future
// credits must achieve for the overall GPA to land on target, and whether
// that is possible at all.
type TargetPlan struct {
	CurrentGPA       float64  `json:"currentGPA"`
	CompletedCredits int      `json:"completedCredits"`
	TargetGPA        float64  `json:"targetGPA"`
	FutureCredits    int      `json:"futureCredits"`
	RemainingCredits int      `json:"remainingCredits"`
	RequiredGPA      *float64 `json:"requiredGPA"`
	MinGradeRequired *string  `json:"minGradeRequired"`

	// EstimatedSubjects assumes nominalSubjectCredits credits per subject.
	EstimatedSubjects int    `json:"estimatedSubjects"`
	Achievable        bool   `json:"achievable"`
	Message           string `json:"message"`
}

// SolveTarget back-solves the minimum average GPA the next futureCredits
// credits must reach so that the overall GPA across completed and future
// credits equals targetGPA.
//
// The quality-point balance: total points needed are targetGPA*(C+F), points
// already banked are currentGPA*C, and the difference spread over F credits
// is the required future average.
//
// futureCredits nil defaults to all credits remaining toward
// degreeTotalCredits. A supplied value larger than the remaining credits is a
// validation error; a resolved value of 0 or less means the degree is already
// fully credited and short-circuits without touching the formula.
func SolveTarget(currentGPA float64, completedCredits, degreeTotalCredits int, targetGPA float64, futureCredits *int) (*TargetPlan, error) {
	if targetGPA < 0 || targetGPA > 4.0 {
		return nil, &ValidationError{Reason: "Valid target GPA required (0-4.0)"}
	}

	remaining := degreeTotalCredits - completedCredits
	if remaining < 0 {
		remaining = 0
	}

	planned := remaining
	if futureCredits != nil {
		if *futureCredits > remaining {
			return nil, &ValidationError{
				Reason: fmt.Sprintf("Future credits (%d) cannot exceed remaining credits (%d)", *futureCredits, remaining),
			}
		}
		planned = *futureCredits
	}

	plan := &TargetPlan{
		CurrentGPA:       currentGPA,
		CompletedCredits: completedCredits,
		TargetGPA:        targetGPA,
		FutureCredits:    planned,
		RemainingCredits: remaining,
	}

	if planned <= 0 {
		plan.Achievable = true
		plan.Message = "Degree already completed"
		return plan, nil
	}

	required := (targetGPA*float64(completedCredits+planned) - currentGPA*float64(completedCredits)) / float64(planned)
	plan.EstimatedSubjects = estimateSubjects(planned)

	switch {
	case required > 4.0+achievableEpsilon:
		// no grade combination reaches the target within the planned credits;
		// the rounded requirement is reported so the caller can see how far over
		rounded := Round2(required)
		plan.RequiredGPA = &rounded
		plan.Achievable = false
		plan.Message = "Target GPA not achievable - required GPA exceeds 4.0"

	case required <= achievableEpsilon:
		zero := 0.0
		f := "F"
		plan.RequiredGPA = &zero
		plan.MinGradeRequired = &f
		plan.Achievable = true
		plan.Message = "You already exceed this target GPA! Any grade will work."

	default:
		rounded := Round2(required)
		min := MinGradeAtLeast(required)
		plan.RequiredGPA = &rounded
		plan.MinGradeRequired = &min
		plan.Achievable = true
		plan.Message = priorityMessage(min, plan.EstimatedSubjects)
	}

	return plan, nil
}

func estimateSubjects(credits int) int {
	return (credits + nominalSubjectCredits - 1) / nominalSubjectCredits
}

func priorityMessage(minGrade string, subjects int) string {
	plural := ""
	if subjects > 1 {
		plural = "s"
	}
	return fmt.Sprintf("Focus on achieving at least %s in %d future subject%s. Prioritize high-credit courses for maximum GPA impact.", minGrade, subjects, plural)
}

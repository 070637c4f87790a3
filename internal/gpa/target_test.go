package gpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestSolveTargetNotAchievable(t *testing.T) {
	// (3.5*90 - 3.0*60)/30 = 4.5, above any grade in the scale
	plan, err := SolveTarget(3.0, 60, 120, 3.5, intPtr(30))
	require.NoError(t, err)

	assert.False(t, plan.Achievable)
	require.NotNil(t, plan.RequiredGPA)
	assert.InDelta(t, 4.5, *plan.RequiredGPA, 1e-9)
	assert.Nil(t, plan.MinGradeRequired)
	assert.Equal(t, 10, plan.EstimatedSubjects) // ceil(30/3)
	assert.Equal(t, "Target GPA not achievable - required GPA exceeds 4.0", plan.Message)
}

func TestSolveTargetNormalCase(t *testing.T) {
	// (3.2*120 - 3.0*60)/60 = 3.4 -> cheapest covering grade is A- (3.7)
	plan, err := SolveTarget(3.0, 60, 120, 3.2, intPtr(60))
	require.NoError(t, err)

	assert.True(t, plan.Achievable)
	require.NotNil(t, plan.RequiredGPA)
	assert.InDelta(t, 3.4, *plan.RequiredGPA, 1e-9)
	require.NotNil(t, plan.MinGradeRequired)
	assert.Equal(t, "A-", *plan.MinGradeRequired)
	assert.Equal(t, 20, plan.EstimatedSubjects)
	assert.Equal(t, "Focus on achieving at least A- in 20 future subjects. Prioritize high-credit courses for maximum GPA impact.", plan.Message)
}

func TestSolveTargetSingularSubjectMessage(t *testing.T) {
	plan, err := SolveTarget(3.0, 117, 120, 3.01, intPtr(3))
	require.NoError(t, err)

	assert.True(t, plan.Achievable)
	assert.Equal(t, 1, plan.EstimatedSubjects)
	assert.Contains(t, plan.Message, "1 future subject.")
}

func TestSolveTargetAlreadyExceeding(t *testing.T) {
	// (3.5*119 - 3.8*110)/9 = -0.17: the banked points alone cover the target
	plan, err := SolveTarget(3.8, 110, 120, 3.5, intPtr(9))
	require.NoError(t, err)

	assert.True(t, plan.Achievable)
	require.NotNil(t, plan.RequiredGPA)
	assert.Equal(t, 0.0, *plan.RequiredGPA)
	require.NotNil(t, plan.MinGradeRequired)
	assert.Equal(t, "F", *plan.MinGradeRequired)
	assert.Equal(t, "You already exceed this target GPA! Any grade will work.", plan.Message)
}

func TestSolveTargetDegreeAlreadyCompleted(t *testing.T) {
	plan, err := SolveTarget(3.2, 120, 120, 3.5, nil)
	require.NoError(t, err)

	assert.True(t, plan.Achievable)
	assert.Nil(t, plan.RequiredGPA)
	assert.Nil(t, plan.MinGradeRequired)
	assert.Equal(t, 0, plan.EstimatedSubjects)
	assert.Equal(t, "Degree already completed", plan.Message)
}

func TestSolveTargetDefaultsFutureCreditsToRemaining(t *testing.T) {
	plan, err := SolveTarget(3.0, 60, 120, 3.2, nil)
	require.NoError(t, err)

	assert.Equal(t, 60, plan.FutureCredits)
	assert.Equal(t, 60, plan.RemainingCredits)
	assert.True(t, plan.Achievable)
}

func TestSolveTargetExactFourPointZeroIsAchievable(t *testing.T) {
	// (4.0*120 - 4.0*60)/60 is exactly 4.0; float drift must not flip this
	// into the not-achievable branch
	plan, err := SolveTarget(4.0, 60, 120, 4.0, intPtr(60))
	require.NoError(t, err)

	assert.True(t, plan.Achievable)
	require.NotNil(t, plan.MinGradeRequired)
	assert.Equal(t, "A", *plan.MinGradeRequired)
	require.NotNil(t, plan.RequiredGPA)
	assert.InDelta(t, 4.0, *plan.RequiredGPA, 1e-9)
}

func TestSolveTargetFourPointZeroFromZeroStanding(t *testing.T) {
	plan, err := SolveTarget(0, 0, 120, 4.0, nil)
	require.NoError(t, err)

	assert.True(t, plan.Achievable)
	require.NotNil(t, plan.MinGradeRequired)
	assert.Equal(t, "A", *plan.MinGradeRequired)
}

func TestSolveTargetRejectsOutOfRangeTarget(t *testing.T) {
	_, err := SolveTarget(3.0, 60, 120, 4.1, nil)
	require.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = SolveTarget(3.0, 60, 120, -0.1, nil)
	require.Error(t, err)
}

func TestSolveTargetZeroTargetIsValid(t *testing.T) {
	plan, err := SolveTarget(3.0, 60, 120, 0, intPtr(30))
	require.NoError(t, err)

	// any grade keeps the overall GPA at or above zero
	assert.True(t, plan.Achievable)
	require.NotNil(t, plan.MinGradeRequired)
	assert.Equal(t, "F", *plan.MinGradeRequired)
}

func TestSolveTargetRejectsFutureCreditsBeyondRemaining(t *testing.T) {
	_, err := SolveTarget(3.0, 60, 120, 3.2, intPtr(61))
	require.Error(t, err)
	assert.Equal(t, "Future credits (61) cannot exceed remaining credits (60)", err.Error())
}

func TestSolveTargetSuppliedZeroFutureCreditsShortCircuits(t *testing.T) {
	plan, err := SolveTarget(3.0, 60, 120, 3.2, intPtr(0))
	require.NoError(t, err)

	assert.True(t, plan.Achievable)
	assert.Nil(t, plan.RequiredGPA)
	assert.Equal(t, "Degree already completed", plan.Message)
}

package types

import "time"

// DefaultDegreeTotalCredits is used whenever a profile has no configured
// degree size.
const DefaultDegreeTotalCredits = 120

// DefaultDegreeName is the fallback degree label for new accounts.
const DefaultDegreeName = "Computer Science"

// CreditCategories splits a degree's credit target into four informational
// buckets. The buckets are not reconciled against recorded subjects.
type CreditCategories struct {
	CoreSubjects      int `json:"coreSubjects" firestore:"core_subjects"`
	MajorRequirements int `json:"majorRequirements" firestore:"major_requirements"`
	Electives         int `json:"electives" firestore:"electives"`
	GeneralEducation  int `json:"generalEducation" firestore:"general_education"`
}

// DefaultCreditCategories returns the standard split for a 120-credit degree.
func DefaultCreditCategories() CreditCategories {
	return CreditCategories{
		CoreSubjects:      24,
		MajorRequirements: 84,
		Electives:         24,
		GeneralEducation:  12,
	}
}

// User is an account profile stored in Firestore.
//
// Firestore Structure:
//   - users/{user_id}
//
// email is normalized to lowercase and uniqueness is enforced with a query
// before account creation. The password hash never leaves the server.
type User struct {
	ID                 string           `json:"id" firestore:"id"`
	Name               string           `json:"name" firestore:"name"`
	Email              string           `json:"email" firestore:"email"` // normalized lowercase
	PasswordHash       string           `json:"-" firestore:"password_hash"`
	DegreeName         string           `json:"degreeName" firestore:"degree_name"`
	DegreeTotalCredits int              `json:"degreeTotalCredits" firestore:"degree_total_credits"`
	CreditCategories   CreditCategories `json:"creditCategories" firestore:"credit_categories"`
	CreatedAt          time.Time        `json:"createdAt" firestore:"created_at"`
}

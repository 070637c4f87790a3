package types

import "time"

// Subject represents one completed course attempt stored in Firestore.
//
// Firestore Structure:
//   - users/{user_id}/subjects/{subject_id}
//
// Subjects are scoped under their owning user so every query is naturally
// restricted to the caller's own records:
//   - subject_code is normalized to uppercase during ingestion
//   - credits is always derived from the trailing digit of subject_code;
//     it is never accepted from the client directly
//   - year and semester are indexed for period-filtered queries
type Subject struct {
	ID          string `json:"id" firestore:"id"`
	UserID      string `json:"-" firestore:"user_id"`
	SubjectCode string `json:"subjectCode" firestore:"subject_code"` // e.g. "CS104" (normalized uppercase)
	SubjectName string `json:"subjectName" firestore:"subject_name"`

	// Credits is derived from the last digit of SubjectCode (1-9).
	Credits int `json:"credits" firestore:"credits"`

	// CAPercentage is continuous-assessment progress (0-100). Informational
	// only; it never enters GPA math.
	CAPercentage float64 `json:"caPercentage" firestore:"ca_percentage"`

	Grade    string `json:"grade" firestore:"grade"` // one of the 12 letter grades
	Year     int    `json:"year" firestore:"year"`
	Semester int    `json:"semester" firestore:"semester"` // 1 or 2

	// Attempts counts how many times the subject was taken. Informational;
	// each record contributes once to GPA regardless.
	Attempts int `json:"attempts" firestore:"attempts"`

	CreatedAt time.Time `json:"createdAt" firestore:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updated_at"`
}

// SubjectFilter narrows a subject listing to an academic period.
type SubjectFilter struct {
	Year     int // 0 means no filter
	Semester int // 0 means no filter
}

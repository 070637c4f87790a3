package gpa

// CreditsFromCode derives a subject's credit hours from the trailing
// character of its code: "CS104" carries 4 credits, "MATH301" carries 1.
// ok is false when the code is empty, its last character is not a base-10
// digit, or the digit is 0 (a zero-credit subject cannot carry GPA weight).
// The mapping is intentionally lossy (many codes share a last digit); it
// mirrors the institution's course numbering convention and must not be
// second-guessed here.
func CreditsFromCode(code string) (credits int, ok bool) {
	if code == "" {
		return 0, false
	}
	last := code[len(code)-1]
	if last < '1' || last > '9' {
		return 0, false
	}
	return int(last - '0'), true
}

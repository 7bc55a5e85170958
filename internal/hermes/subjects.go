package hermes

import (
	"strings"
	"unicode"
)

const (
	SubjectAssessmentRequest  = "credit.assessment.request"
	SubjectAssessmentRejected = "credit.assessment.request.rejected"
	SubjectAssessmentStats    = "credit.assessment.stats"

	StreamName   = "CREDIT_ASSESSMENTS"
	StreamMaxAge = "2160h" // 90 days
)

func SubjectAssessmentCompleted(assessmentID string) string {
	return "credit.assessment." + assessmentID + ".completed"
}

// SubjectApplicantAssessed fans completed assessments out per applicant.
func SubjectApplicantAssessed(applicantID string) string {
	return "credit.applicant." + applicantID + ".assessed"
}

// ValidToken reports whether s can stand as a single subject token: non-empty,
// with no whitespace and none of the separator or wildcard characters.
func ValidToken(s string) bool {
	return s != "" && !strings.ContainsAny(s, ".*>") && strings.IndexFunc(s, unicode.IsSpace) < 0
}

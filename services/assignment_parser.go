package services

import "strings"

// AssignmentType classifies how an exam identifier token should be
// interpreted.
type AssignmentType string

const (
	AssignmentTypeMainOnly        AssignmentType = "main_only"
	AssignmentTypeSpecificSubExam AssignmentType = "specific_subexam"
	AssignmentTypeAssignmentBased AssignmentType = "assignment_based"
)

// assignmentIDPrefix marks a token as a direct assignment reference that
// needs a database lookup to resolve to exam ids.
const assignmentIDPrefix = "assignment-"

// ParsedAssignment is the result of resolving a composite exam
// identifier token.
type ParsedAssignment struct {
	MainExamID     string
	SubExamID      string
	AssignmentID   string
	AssignmentType AssignmentType
}

// ParseExamAssignment resolves an identifier token. Supported formats:
//
//	"1"                  main exam 1, no specific sub-exam
//	"1-5"                main exam 1, sub-exam 5
//	"assignment-abc123"  direct assignment reference
//
// No catalog existence check happens here; downstream lookups tolerate
// misses.
func ParseExamAssignment(examID string) ParsedAssignment {
	if strings.HasPrefix(examID, assignmentIDPrefix) {
		return ParsedAssignment{
			AssignmentID:   examID,
			AssignmentType: AssignmentTypeAssignmentBased,
		}
	}

	if parts := strings.Split(examID, "-"); len(parts) == 2 && parts[0] != "" && parts[1] != "" {
		return ParsedAssignment{
			MainExamID:     parts[0],
			SubExamID:      parts[1],
			AssignmentType: AssignmentTypeSpecificSubExam,
		}
	}

	return ParsedAssignment{
		MainExamID:     examID,
		AssignmentType: AssignmentTypeMainOnly,
	}
}

// AutoFillStrategy describes which form sections should be
// pre-populated for an assignment.
type AutoFillStrategy struct {
	ShouldFillMainExam  bool
	ShouldFillSubExams  bool
	SpecificSubExamOnly bool
	SubExamID           string
}

// GetAutoFillStrategy decides the auto-fill behavior from the parsed
// assignment type. Unknown types fill nothing; that is a safe default,
// not an error.
func GetAutoFillStrategy(examID string) AutoFillStrategy {
	parsed := ParseExamAssignment(examID)

	switch parsed.AssignmentType {
	case AssignmentTypeMainOnly:
		return AutoFillStrategy{ShouldFillMainExam: true}

	case AssignmentTypeSpecificSubExam:
		return AutoFillStrategy{
			ShouldFillMainExam:  true,
			ShouldFillSubExams:  true,
			SpecificSubExamOnly: true,
			SubExamID:           parsed.SubExamID,
		}

	case AssignmentTypeAssignmentBased:
		// Resolving the referenced assignment happens in a separate
		// lookup step; once resolved, both main and sub-exam fill.
		return AutoFillStrategy{
			ShouldFillMainExam:  true,
			ShouldFillSubExams:  true,
			SpecificSubExamOnly: true,
		}

	default:
		return AutoFillStrategy{}
	}
}

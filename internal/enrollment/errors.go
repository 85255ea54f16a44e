package enrollment

import (
	"fmt"
	"strings"
)

// DuplicateStudentError reports the same roll number appearing with
// different student names across buckets.
type DuplicateStudentError struct {
	RollNumber string
	Bucket     string
	Name       string
	PriorName  string
}

func (e DuplicateStudentError) Error() string {
	return fmt.Sprintf("duplicate student record: roll %v appears as %q in bucket %q but was previously %q", e.RollNumber, e.Name, e.Bucket, e.PriorName)
}

// UnknownCourseError reports an enrollment row referencing a course that is
// not present in the configuration.
type UnknownCourseError struct {
	RollNumber string
	Bucket     string
	Course     string
}

func (e UnknownCourseError) Error() string {
	return fmt.Sprintf("unknown course reference: roll %v in bucket %q enrolls in %q which is not configured", e.RollNumber, e.Bucket, e.Course)
}

// ConflictReport collects every enrollment issue found during aggregation.
// Nothing is silently dropped: conflicting rows are reported and the merged
// roster is still returned for inspection.
type ConflictReport struct {
	Duplicates     []DuplicateStudentError
	UnknownCourses []UnknownCourseError
	Malformed      []string
}

func (r ConflictReport) Empty() bool {
	return len(r.Duplicates) == 0 && len(r.UnknownCourses) == 0 && len(r.Malformed) == 0
}

// Descriptions flattens the report into printable lines.
func (r ConflictReport) Descriptions() []string {
	descriptions := make([]string, 0, len(r.Duplicates)+len(r.UnknownCourses)+len(r.Malformed))
	for _, d := range r.Duplicates {
		descriptions = append(descriptions, d.Error())
	}
	for _, u := range r.UnknownCourses {
		descriptions = append(descriptions, u.Error())
	}
	descriptions = append(descriptions, r.Malformed...)
	return descriptions
}

// ConflictError wraps a non-empty report as the aggregation error.
type ConflictError struct {
	Report ConflictReport
}

func (e *ConflictError) Error() string {
	return "enrollment conflicts:\n\t" + strings.Join(e.Report.Descriptions(), "\n\t")
}

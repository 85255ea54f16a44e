// Package enrollment merges raw per-bucket student rows into a normalized
// roster: deduplicated students, divisions of identical enrollment, and
// capacity-bounded lab batches.
package enrollment

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/classforge/timetable/pkg/model"
)

// Roster is the aggregated view of the student body for one generation run.
type Roster struct {
	Students  []model.Student
	Divisions []*model.Division
	// Batches holds the lab sub-splits per division id. Divisions without a
	// lab-bearing course carry no batches.
	Batches map[string][]*model.Batch
	// CourseDivisions lists, per course name, the divisions enrolled in it,
	// in division order. Course professors are parallel to this list.
	CourseDivisions map[string][]*model.Division
}

// ProfessorFor resolves the professor teaching the course to the division.
func (r Roster) ProfessorFor(course *model.Course, divisionID string) (model.Professor, bool) {
	for i, division := range r.CourseDivisions[course.Name] {
		if division.ID == divisionID {
			if i >= len(course.Professors) {
				return model.Professor{}, false
			}
			return model.Professor{Name: course.Professors[i]}, true
		}
	}
	return model.Professor{}, false
}

// DivisionOf returns the division and lab batch containing the student.
func (r Roster) DivisionOf(rollNumber string) (*model.Division, *model.Batch) {
	for _, division := range r.Divisions {
		if !slices.ContainsFunc(division.Students, func(s model.Student) bool { return s.RollNumber == rollNumber }) {
			continue
		}
		for _, batch := range r.Batches[division.ID] {
			if slices.ContainsFunc(batch.Students, func(s model.Student) bool { return s.RollNumber == rollNumber }) {
				return division, batch
			}
		}
		return division, nil
	}
	return nil, nil
}

type Aggregator interface {
	// Aggregate merges the uploaded buckets against the configured courses.
	// A non-empty conflict report is returned as a *ConflictError alongside
	// the partially merged roster.
	Aggregate(buckets []model.BucketInput, courses []*model.Course) (Roster, error)
}

func NewAggregator(maxLabStrength int) Aggregator {
	if maxLabStrength <= 0 {
		maxLabStrength = model.MaxLabStrength
	}
	return &aggregator{maxLabStrength: maxLabStrength}
}

type aggregator struct {
	maxLabStrength int
}

func (a *aggregator) Aggregate(buckets []model.BucketInput, courses []*model.Course) (Roster, error) {
	var report ConflictReport

	known := make(map[string]*model.Course, len(courses))
	for _, course := range courses {
		known[course.Name] = course
	}

	//** Merge rows across buckets keyed by roll number
	merged := make(map[string]*model.Student)
	rolls := make([]string, 0)
	for _, bucket := range buckets {
		for _, row := range bucket.Rows {
			roll := strings.TrimSpace(row.RollNumber)
			name := strings.TrimSpace(row.StudentName)
			if roll == "" || name == "" {
				report.Malformed = append(report.Malformed, fmt.Sprintf("bucket %q: row with missing roll number or name", bucket.BucketName))
				continue
			}

			student, ok := merged[roll]
			if !ok {
				student = &model.Student{Name: name, RollNumber: roll}
				merged[roll] = student
				rolls = append(rolls, roll)
			} else if student.Name != name {
				report.Duplicates = append(report.Duplicates, DuplicateStudentError{
					RollNumber: roll,
					Bucket:     bucket.BucketName,
					Name:       name,
					PriorName:  student.Name,
				})
				continue
			}

			for _, courseID := range row.CourseIDs {
				courseID = strings.TrimSpace(courseID)
				if courseID == "" {
					continue
				}
				if _, ok := known[courseID]; !ok {
					report.UnknownCourses = append(report.UnknownCourses, UnknownCourseError{
						RollNumber: roll,
						Bucket:     bucket.BucketName,
						Course:     courseID,
					})
					continue
				}
				if !slices.Contains(student.Courses, courseID) {
					student.Courses = append(student.Courses, courseID)
				}
			}
		}
	}

	//** Normalize students, sorted by roll number
	sort.Strings(rolls)
	students := make([]model.Student, 0, len(rolls))
	for _, roll := range rolls {
		student := merged[roll]
		sort.Strings(student.Courses)
		students = append(students, *student)
	}

	//** Derive divisions: maximal groups of identical enrolled course sets
	divisions := deriveDivisions(students)

	//** Split lab batches, sequentially by roll number
	batches := make(map[string][]*model.Batch)
	for _, division := range divisions {
		if !hasLabCourse(division, known) {
			continue
		}
		batches[division.ID] = a.splitBatches(division)
	}

	//** Index divisions per course and verify the professor parity invariant
	courseDivisions := make(map[string][]*model.Division)
	for _, course := range courses {
		for _, division := range divisions {
			if slices.Contains(division.Courses, course.Name) {
				courseDivisions[course.Name] = append(courseDivisions[course.Name], division)
			}
		}
		if enrolled := len(courseDivisions[course.Name]); enrolled > 0 && enrolled != len(course.Professors) {
			return Roster{}, model.Configurationf("course %q lists %d professors but %d divisions enroll in it", course.Name, len(course.Professors), enrolled)
		}
	}

	roster := Roster{
		Students:        students,
		Divisions:       divisions,
		Batches:         batches,
		CourseDivisions: courseDivisions,
	}

	if !report.Empty() {
		return roster, &ConflictError{Report: report}
	}
	return roster, nil
}

func deriveDivisions(students []model.Student) []*model.Division {
	grouped := make(map[string][]model.Student)
	for _, student := range students {
		if len(student.Courses) == 0 {
			continue
		}
		grouped[strings.Join(student.Courses, "\x1f")] = append(grouped[strings.Join(student.Courses, "\x1f")], student)
	}

	// Deterministic division order: lexicographic on the course-set key.
	keys := lo.Keys(grouped)
	sort.Strings(keys)

	divisions := make([]*model.Division, 0, len(keys))
	for i, key := range keys {
		members := grouped[key]
		divisions = append(divisions, &model.Division{
			ID:       divisionName(i),
			Courses:  strings.Split(key, "\x1f"),
			Students: members,
		})
	}
	return divisions
}

func (a *aggregator) splitBatches(division *model.Division) []*model.Batch {
	batches := make([]*model.Batch, 0, (division.Size()+a.maxLabStrength-1)/a.maxLabStrength)
	for start := 0; start < division.Size(); start += a.maxLabStrength {
		end := min(start+a.maxLabStrength, division.Size())
		index := len(batches)
		batches = append(batches, &model.Batch{
			ID:       fmt.Sprintf("%s%d", division.ID, index+1),
			Division: division,
			Index:    index,
			Students: division.Students[start:end],
		})
	}
	return batches
}

func hasLabCourse(division *model.Division, known map[string]*model.Course) bool {
	return lo.SomeBy(division.Courses, func(name string) bool {
		course, ok := known[name]
		return ok && course.LabsPerWeek > 0
	})
}

// divisionName yields A..Z, then AA, AB, ...
func divisionName(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}

package model

import "fmt"

// Cohort strength ceilings. A division larger than MaxLectureStrength cannot
// be seated for a lecture; lab sessions are split into batches of at most
// MaxLabStrength students.
const (
	MaxLectureStrength = 100
	MaxLabStrength     = 25
)

type RoomKind int

const (
	LectureHall RoomKind = iota
	LabRoom
)

func (k RoomKind) String() string {
	if k == LabRoom {
		return "lab"
	}
	return "lecture"
}

// StrengthCap returns the absolute cohort ceiling for the room kind,
// independent of the room's own capacity.
func (k RoomKind) StrengthCap() int {
	if k == LabRoom {
		return MaxLabStrength
	}
	return MaxLectureStrength
}

// Window is a day-agnostic availability interval; a room available
// 08:30-12:30 is available during that window on every operating day.
type Window struct {
	Start int
	End   int
}

func (w Window) String() string {
	return FormatRange(w.Start, w.End)
}

type Classroom struct {
	Name     string
	Kind     RoomKind
	Capacity int
	Windows  []Window
}

type Professor struct {
	Name string
}

type Course struct {
	Name                 string
	LecturesPerWeek      int
	LabsPerWeek          int
	SessionDurationHours int
	// Professors holds one professor per enrolled division, parallel to the
	// division order induced by the enrollment aggregator.
	Professors []string
}

type Student struct {
	Name       string
	RollNumber string
	Courses    []string
}

// Division is a maximal group of students sharing an identical enrolled
// course set. Students are kept sorted by roll number.
type Division struct {
	ID       string
	Courses  []string
	Students []Student
}

func (d *Division) Size() int {
	return len(d.Students)
}

// Batch is a capacity-bounded sub-split of a division, used only for labs.
type Batch struct {
	ID       string
	Division *Division
	Index    int
	Students []Student
}

type SessionKind int

const (
	Lecture SessionKind = iota
	Lab
)

func (k SessionKind) String() string {
	if k == Lab {
		return "lab"
	}
	return "lecture"
}

// Session is one required occurrence of a course component for one cohort.
// Room and Slot stay nil until the scheduler commits an assignment.
type Session struct {
	Course     *Course
	Kind       SessionKind
	Division   *Division
	Batch      *Batch
	Professor  Professor
	Occurrence int

	Room *Classroom
	Slot *Slot
}

// SpanHours is the number of contiguous grid cells the session occupies.
// Lectures always span one; labs span the course's session duration.
func (s *Session) SpanHours() int {
	if s.Kind == Lecture {
		return 1
	}
	if s.Course.SessionDurationHours > 1 {
		return s.Course.SessionDurationHours
	}
	return 1
}

// CohortID identifies the student group attending: the division for
// lectures, the batch for labs.
func (s *Session) CohortID() string {
	if s.Batch != nil {
		return s.Batch.ID
	}
	return s.Division.ID
}

func (s *Session) CohortSize() int {
	if s.Batch != nil {
		return len(s.Batch.Students)
	}
	return s.Division.Size()
}

// SharesStudents reports whether two sessions have intersecting cohorts.
// Divisions partition the student body, so cohorts intersect only within a
// division: a whole-division lecture intersects everything in its division,
// while two distinct batches are disjoint by construction.
func (s *Session) SharesStudents(o *Session) bool {
	if s.Division.ID != o.Division.ID {
		return false
	}
	if s.Batch == nil || o.Batch == nil {
		return true
	}
	return s.Batch.ID == o.Batch.ID
}

// DisplayName renders the session for reports, e.g.
// "Data Structures lab #1 (batch A2)".
func (s *Session) DisplayName() string {
	cohort := "division " + s.Division.ID
	if s.Batch != nil {
		cohort = "batch " + s.Batch.ID
	}
	return fmt.Sprintf("%s %s #%d (%s)", s.Course.Name, s.Kind, s.Occurrence+1, cohort)
}

// Placement binds a session to its committed room and slot.
type Placement struct {
	Session *Session
	Room    *Classroom
	Slot    Slot
}

// Timetable is the immutable result of a successful generation run.
// Placements are kept in canonical session order.
type Timetable struct {
	Placements []Placement
}

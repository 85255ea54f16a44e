// Package config turns raw upload/configure input into validated domain
// entities. Everything the solver consumes passes through here first.
package config

import (
	"strings"

	"github.com/samber/lo"

	"github.com/classforge/timetable/internal/calendar"
	"github.com/classforge/timetable/pkg/model"
)

// BuildClassrooms validates and converts raw room rows. Rooms with no
// explicit availability are open for the whole operating day.
func BuildClassrooms(inputs []model.RoomInput) ([]*model.Classroom, error) {
	if len(inputs) == 0 {
		return nil, model.Configurationf("at least one classroom is required")
	}

	rooms := make([]*model.Classroom, 0, len(inputs))
	seen := make(map[string]bool)
	for _, input := range inputs {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, model.Configurationf("classroom name is required")
		}
		if seen[name] {
			return nil, model.Configurationf("duplicate classroom %q", name)
		}
		seen[name] = true

		kind, err := parseRoomKind(input.Kind, name)
		if err != nil {
			return nil, err
		}

		capacity := input.Capacity
		if capacity == 0 {
			capacity = kind.StrengthCap()
		}
		if capacity < 0 {
			return nil, model.Configurationf("classroom %q has negative capacity", name)
		}

		windows, err := parseWindows(name, input.AvailableSlots)
		if err != nil {
			return nil, err
		}

		rooms = append(rooms, &model.Classroom{
			Name:     name,
			Kind:     kind,
			Capacity: capacity,
			Windows:  windows,
		})
	}
	return rooms, nil
}

// BuildCourses validates and converts raw course rows.
func BuildCourses(inputs []model.CourseInput) ([]*model.Course, error) {
	if len(inputs) == 0 {
		return nil, model.Configurationf("at least one course is required")
	}

	courses := make([]*model.Course, 0, len(inputs))
	seen := make(map[string]bool)
	for _, input := range inputs {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, model.Configurationf("course name is required")
		}
		if seen[name] {
			return nil, model.Configurationf("duplicate course %q", name)
		}
		seen[name] = true

		if input.LecturesPerWeek < 0 || input.LabsPerWeek < 0 {
			return nil, model.Configurationf("course %q has negative session counts", name)
		}
		if input.LecturesPerWeek == 0 && input.LabsPerWeek == 0 {
			return nil, model.Configurationf("course %q requires no sessions", name)
		}

		duration := input.SessionDurationHours
		if duration == 0 {
			duration = 1
		}
		if duration < 1 || duration > calendar.AfternoonCells {
			return nil, model.Configurationf("course %q session duration %dh cannot fit a contiguous block", name, duration)
		}

		professors := lo.Map(input.Professors, func(p string, _ int) string { return strings.TrimSpace(p) })
		if lo.SomeBy(professors, func(p string) bool { return p == "" }) {
			return nil, model.Configurationf("course %q has an unnamed professor", name)
		}
		if len(professors) == 0 {
			return nil, model.Configurationf("course %q has no professors", name)
		}

		courses = append(courses, &model.Course{
			Name:                 name,
			LecturesPerWeek:      input.LecturesPerWeek,
			LabsPerWeek:          input.LabsPerWeek,
			SessionDurationHours: duration,
			Professors:           professors,
		})
	}
	return courses, nil
}

func parseRoomKind(kind, name string) (model.RoomKind, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "lab", "laboratory":
		return model.LabRoom, nil
	case "lecture", "lecture-hall", "hall":
		return model.LectureHall, nil
	case "":
		// The upload sheet often omits the kind and encodes it in the name.
		if strings.Contains(strings.ToLower(name), "lab") {
			return model.LabRoom, nil
		}
		return model.LectureHall, nil
	default:
		return 0, model.Configurationf("classroom %q has unknown kind %q", name, kind)
	}
}

func parseWindows(room string, slots []string) ([]model.Window, error) {
	if len(slots) == 0 {
		return []model.Window{{Start: model.DayStart, End: model.DayEnd}}, nil
	}
	windows := make([]model.Window, 0, len(slots))
	for _, s := range slots {
		start, end, err := calendar.ParseWindow(s)
		if err != nil {
			return nil, model.Configurationf("classroom %q: %v", room, err)
		}
		windows = append(windows, model.Window{Start: start, End: end})
	}
	return windows, nil
}

package scheduler

import (
	"github.com/classforge/timetable/pkg/model"
)

// ExpandSessions materializes every required session in canonical order:
// course (configuration order), then division, then lectures before labs,
// then occurrence index. Lab occurrences expand once per batch. The order is
// the determinism anchor for the whole run.
func ExpandSessions(problem Problem) ([]*model.Session, error) {
	sessions := make([]*model.Session, 0)

	for _, course := range problem.Courses {
		for _, division := range problem.Roster.CourseDivisions[course.Name] {
			professor, ok := problem.Roster.ProfessorFor(course, division.ID)
			if !ok {
				return nil, model.Configurationf("course %q has no professor for division %v", course.Name, division.ID)
			}

			for occurrence := range course.LecturesPerWeek {
				sessions = append(sessions, &model.Session{
					Course:     course,
					Kind:       model.Lecture,
					Division:   division,
					Professor:  professor,
					Occurrence: occurrence,
				})
			}

			if course.LabsPerWeek == 0 {
				continue
			}
			batches := problem.Roster.Batches[division.ID]
			if len(batches) == 0 {
				return nil, model.Configurationf("course %q requires labs but division %v has no batches", course.Name, division.ID)
			}
			for _, batch := range batches {
				for occurrence := range course.LabsPerWeek {
					sessions = append(sessions, &model.Session{
						Course:     course,
						Kind:       model.Lab,
						Division:   division,
						Batch:      batch,
						Professor:  professor,
						Occurrence: occurrence,
					})
				}
			}
		}
	}

	return sessions, nil
}

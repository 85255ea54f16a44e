package scheduler

import (
	"strings"

	"github.com/classforge/timetable/internal/constraint"
	"github.com/classforge/timetable/pkg/model"

	"github.com/classforge/timetable/internal/enrollment"
)

// InfeasibleError reports that the search proved (or exhausted its budget
// while trying to find) a complete assignment. Conflicts carries the
// hard-constraint descriptions that could not be satisfied together.
type InfeasibleError struct {
	Conflicts []string
}

func (e *InfeasibleError) Error() string {
	if len(e.Conflicts) == 0 {
		return "timetable is infeasible"
	}
	return "timetable is infeasible:\n\t" + strings.Join(e.Conflicts, "\n\t")
}

// TimeoutError reports budget exhaustion before the search space was
// explored. The caller may retry with a larger budget or relaxed weights.
type TimeoutError struct {
	Iterations int
}

func (e *TimeoutError) Error() string {
	return "scheduling budget exhausted before a verdict was reached"
}

// Config bounds and seeds one generation run. The zero value picks sane
// defaults; a fixed Seed makes the run fully deterministic.
type Config struct {
	Seed          int64
	MaxIterations int
	AnnealSteps   int
	AnnealChains  int
	TempHigh      float64
	TempLow       float64
	Weights       constraint.CostModel
}

const (
	defaultMaxIterations = 200_000
	defaultAnnealSteps   = 800
	defaultAnnealChains  = 4
	defaultTempHigh      = 4.0
	defaultTempLow       = 0.05
)

func (c Config) withDefaults() Config {
	if c.MaxIterations <= 0 {
		c.MaxIterations = defaultMaxIterations
	}
	if c.AnnealSteps <= 0 {
		c.AnnealSteps = defaultAnnealSteps
	}
	if c.AnnealChains <= 0 {
		c.AnnealChains = defaultAnnealChains
	}
	if c.TempHigh <= 0 {
		c.TempHigh = defaultTempHigh
	}
	if c.TempLow <= 0 {
		c.TempLow = defaultTempLow
	}
	if c.Weights == (constraint.CostModel{}) {
		c.Weights = constraint.DefaultCostModel()
	}
	return c
}

// Problem is the fully validated input of one generation run. The scheduler
// never mutates it.
type Problem struct {
	Rooms   []*model.Classroom
	Courses []*model.Course
	Roster  enrollment.Roster
}

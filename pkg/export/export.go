// Package export declares the adapter consumed by file writers. The engine
// hands over plain structured data; layout and file encoding belong to the
// implementations (CSV ships with the engine, PDF and spreadsheet writers
// live outside the core).
package export

import (
	"io"

	"github.com/classforge/timetable/pkg/model"
)

type Writer interface {
	WriteTimetable(w io.Writer, timetable *model.Timetable) error
	WriteView(w io.Writer, view model.View) error
}

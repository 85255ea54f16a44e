package model

// ViewRow is one printable line of a projected timetable: a session or the
// lunch break.
type ViewRow struct {
	TimeRange  string `json:"timeRange"`
	CourseName string `json:"courseName"`
	RoomName   string `json:"roomName"`
	Kind       string `json:"type"`
}

// View is a per-entity weekly timetable, keyed by day name with rows ordered
// by start time.
type View struct {
	Owner string               `json:"owner"`
	Days  map[string][]ViewRow `json:"days"`
}

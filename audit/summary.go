package audit

// Summarize collapses a timeline into its change points: the first
// observation, followed by every observation whose outcome differs
// from the previously retained one. The output is minimal (no two
// adjacent points share an outcome) and summarizing it again returns
// it unchanged.
func Summarize(tl Timeline) []ChangePoint {
	points := make([]ChangePoint, 0, 1)
	var prev Outcome
	havePrev := false
	for _, obs := range tl.Observations {
		if havePrev && obs.Outcome.Equal(prev) {
			continue
		}
		points = append(points, obs)
		prev = obs.Outcome
		havePrev = true
	}
	return points
}

// LabelChanges pairs a slot label with its ordered change points.
type LabelChanges struct {
	Label  string
	Points []ChangePoint
}

// ChangeReport is the verdict of one scan: per-label change points in
// slot insertion order, the total number of observed transitions and
// whether the monitored slots held constant across the sampled range.
type ChangeReport struct {
	Entries      []LabelChanges
	TotalChanges int
	Sound        bool
}

// BuildReport summarizes every timeline of a scan. The first retained
// observation of a timeline is not a transition, so a constant slot
// contributes zero to TotalChanges.
func BuildReport(result *ScanResult) *ChangeReport {
	report := &ChangeReport{Entries: make([]LabelChanges, 0, len(result.Timelines))}
	for _, tl := range result.Timelines {
		points := Summarize(tl)
		report.Entries = append(report.Entries, LabelChanges{Label: tl.Label, Points: points})
		if len(points) > 1 {
			report.TotalChanges += len(points) - 1
		}
	}
	report.Sound = report.TotalChanges == 0
	return report
}

package fixtures

import "github.com/mohammad-safakhou/capitol/models"

// BuildReport counts bills per session by originating chamber. Every
// declared session gets an entry, zero when it has no bills.
func BuildReport(data models.RegionData) models.Report {
	upper := map[string]int{}
	lower := map[string]int{}
	for _, b := range data.Bills {
		switch b.Chamber {
		case models.ChamberUpper:
			upper[b.Session]++
		case models.ChamberLower:
			lower[b.Session]++
		}
	}

	var report models.Report
	for _, s := range data.Sessions {
		report.SetSessionCounts(s.ID, upper[s.ID], lower[s.ID])
	}
	return report
}

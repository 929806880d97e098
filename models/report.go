package models

// Report is the precomputed statistics document for a region. It is
// refreshed out of band by the loader and only read by the pages.
type Report struct {
	Bills *ReportBills `json:"bills,omitempty"`
}

type ReportBills struct {
	Sessions map[string]SessionCounts `json:"sessions,omitempty"`
}

// SessionCounts are pointers so a missing key can be told apart from zero.
type SessionCounts struct {
	UpperCount *int `json:"upper_count,omitempty"`
	LowerCount *int `json:"lower_count,omitempty"`
}

// SessionBillCount returns upper_count+lower_count for the session. Any
// missing level of the document, including a missing count, yields 0.
func (r *Report) SessionBillCount(sessionID string) int {
	if r == nil || r.Bills == nil || r.Bills.Sessions == nil {
		return 0
	}
	counts, ok := r.Bills.Sessions[sessionID]
	if !ok || counts.UpperCount == nil || counts.LowerCount == nil {
		return 0
	}
	return *counts.UpperCount + *counts.LowerCount
}

// SetSessionCounts records the per-chamber counts for a session.
func (r *Report) SetSessionCounts(sessionID string, upper, lower int) {
	if r.Bills == nil {
		r.Bills = &ReportBills{}
	}
	if r.Bills.Sessions == nil {
		r.Bills.Sessions = make(map[string]SessionCounts)
	}
	r.Bills.Sessions[sessionID] = SessionCounts{UpperCount: &upper, LowerCount: &lower}
}

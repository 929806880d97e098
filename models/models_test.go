package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixBillID(t *testing.T) {
	cases := map[string]string{
		"hb01":      "HB 1",
		"H.B. 1":    "HB 1",
		"HB 1":      "HB 1",
		"  sb 1234": "SB 1234",
		"HB 100":    "HB 100",
		"hb 007":    "HB 7",
		"HB 0":      "HB 0",
		"education": "EDUCATION",
		"hb1 amdt":  "HB 1 AMDT",
	}
	for in, want := range cases {
		assert.Equal(t, want, FixBillID(in), "input %q", in)
	}
}

func TestSessionBillCount(t *testing.T) {
	var report Report
	require.NoError(t, json.Unmarshal([]byte(`{"bills":{"sessions":{"2020":{"upper_count":5,"lower_count":3}}}}`), &report))

	assert.Equal(t, 8, report.SessionBillCount("2020"))
	assert.Equal(t, 0, report.SessionBillCount("2019"))
}

func TestSessionBillCountMissingLevels(t *testing.T) {
	var nilReport *Report
	assert.Equal(t, 0, nilReport.SessionBillCount("2020"))
	assert.Equal(t, 0, (&Report{}).SessionBillCount("2020"))
	assert.Equal(t, 0, (&Report{Bills: &ReportBills{}}).SessionBillCount("2020"))

	var partial Report
	require.NoError(t, json.Unmarshal([]byte(`{"bills":{"sessions":{"2020":{"upper_count":5}}}}`), &partial))
	assert.Equal(t, 0, partial.SessionBillCount("2020"))
}

func TestSetSessionCounts(t *testing.T) {
	var report Report
	report.SetSessionCounts("2021", 0, 4)
	assert.Equal(t, 4, report.SessionBillCount("2021"))

	b, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bills":{"sessions":{"2021":{"upper_count":0,"lower_count":4}}}}`, string(b))
}

func TestChamberAccessors(t *testing.T) {
	meta := Metadata{UpperChamberName: "Senate", UpperChamberTitle: "Senator", LowerChamberName: "Assembly", LowerChamberTitle: "Assemblymember"}
	assert.Equal(t, "Senate", meta.ChamberName(ChamberUpper))
	assert.Equal(t, "Assemblymember", meta.ChamberTitle(ChamberLower))
	assert.Empty(t, meta.ChamberName(ChamberJoint))
}

package fixtures

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mohammad-safakhou/capitol/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSampleFixture(t *testing.T) {
	data, err := Load("../../fixtures/ca.yaml")
	require.NoError(t, err)

	assert.Equal(t, "ca", data.Metadata.Abbr)
	assert.Equal(t, "Assembly Member", data.Metadata.LowerChamberTitle)
	require.Len(t, data.Sessions, 2)
	require.NotNil(t, data.Sessions[0].StartDate)
	assert.True(t, data.Sessions[0].StartDate.Equal(time.Date(2022, 12, 5, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, data.Sessions[1].EndDate)

	require.Len(t, data.Legislators, 4)
	for _, l := range data.Legislators {
		assert.Equal(t, "ca", l.State, l.ID)
	}
	assert.Equal(t, models.ChamberJoint, data.Committees[2].Chamber)

	require.Len(t, data.Bills, 3)
	signed := data.Bills[0].ActionDates.Signed
	require.NotNil(t, signed)
	assert.Equal(t, 2023, signed.Year())
}

func TestParseRejectsBadFixtures(t *testing.T) {
	cases := map[string]string{
		"unknown key": `
metadata: {abbr: ca, name: California}
weather: sunny
`,
		"long abbr": `
metadata: {abbr: cal}
`,
		"wildcard abbr": `
metadata: {abbr: all}
`,
		"foreign legislator": `
metadata: {abbr: ca}
legislators:
  - {id: NYL1, state: ny, chamber: upper}
`,
		"bad committee chamber": `
metadata: {abbr: ca}
committees:
  - {id: C1, chamber: senate}
`,
		"bill in undeclared session": `
metadata: {abbr: ca}
sessions:
  - {id: "2024"}
bills:
  - {id: B1, session: "2023", chamber: upper, bill_id: SB 1}
`,
		"joint bill": `
metadata: {abbr: ca}
sessions:
  - {id: "2024"}
bills:
  - {id: B1, session: "2024", chamber: joint, bill_id: SB 1}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestParseNormalizesAbbr(t *testing.T) {
	data, err := Parse(strings.NewReader(`
metadata: {abbr: " TX ", name: Texas}
committees:
  - {id: TXC1, state: TX, chamber: joint, name: Budget}
`))
	require.NoError(t, err)
	assert.Equal(t, "tx", data.Metadata.Abbr)
	assert.Equal(t, "tx", data.Committees[0].State)
}

func sessionTotals(r models.Report, ids ...string) map[string]int {
	out := map[string]int{}
	for _, id := range ids {
		out[id] = r.SessionBillCount(id)
	}
	return out
}

func TestBuildReport(t *testing.T) {
	data, err := Load("../../fixtures/ca.yaml")
	require.NoError(t, err)

	report := BuildReport(data)
	want := map[string]int{"20232024": 2, "20252026": 1, "19992000": 0}
	if diff := cmp.Diff(want, sessionTotals(report, "20232024", "20252026", "19992000")); diff != "" {
		t.Fatalf("session totals mismatch (-want +got):\n%s", diff)
	}

	counts := report.Bills.Sessions["20232024"]
	require.NotNil(t, counts.UpperCount)
	require.NotNil(t, counts.LowerCount)
	assert.Equal(t, 1, *counts.UpperCount)
	assert.Equal(t, 1, *counts.LowerCount)
}

func TestBuildReportEmptySession(t *testing.T) {
	report := BuildReport(models.RegionData{Sessions: []models.Session{{ID: "2024"}}})
	counts, ok := report.Bills.Sessions["2024"]
	require.True(t, ok)
	assert.Equal(t, 0, *counts.UpperCount)
	assert.Equal(t, 0, *counts.LowerCount)
}

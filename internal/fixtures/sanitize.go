package fixtures

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mohammad-safakhou/capitol/models"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

// plainText strips every tag from s, dropping script and style bodies,
// and returns unescaped text. Escaping is left to the templates.
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.ContainsAny(s, "<&") {
		return s
	}
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// sanitize cleans the display text of a fixture. Scraped sources
// occasionally carry markup in titles and actions.
func sanitize(data *models.RegionData) {
	m := &data.Metadata
	for _, f := range []*string{&m.Name, &m.LegislatureName, &m.UpperChamberName, &m.UpperChamberTitle, &m.LowerChamberName, &m.LowerChamberTitle} {
		*f = plainText(*f)
	}
	for i := range data.Sessions {
		data.Sessions[i].DisplayName = plainText(data.Sessions[i].DisplayName)
	}
	for i := range data.Legislators {
		data.Legislators[i].FullName = plainText(data.Legislators[i].FullName)
		data.Legislators[i].Party = plainText(data.Legislators[i].Party)
	}
	for i := range data.Committees {
		data.Committees[i].Name = plainText(data.Committees[i].Name)
	}
	for i := range data.Bills {
		data.Bills[i].Title = plainText(data.Bills[i].Title)
		data.Bills[i].LastAction = plainText(data.Bills[i].LastAction)
	}
}

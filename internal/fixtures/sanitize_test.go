package fixtures

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainText(t *testing.T) {
	cases := []struct{ in, want string }{
		{`<p>Water <strong>storage</strong><script>alert('x')</script></p>`, "Water storage"},
		{"Tom & Jerry Act", "Tom & Jerry Act"},
		{"AT&amp;T franchise", "AT&T franchise"},
		{"  Plain title  ", "Plain title"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, plainText(tc.in), tc.in)
	}
}

func TestParseStripsMarkup(t *testing.T) {
	data, err := Parse(strings.NewReader(`
metadata: {abbr: ca, name: "<b>California</b>"}
sessions:
  - {id: "2024", display_name: "2024 <i>Regular</i>"}
bills:
  - id: B1
    session: "2024"
    chamber: upper
    bill_id: SB 1
    title: "<a href='javascript:alert(1)'>Roads</a> &amp; bridges"
    last_action: "Referred to <em>Transportation</em>"
`))
	require.NoError(t, err)
	assert.Equal(t, "California", data.Metadata.Name)
	assert.Equal(t, "2024 Regular", data.Sessions[0].DisplayName)
	assert.Equal(t, "Roads & bridges", data.Bills[0].Title)
	assert.Equal(t, "Referred to Transportation", data.Bills[0].LastAction)
}

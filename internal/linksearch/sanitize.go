package linksearch

import (
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/microcosm-cc/bluemonday"
)

var labelPolicy = bluemonday.StrictPolicy()

// SanitizeLabel strips markup from a label returned by the search endpoint
// and returns plain text.
func SanitizeLabel(label string) string {
	return strings.TrimSpace(html.UnescapeString(labelPolicy.Sanitize(label)))
}

var toggleSchemes = map[string]bool{
	"http":     true,
	"https":    true,
	"mailto":   true,
	"sms":      true,
	"tel":      true,
	"internal": true,
}

// SanitizeURL returns raw unless it parses to a scheme a link may not carry,
// in which case it returns "about:blank". Unparsable input is returned as is
// and left to the link dialog to reject.
func SanitizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	if u.Scheme == "" {
		return raw
	}
	if !toggleSchemes[strings.ToLower(u.Scheme)] {
		return "about:blank"
	}
	return raw
}

// Segment is a piece of a highlighted label.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits label around the case-insensitive occurrences of q.
func Highlight(label, q string) []Segment {
	q = strings.TrimSpace(q)
	if q == "" || label == "" {
		return []Segment{{Text: label}}
	}
	re, err := regexp2.Compile(regexp2.Escape(q), regexp2.IgnoreCase)
	if err != nil {
		return []Segment{{Text: label}}
	}
	re.MatchTimeout = 100 * time.Millisecond

	runes := []rune(label)
	var segments []Segment
	pos := 0
	m, err := re.FindStringMatch(label)
	for err == nil && m != nil {
		if m.Index > pos {
			segments = append(segments, Segment{Text: string(runes[pos:m.Index])})
		}
		segments = append(segments, Segment{Text: m.String(), Match: true})
		pos = m.Index + m.Length
		m, err = re.FindNextMatch(m)
	}
	if pos < len(runes) {
		segments = append(segments, Segment{Text: string(runes[pos:])})
	}
	return segments
}

package source

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"motohub/internal/normalize"
)

var (
	decimal = regexp.MustCompile(`\d+(?:\.\d+)?`)
	integer = regexp.MustCompile(`\d+`)
	year    = regexp.MustCompile(`\d{4}`)
)

// Text returns the trimmed text of the selection with runs of whitespace
// collapsed.
func Text(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// CleanName removes parenthetical suffixes such as stock counts.
func CleanName(s string) string {
	return normalize.StripAnnotation(strings.Join(strings.Fields(s), " "))
}

// Resolve makes href absolute against the document URL, falling back to
// base when the document has none.
func Resolve(doc *goquery.Document, base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}

	var baseURL *url.URL
	if doc != nil && doc.Url != nil {
		baseURL = doc.Url
	} else if baseURL, err = url.Parse(base); err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

// ManYen parses a price quoted in units of 10,000 yen ("59.8万円") into yen.
func ManYen(text string) *int64 {
	m := decimal.FindString(strings.ReplaceAll(normalize.Width(text), ",", ""))
	if m == "" {
		return nil
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	yen := int64(f*10000 + 0.5)
	return &yen
}

// Int returns the first integer in text, ignoring thousands separators.
func Int(text string) *int {
	m := integer.FindString(strings.ReplaceAll(normalize.Width(text), ",", ""))
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

// Year returns the first four-digit number in text.
func Year(text string) *int {
	m := year.FindString(normalize.Width(text))
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

// Match returns the first submatch of re in s, or "".
func Match(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}

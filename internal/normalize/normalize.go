// Package normalize turns raw marketplace text into comparable keys.
//
// Every comparison of shop names, model names or addresses goes through this
// package. Keys are not meant for display.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// trailing "(7台)" / "（新車）" style qualifiers
	trailingAnnotation = regexp.MustCompile(`\s*\([^()]*\)\s*$`)
	anyAnnotation      = regexp.MustCompile(`[(（][^()（）]*[)）]`)
	romanizedBlock     = regexp.MustCompile(`(\d)-?(chome|banchi)`)
	repeatedHyphen     = regexp.MustCompile(`-{2,}`)
	digits             = regexp.MustCompile(`\d+`)

	dashReplacer = strings.NewReplacer(
		"‐", "-", // hyphen
		"‑", "-", // non-breaking hyphen
		"‒", "-", // figure dash
		"–", "-", // en dash
		"—", "-", // em dash
		"―", "-", // horizontal bar
		"−", "-", // minus sign
		"─", "-", // box drawings light horizontal
		"━", "-", // box drawings heavy horizontal
		"ー", "-", // katakana long vowel mark
		"﹘", "-", // small em dash
		"﹣", "-", // small hyphen-minus
		"－", "-", // fullwidth hyphen-minus
		"ｰ", "-", // halfwidth long vowel mark
	)

	blockReplacer = strings.NewReplacer(
		"丁目", "-",
		"番地", "-",
		"番", "-",
		"号", "-",
	)
)

// Name returns the comparison key for a shop or model name.
func Name(text string) string {
	s := fold(text)
	s = strings.ToUpper(s)
	s = norm.NFKC.String(s)
	s = dashReplacer.Replace(s)
	for {
		stripped := trailingAnnotation.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}
	return strings.Join(strings.Fields(s), " ")
}

// Address returns the comparison key for a street address. Block/lot
// separators are collapsed so "1丁目1番7号" and "1-1-7" produce the same key.
func Address(text string) string {
	s := fold(text)
	s = strings.ToLower(s)
	s = norm.NFKC.String(s)
	s = dashReplacer.Replace(s)
	s = blockReplacer.Replace(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	for {
		collapsed := romanizedBlock.ReplaceAllString(s, "$1-")
		collapsed = repeatedHyphen.ReplaceAllString(collapsed, "-")
		if collapsed == s {
			break
		}
		s = collapsed
	}
	return strings.Trim(s, "-")
}

// StripAnnotation removes parenthetical qualifiers from a name and trims it.
// Unlike Name it keeps the original width and case, so the result is what
// gets stored as the canonical display name.
func StripAnnotation(text string) string {
	return strings.TrimSpace(anyAnnotation.ReplaceAllString(text, ""))
}

// Displacement guesses an engine displacement in cc from a model name.
// Numbers that look like model years are ignored.
func Displacement(name string) (int, bool) {
	for _, m := range digits.FindAllString(fold(name), -1) {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if n < 50 || n >= 2500 {
			continue
		}
		if n >= 1990 && n <= 2030 {
			continue
		}
		return n, true
	}
	return 0, false
}

// Width folds full-width digits, letters and punctuation to their ASCII
// forms without touching case or spacing.
func Width(text string) string {
	return fold(text)
}

func fold(text string) string {
	return norm.NFKC.String(text)
}

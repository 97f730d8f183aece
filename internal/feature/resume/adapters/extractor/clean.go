package extractor

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	hyphenBreak     = regexp.MustCompile(`(\w+)-\s*\n\s*(\w+)`)
	spacedHyphen    = regexp.MustCompile(`\s+-\s+`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	pageMarker      = regexp.MustCompile(`(?i)\bpage\s*\d+\b`)
	confidential    = regexp.MustCompile(`(?i)\bconfidential\b`)
	slashDate       = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	resumeOnly      = regexp.MustCompile(`(?is)^.{0,50}resume.{0,50}$`)
	separatorRun    = regexp.MustCompile(`[_\-|/~*=]{2,}`)
	disallowedChars = regexp.MustCompile(`[^\p{L}\p{N}_\s@.,!?&%$#()+\-]`)
	labeledToken    = regexp.MustCompile(`(?i)\bphone\S+`)
	urlPattern      = regexp.MustCompile(`(?i)\bhttps?://\S+`)
	bullets         = regexp.MustCompile(`[\x{2022}\x{25CF}\x{25E6}\x{2043}]`)
	longDigits      = regexp.MustCompile(`\d{10,}`)
)

// typographic replaces punctuation that has a plain ASCII equivalent.
var typographic = strings.NewReplacer(
	"\u2018", "'", "\u2019", "'", "\u201c", `"`, "\u201d", `"`,
	"\u2013", "-", "\u2014", "-", "\u2026", "...", "\u00a0", " ",
)

// Clean normalizes raw extracted text before tagging. It joins words hyphenated across
// lines, folds diacritics, collapses whitespace, drops page furniture and long digit
// runs (phone numbers), and strips URLs and decorative symbols. Email addresses are kept.
func Clean(text string) string {
	text = removeControl(text)
	text = hyphenBreak.ReplaceAllString(text, "$1$2")
	text = spacedHyphen.ReplaceAllString(text, " ")
	text = bullets.ReplaceAllString(text, " ")
	text = foldDiacritics(typographic.Replace(text))
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	text = labeledToken.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, "")

	text = pageMarker.ReplaceAllString(text, "")
	text = confidential.ReplaceAllString(text, "")
	text = slashDate.ReplaceAllString(text, "")
	text = resumeOnly.ReplaceAllString(text, "")

	text = separatorRun.ReplaceAllString(text, " ")
	text = disallowedChars.ReplaceAllString(text, "")
	text = longDigits.ReplaceAllString(text, "")

	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// removeControl drops non-printable characters but keeps line breaks and tabs, which the
// hyphenation step relies on.
func removeControl(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' {
			return r
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return -1
		}
		return r
	}, text)
}

func foldDiacritics(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return folded
}

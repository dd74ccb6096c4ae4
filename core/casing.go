package core

import (
	"regexp"
	"strings"
	"unicode"
)

// WordCase classifies how the letters of an identifier body are cased.
type WordCase int

const (
	CaseLower WordCase = iota // all lowercase ("my_variable")
	CaseUpper                 // all uppercase ("MY_VARIABLE")
	CaseTitle                 // capitalized words ("MyVariable")
)

// CasingStyle describes a naming convention: the case of its words, the
// separator between them, and any non-alphanumeric prefix/suffix that
// surrounded the identifier when it was detected.
type CasingStyle struct {
	Case      WordCase
	Separator string // "", "_" or "-"
	Prefix    string
	Suffix    string
}

var (
	trimPrefixRe = regexp.MustCompile(`^[^a-zA-Z0-9]+`)
	trimSuffixRe = regexp.MustCompile(`[^a-zA-Z0-9]+$`)

	// Ordered: the first matching pattern wins, so ambiguous bodies such as
	// single characters resolve to the earliest category.
	casePatterns = []struct {
		re *regexp.Regexp
		c  WordCase
	}{
		{regexp.MustCompile(`^[^A-Z]+$`), CaseLower},
		{regexp.MustCompile(`^[^a-z]+$`), CaseUpper},
		{regexp.MustCompile(`^([A-Z][^A-Z]*)+$`), CaseTitle},
	}

	sepPatterns = []struct {
		re  *regexp.Regexp
		sep string
	}{
		{regexp.MustCompile(`_`), "_"},
		{regexp.MustCompile(`-`), "-"},
	}
)

// DetectCasing classifies the naming convention of an identifier-like string.
func DetectCasing(text string) CasingStyle {
	style := CasingStyle{Case: CaseLower, Separator: ""}

	style.Prefix = trimPrefixRe.FindString(text)
	body := strings.TrimPrefix(text, style.Prefix)
	style.Suffix = trimSuffixRe.FindString(body)
	body = strings.TrimSuffix(body, style.Suffix)

	if body == "" {
		return style
	}

	for _, p := range casePatterns {
		if p.re.MatchString(body) {
			style.Case = p.c
			break
		}
	}
	for _, p := range sepPatterns {
		if p.re.MatchString(body) {
			style.Separator = p.sep
			break
		}
	}

	return style
}

// SplitWords splits an identifier into its lowercase component words using
// the detected separator. Concatenated bodies (camelCase, PascalCase) split
// on lower→upper and upper→upper-lower transitions.
func SplitWords(text string) []string {
	style := DetectCasing(text)
	body := strings.TrimSuffix(strings.TrimPrefix(text, style.Prefix), style.Suffix)
	if body == "" {
		return nil
	}

	var words []string
	if style.Separator != "" {
		for _, w := range strings.Split(body, style.Separator) {
			if w != "" {
				words = append(words, strings.ToLower(w))
			}
		}
		return words
	}

	runes := []rune(body)
	start := 0
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		boundary := false
		if unicode.IsLower(prev) && unicode.IsUpper(cur) {
			boundary = true
		} else if unicode.IsUpper(prev) && unicode.IsUpper(cur) &&
			i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			// "HTTPServer" breaks between "HTTP" and "Server".
			boundary = true
		}
		if boundary {
			words = append(words, strings.ToLower(string(runes[start:i])))
			start = i
		}
	}
	words = append(words, strings.ToLower(string(runes[start:])))
	return words
}

// JoinWords re-cases and re-joins words per the target style, reapplying the
// captured prefix and suffix.
func JoinWords(words []string, style CasingStyle) string {
	cased := make([]string, len(words))
	for i, w := range words {
		switch style.Case {
		case CaseUpper:
			cased[i] = strings.ToUpper(w)
		case CaseTitle:
			cased[i] = capitalize(w)
		default:
			cased[i] = strings.ToLower(w)
		}
	}
	return style.Prefix + strings.Join(cased, style.Separator) + style.Suffix
}

// CasingVariants returns the alternative spellings searched by fuzzy
// multi-select: the original text plus its snake, kebab and concatenated
// lowercase forms.
func CasingVariants(text string) []string {
	words := SplitWords(text)
	if len(words) == 0 {
		return []string{text}
	}

	variants := []string{
		text,
		strings.Join(words, "_"),
		strings.Join(words, "-"),
		strings.Join(words, ""),
	}

	// Drop duplicates while preserving order; the earliest variant wins.
	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, v := range variants {
		key := strings.ToLower(v)
		if !seen[key] {
			seen[key] = true
			out = append(out, v)
		}
	}
	return out
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(strings.ToLower(w))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

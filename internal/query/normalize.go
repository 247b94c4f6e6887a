package query

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize case-folds a question, composes it to NFC, turns punctuation
// (except '/', used in "3/2024") into spaces and collapses whitespace.
func Normalize(s string) string {
	// cases.Caser is stateful, so a fresh one is built per call.
	s = norm.NFC.String(cases.Fold().String(norm.NFC.String(s)))
	s = strings.Map(func(r rune) rune {
		if r != '/' && unicode.IsPunct(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// padded wraps a normalized question in spaces so vocabulary entries written
// as " chi " only match whole words.
func padded(normalized string) string {
	return " " + normalized + " "
}

// vocabulary is an ordered list of phrases matched by substring.
type vocabulary []string

func (v vocabulary) matchIn(paddedQuestion string) bool {
	for _, phrase := range v {
		if strings.Contains(paddedQuestion, phrase) {
			return true
		}
	}
	return false
}

// normalizeField trims and case-folds a transaction category or group name.
func normalizeField(s string) string {
	return strings.TrimSpace(cases.Fold().String(norm.NFC.String(s)))
}

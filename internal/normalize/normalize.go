// Package normalize canonicalises text for matching. It folds compatibility
// width and case, and treats hiragana and katakana spellings of the same
// sound as equal so that "さーち" finds "サーチ".
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Unicode ranges that map one-to-one between the two kana scripts.
const (
	hiraganaFirst = 'ぁ'
	hiraganaLast  = 'ゖ'
	katakanaFirst = 'ァ'
	katakanaLast  = 'ヶ'
	kanaOffset    = 0x60
)

// String applies NFKC (full-width ASCII becomes half-width, half-width kana
// becomes full-width), lower-cases and trims surrounding whitespace.
func String(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(strings.ToLower(norm.NFKC.String(s)))
}

// HiraganaToKatakana maps every hiragana rune to its katakana counterpart.
// Runes outside the hiragana range pass through unchanged.
func HiraganaToKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= hiraganaFirst && r <= hiraganaLast {
			return r + kanaOffset
		}
		return r
	}, s)
}

// KatakanaToHiragana maps every katakana rune to its hiragana counterpart.
// Runes outside the katakana range pass through unchanged.
func KatakanaToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= katakanaFirst && r <= katakanaLast {
			return r - kanaOffset
		}
		return r
	}, s)
}

// HasPrefixFolded reports whether text starts with query once both are
// normalised, trying each kana folding on either side.
func HasPrefixFolded(text, query string) bool {
	return folded(text, query, strings.HasPrefix)
}

// ContainsFolded reports whether text contains query once both are
// normalised, trying each kana folding on either side.
func ContainsFolded(text, query string) bool {
	return folded(text, query, strings.Contains)
}

func folded(text, query string, match func(s, sub string) bool) bool {
	t := String(text)
	q := String(query)

	if match(t, q) {
		return true
	}

	qKata := HiraganaToKatakana(q)
	qHira := KatakanaToHiragana(q)
	if match(t, qKata) || match(t, qHira) {
		return true
	}

	tKata := HiraganaToKatakana(t)
	tHira := KatakanaToHiragana(t)
	return match(tKata, q) ||
		match(tKata, qKata) ||
		match(tHira, q) ||
		match(tHira, qHira)
}

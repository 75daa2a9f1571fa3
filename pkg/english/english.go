// Package english holds the small grammar helpers the display code needs:
// indefinite articles, list joining, and naive pluralization.
package english

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// vowelSounds covers the common case; words with consonant-sounding
// leading vowels ("unicorn", "one") can override via an explicit article.
const vowels = "aeiouAEIOU"

// Article returns "a" or "an" for the given phrase.
func Article(phrase string) string {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return "a"
	}
	if strings.ContainsRune(vowels, rune(phrase[0])) {
		return "an"
	}
	return "a"
}

// AName prefixes the phrase with its indefinite article: "a hat", "an apple".
func AName(phrase string) string {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return phrase
	}
	return Article(phrase) + " " + phrase
}

// ListToString joins items with commas and a final "and":
// "a, b and c". An empty list yields "".
func ListToString(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// irregular plural forms that turn up in practice.
var irregular = map[string]string{
	"child": "children",
	"foot":  "feet",
	"tooth": "teeth",
	"man":   "men",
	"woman": "women",
	"mouse": "mice",
	"pants": "pants",
	"scissors": "scissors",
}

// Pluralize returns the plural of a noun phrase, pluralizing the last word.
func Pluralize(phrase string) string {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return phrase
	}
	words := strings.Split(phrase, " ")
	last := words[len(words)-1]
	lower := strings.ToLower(last)
	var plural string
	switch {
	case irregular[lower] != "":
		plural = irregular[lower]
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "z"), strings.HasSuffix(lower, "ch"),
		strings.HasSuffix(lower, "sh"):
		plural = last + "es"
	case strings.HasSuffix(lower, "y") && len(lower) > 1 &&
		!strings.ContainsRune(vowels, rune(lower[len(lower)-2])):
		plural = last[:len(last)-1] + "ies"
	default:
		plural = last + "s"
	}
	words[len(words)-1] = plural
	return strings.Join(words, " ")
}

// UpperFirst upper-cases the first rune, leaving multibyte text intact.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// LowerFirst lower-cases the first rune, leaving multibyte text intact.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// NumberedName returns the singular ("a hat") or counted plural ("3 hats")
// form of a name for grouped contents listings.
func NumberedName(count int, name string) string {
	if count == 1 {
		return AName(name)
	}
	return strconv.Itoa(count) + " " + Pluralize(name)
}

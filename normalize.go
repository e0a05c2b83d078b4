package nlg

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// foldReplacer strips French diacritics and expands ligatures so that
// letter-class tests see the bare Latin letter.
var foldReplacer = strings.NewReplacer(
	// lowercase
	"\u00e0", "a", // à → a
	"\u00e2", "a", // â → a
	"\u00e4", "a", // ä → a
	"\u00e9", "e", // é → e
	"\u00e8", "e", // è → e
	"\u00ea", "e", // ê → e
	"\u00eb", "e", // ë → e
	"\u00ee", "i", // î → i
	"\u00ef", "i", // ï → i
	"\u00f4", "o", // ô → o
	"\u00f6", "o", // ö → o
	"\u00f9", "u", // ù → u
	"\u00fb", "u", // û → u
	"\u00fc", "u", // ü → u
	"\u00ff", "y", // ÿ → y
	"\u00e7", "c", // ç → c
	"\u0153", "oe", // œ → oe
	"\u00e6", "ae", // æ → ae
	// uppercase
	"\u00c0", "A", // À → A
	"\u00c2", "A", // Â → A
	"\u00c9", "E", // É → E
	"\u00c8", "E", // È → E
	"\u00ca", "E", // Ê → E
	"\u00ce", "I", // Î → I
	"\u00cf", "I", // Ï → I
	"\u00d4", "O", // Ô → O
	"\u00d9", "U", // Ù → U
	"\u00db", "U", // Û → U
	"\u00c7", "C", // Ç → C
	"\u0152", "Oe", // Œ → Oe
	"\u00c6", "Ae", // Æ → Ae
)

// Fold returns s in NFC with diacritics removed, e.g. "Élève" → "Eleve".
func Fold(s string) string {
	return foldReplacer.Replace(norm.NFC.String(s))
}

// NormalizeKey returns the canonical lexicon lookup key for s: trimmed,
// NFC-composed and lowercased. Accents are kept since they are
// distinctive in French ("a" vs "à").
func NormalizeKey(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

// firstLetter returns the first letter of s after folding, lowercased.
func firstLetter(s string) rune {
	for _, r := range Fold(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
	}
	return 0
}

// startsWithVowel reports whether s begins with a vowel letter. In French
// "y" counts as a vowel ("j'y", "l'yeuse").
func startsWithVowel(s string, lang Language) bool {
	switch firstLetter(s) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	case 'y':
		return lang == French
	}
	return false
}

// startsWithVowelSound reports whether a French word begins with a vowel or
// a mute h. Words flagged aspirated ("le héros") block elision.
func startsWithVowelSound(t *Text) bool {
	if t == nil || t.Value == "" {
		return false
	}
	if startsWithVowel(t.Value, French) {
		return true
	}
	if firstLetter(t.Value) == 'h' {
		return !t.Features().Has(FlagAspiratedH)
	}
	return false
}

// anExceptions begin with a vowel letter but a consonant sound.
var anExceptions = []string{"one", "once", "uni", "use", "usu", "uti", "ure", "eu", "ewe", "uk", "ufo", "uga"}

// silentH begin with a consonant letter but a vowel sound.
var silentH = []string{"hour", "honest", "honor", "honour", "heir", "herb"}

// requiresAn reports whether the English article before s is "an".
func requiresAn(s string) bool {
	lower := strings.ToLower(s)
	if lower == "" {
		return false
	}
	if c := lower[0]; c >= '0' && c <= '9' {
		// eight, eleven, eighteen, eighty...
		return strings.HasPrefix(lower, "8") || lower == "11" || lower == "18" ||
			strings.HasPrefix(lower, "11,") || strings.HasPrefix(lower, "18,")
	}
	for _, p := range silentH {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	if !startsWithVowel(lower, English) {
		return false
	}
	for _, p := range anExceptions {
		if strings.HasPrefix(lower, p) {
			return false
		}
	}
	return true
}

// capitalise upper-cases the first letter of s, accented letters included.
func capitalise(s string, lang Language) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	if !unicode.IsLetter(r) {
		// leading punctuation such as an opening quote
		i := strings.IndexFunc(s, unicode.IsLetter)
		if i <= 0 {
			return s
		}
		return s[:i] + capitalise(s[i:], lang)
	}
	caser := cases.Upper(languageTag(lang))
	return caser.String(s[:size]) + s[size:]
}

// languageTag maps a Language onto an x/text tag.
func languageTag(lang Language) language.Tag {
	tag, err := language.Parse(string(lang))
	if err != nil {
		return language.Und
	}
	return tag
}

// lastRune returns the final rune of s.
func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

// trimLast removes the final n runes of s.
func trimLast(s string, n int) string {
	runes := []rune(s)
	if n > len(runes) {
		n = len(runes)
	}
	return string(runes[:len(runes)-n])
}

// isConsonant reports whether r is a consonant letter of the Latin alphabet.
func isConsonant(r rune) bool {
	r = unicode.ToLower(r)
	if r < 'a' || r > 'z' {
		return false
	}
	return !strings.ContainsRune("aeiou", r)
}

package morphology

import (
	"text2phenotype.com/nlg/types"
	"strings"
)

const vowels = "aeiou"

func isVowel(b byte) bool {
	return strings.IndexByte(vowels, b) >= 0
}

// AddSuffix attaches suffix to stem after repairing the stem:
//
//	consonant+y -> ie before a suffix not starting with i   (cry -> cries)
//	ie -> y before a suffix starting with i                 (lie -> lying)
//	drop a final e before a suffix starting with e or i     (like -> liked)
//	double the final consonant before a vowel suffix        (tag -> tagged)
//	insert e before s after s, x, z, ch, sh                 (watch -> watches)
func AddSuffix(stem string, suffix string, double bool) string {
	if stem == "" || suffix == "" {
		return stem + suffix
	}
	n := len(stem)
	first := suffix[0]

	if stem[n-1] == 'y' && n > 1 && !isVowel(stem[n-2]) && first != 'i' {
		stem = stem[:n-1] + "ie"
		n++
	}
	switch {
	case first == 'i' && strings.HasSuffix(stem, "ie"):
		stem = stem[:n-2] + "y"
	case stem[n-1] == 'e' && (first == 'e' || first == 'i') && !keepsFinalE(stem, first):
		stem = stem[:n-1]
	case double && isVowel(first) && n > 1 && !isVowel(stem[n-1]):
		stem += stem[n-1:]
	}
	if first == 's' && sibilant(stem) {
		return stem + "e" + suffix
	}
	return stem + suffix
}

// keepsFinalE: agree+ing, see+ing, hoe+ing, dye+ing keep their e.
func keepsFinalE(stem string, first byte) bool {
	if first != 'i' || len(stem) < 2 {
		return false
	}
	prev := stem[len(stem)-2]
	return prev == 'e' || prev == 'o' || prev == 'y'
}

func sibilant(stem string) bool {
	for _, end := range []string{"s", "x", "z", "ch", "sh"} {
		if strings.HasSuffix(stem, end) {
			return true
		}
	}
	return false
}

// doublesConsonant decides consonant doubling: always for the regular-double
// pattern, otherwise for one-syllable consonant-vowel-consonant stems.
func doublesConsonant(word *types.InflectedWordElement) bool {
	return pattern(word) == types.PatternRegularDouble || shortStem(strings.ToLower(word.BaseForm))
}

func shortStem(stem string) bool {
	n := len(stem)
	if n < 3 || n > 5 {
		return false
	}
	last := stem[n-1]
	if isVowel(last) || strings.IndexByte("wxy", last) >= 0 || !isLetter(last) {
		return false
	}
	if !isVowel(stem[n-2]) || isVowel(stem[n-3]) {
		return false
	}
	for i := 0; i < n-2; i++ {
		if isVowel(stem[i]) {
			return false
		}
	}
	return true
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// GrecoLatinPlural applies the first matching suffix rule, falling back to
// the regular plural.
func (rules *MorphologicalRules) GrecoLatinPlural(base string) string {
	for _, rule := range rules.GrecoLatinRule {
		if strings.HasSuffix(base, rule[0]) {
			return base[:len(base)-len(rule[0])] + rule[1]
		}
	}
	return AddSuffix(base, "s", false)
}

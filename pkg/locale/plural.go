package locale

import "strings"

// PluralRule determines which plural form to use for a given count.
// It follows Unicode CLDR (Common Locale Data Repository) guidelines.
type PluralRule func(n int) string

// Plural category constants as defined by Unicode CLDR.
// Not all languages use all categories.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

// DefaultPluralRule distinguishes one from everything else.
var DefaultPluralRule PluralRule = func(n int) string {
	if abs(n) == 1 {
		return PluralOne
	}
	return PluralOther
}

// EnglishPluralRule implements plural rules for English and similar languages.
// Categories: one (1), other (everything else)
var EnglishPluralRule PluralRule = DefaultPluralRule

// WestSlavicPluralRule implements plural rules for Polish, Czech and Slovak.
// Categories: one (1), few (2-4 except 12-14), many
var WestSlavicPluralRule PluralRule = func(n int) string {
	absN := abs(n)
	if absN == 1 {
		return PluralOne
	}

	mod10 := absN % 10
	mod100 := absN % 100

	if mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14) {
		return PluralFew
	}

	return PluralMany
}

// EastSlavicPluralRule implements plural rules for Russian, Ukrainian,
// Belarusian and the Serbo-Croatian languages, where the form follows the
// last digit: 21 takes the singular, 22 the paucal.
// Categories: one, few, many
var EastSlavicPluralRule PluralRule = func(n int) string {
	absN := abs(n)
	mod10 := absN % 10
	mod100 := absN % 100

	if mod10 == 1 && mod100 != 11 {
		return PluralOne
	}
	if mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14) {
		return PluralFew
	}
	return PluralMany
}

// RomancePluralRule implements plural rules for Romance languages
// (French, Italian, Portuguese, but NOT Spanish which is simpler)
// Categories: one (0, 1), many (1,000,000+), other
var RomancePluralRule PluralRule = func(n int) string {
	absN := abs(n)
	if absN <= 1 {
		return PluralOne
	}
	if absN >= 1000000 {
		return PluralMany
	}
	return PluralOther
}

// GermanicPluralRule implements plural rules for Germanic languages
// (German, Dutch, Swedish, Norwegian, Danish)
// Categories: one (1), other (everything else including 0)
var GermanicPluralRule PluralRule = DefaultPluralRule

// AsianPluralRule implements plural rules for Asian languages
// that don't distinguish plural forms
// (Japanese, Chinese, Korean, Thai, Vietnamese)
// Categories: other (all numbers)
var AsianPluralRule PluralRule = func(_ int) string {
	return PluralOther
}

// ArabicPluralRule implements complex plural rules for Arabic.
// Categories: zero, one, two, few, many, other
var ArabicPluralRule PluralRule = func(n int) string {
	absN := abs(n)
	switch absN {
	case 0:
		return PluralZero
	case 1:
		return PluralOne
	case 2:
		return PluralTwo
	}

	mod100 := absN % 100

	if mod100 >= 3 && mod100 <= 10 {
		return PluralFew
	}

	if mod100 >= 11 && mod100 <= 99 {
		return PluralMany
	}

	return PluralOther
}

// SpanishPluralRule implements plural rules for Spanish.
// Categories: one (1), many (1,000,000+), other
var SpanishPluralRule PluralRule = func(n int) string {
	absN := abs(n)
	if absN == 1 {
		return PluralOne
	}
	if absN >= 1000000 {
		return PluralMany
	}
	return PluralOther
}

// PluralRuleFor returns the plural rule for a language tag such as "ru" or
// "pt-BR". Only the primary language subtag is considered. Falls back to
// DefaultPluralRule for unknown languages.
func PluralRuleFor(tag string) PluralRule {
	lang, _, _ := strings.Cut(Normalize(tag), "-")

	switch lang {
	case "en":
		return EnglishPluralRule
	case "pl", "cs", "sk":
		return WestSlavicPluralRule
	case "ru", "uk", "be", "hr", "sr", "bs":
		return EastSlavicPluralRule
	case "fr", "it", "pt":
		return RomancePluralRule
	case "es":
		return SpanishPluralRule
	case "de", "nl", "sv", "no", "nb", "da", "is":
		return GermanicPluralRule
	case "ja", "zh", "ko", "th", "vi", "id", "ms":
		return AsianPluralRule
	case "ar":
		return ArabicPluralRule
	default:
		return DefaultPluralRule
	}
}

// SupportedPluralForms returns which plural forms a rule actually uses.
// Locale loaders use it to validate relative-time form tables.
func SupportedPluralForms(rule PluralRule) []string {
	forms := make(map[string]bool)

	testNumbers := []int{0, 1, 2, 3, 4, 5, 10, 11, 12, 13, 14, 20, 21, 22, 100, 1000, 1000000}

	for _, n := range testNumbers {
		forms[rule(n)] = true
	}

	order := []string{PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany, PluralOther}
	var result []string
	for _, form := range order {
		if forms[form] {
			result = append(result, form)
		}
	}

	return result
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

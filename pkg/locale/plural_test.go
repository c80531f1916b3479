package locale_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tempo/pkg/locale"
)

func TestPluralRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule locale.PluralRule
		want map[int]string
	}{
		{"english", locale.EnglishPluralRule, map[int]string{
			0: locale.PluralOther, 1: locale.PluralOne, 2: locale.PluralOther, -1: locale.PluralOne,
		}},
		{"east slavic", locale.EastSlavicPluralRule, map[int]string{
			0: locale.PluralMany, 1: locale.PluralOne, 2: locale.PluralFew, 5: locale.PluralMany,
			11: locale.PluralMany, 12: locale.PluralMany, 21: locale.PluralOne, 22: locale.PluralFew,
			111: locale.PluralMany, 101: locale.PluralOne,
		}},
		{"west slavic", locale.WestSlavicPluralRule, map[int]string{
			1: locale.PluralOne, 3: locale.PluralFew, 13: locale.PluralMany, 21: locale.PluralMany, 24: locale.PluralFew,
		}},
		{"romance", locale.RomancePluralRule, map[int]string{
			0: locale.PluralOne, 1: locale.PluralOne, 2: locale.PluralOther, 1000000: locale.PluralMany,
		}},
		{"spanish", locale.SpanishPluralRule, map[int]string{
			0: locale.PluralOther, 1: locale.PluralOne, 2000000: locale.PluralMany,
		}},
		{"asian", locale.AsianPluralRule, map[int]string{
			0: locale.PluralOther, 1: locale.PluralOther, 100: locale.PluralOther,
		}},
		{"arabic", locale.ArabicPluralRule, map[int]string{
			0: locale.PluralZero, 1: locale.PluralOne, 2: locale.PluralTwo, 5: locale.PluralFew,
			11: locale.PluralMany, 100: locale.PluralOther,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for n, want := range tt.want {
				require.Equal(t, want, tt.rule(n), fmt.Sprintf("n=%d", n))
			}
		})
	}
}

func TestPluralRuleFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, locale.PluralOne, locale.PluralRuleFor("ru-RU")(21))
	require.Equal(t, locale.PluralOne, locale.PluralRuleFor("pt_BR")(0))
	require.Equal(t, locale.PluralOther, locale.PluralRuleFor("ja")(1))
	require.Equal(t, locale.PluralOther, locale.PluralRuleFor("unknown")(7))
}

func TestSupportedPluralForms(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{locale.PluralOne, locale.PluralOther}, locale.SupportedPluralForms(locale.EnglishPluralRule))
	require.Equal(t, []string{locale.PluralOne, locale.PluralFew, locale.PluralMany}, locale.SupportedPluralForms(locale.EastSlavicPluralRule))
	require.Equal(t, []string{locale.PluralOther}, locale.SupportedPluralForms(locale.AsianPluralRule))
}

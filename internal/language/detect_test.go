package language

import "testing"

func TestIsArabic(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"english", "let's review the roadmap for next quarter", false},
		{"arabic only", "نناقش خطة الربع القادم", true},
		{"mixed with one arabic char", "quarterly plan ب review", true},
		{"digits and punctuation", "1234 !? ...", false},
		{"other rtl script is not arabic", "שלום", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsArabic(tc.text); got != tc.want {
				t.Errorf("IsArabic(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

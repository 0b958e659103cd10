package language

import "regexp"

var arabicRange = regexp.MustCompile("[؀-ۿ]")

// IsArabic reports whether text contains any character from the Arabic
// Unicode block. Mixed-script text counts as Arabic; empty text does not.
func IsArabic(text string) bool {
	return arabicRange.MatchString(text)
}

package utils

import (
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

var phoneCleaner = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// NormalizePhone strips spacing and punctuation from a phone number.
func NormalizePhone(phone string) string {
	return phoneCleaner.Replace(strings.TrimSpace(phone))
}

// ValidatePhone checks if a phone number is in a valid international format.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(NormalizePhone(phone))
}

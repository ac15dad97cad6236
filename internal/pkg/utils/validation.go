package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var nikDigitsOnly = regexp.MustCompile(`^\d{16}$`)

// CleanNIK strips whitespace and separator characters from a raw NIK string.
func CleanNIK(nik string) string {
	cleaned := strings.TrimSpace(nik)
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	return cleaned
}

// IsValidNIK checks a cleaned 16-digit KTP number. Positions 1-6 encode the
// region (province, regency, district, each non-zero), positions 7-12 the
// birthdate (day is offset by 40 for women), and the last 4 digits are a
// non-zero serial.
func IsValidNIK(nik string) bool {
	if !nikDigitsOnly.MatchString(nik) {
		return false
	}

	province, _ := strconv.Atoi(nik[0:2])
	regency, _ := strconv.Atoi(nik[2:4])
	district, _ := strconv.Atoi(nik[4:6])
	if province == 0 || regency == 0 || district == 0 {
		return false
	}

	day, _ := strconv.Atoi(nik[6:8])
	month, _ := strconv.Atoi(nik[8:10])
	if day > 40 {
		day -= 40
	}
	if day < 1 || day > 31 {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}

	serial, _ := strconv.Atoi(nik[12:16])
	return serial != 0
}

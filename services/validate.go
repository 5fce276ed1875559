package services

import (
	"regexp"
	"strings"
)

var (
	gstPattern   = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)
	phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidateGSTNumber validates an Indian GST number (15-character alphanumeric).
// Empty values pass; the field is optional on suppliers.
func ValidateGSTNumber(gst string) bool {
	gst = strings.TrimSpace(strings.ToUpper(gst))
	if gst == "" {
		return true
	}
	return len(gst) == 15 && gstPattern.MatchString(gst)
}

// ValidatePhone validates an Indian mobile number (10 digits starting with 6-9).
func ValidatePhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return true
	}
	return len(phone) == 10 && phonePattern.MatchString(phone)
}

// ValidateEmail validates an email address format.
func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return true
	}
	return emailPattern.MatchString(email)
}

// ValidateSupplierFields checks the optional contact fields on a supplier and
// returns a map of field -> error message for any format violations.
func ValidateSupplierFields(fields map[string]string) map[string]string {
	errors := make(map[string]string)

	if v := fields["phone"]; v != "" && !ValidatePhone(v) {
		errors["phone"] = "Invalid phone number (expected: 10 digits starting with 6-9)"
	}
	if v := fields["email"]; v != "" && !ValidateEmail(v) {
		errors["email"] = "Invalid email format"
	}
	if v := fields["gst_number"]; v != "" && !ValidateGSTNumber(v) {
		errors["gst_number"] = "Invalid GST number format (expected: 15-character, e.g., 27AAPFU0939F1ZV)"
	}

	return errors
}

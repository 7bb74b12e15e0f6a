package core

import (
	"regexp"
	"strings"
)

// Form field keys used in FieldErrors.
const (
	FieldAmount      = "amount"
	FieldDescription = "description"
)

// FieldErrors maps a form field to the message describing what is wrong with it.
type FieldErrors map[string]string

// emailPattern follows the address shape mobile platforms accept for sign-in.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9+._%\-]{1,256}@[a-zA-Z0-9][a-zA-Z0-9\-]{0,64}(\.[a-zA-Z0-9][a-zA-Z0-9\-]{0,25})+$`)

// fieldMessages are the user-facing texts for expense field errors.
var fieldMessages = map[error]string{
	ErrInvalidAmount:      "Please enter a valid amount greater than 0",
	ErrEmptyDescription:   "Description is required",
	ErrDescriptionTooLong: "Description is too long (max 500 characters)",
}

// ValidateExpenseFields checks raw form input and reports every violation found.
// An empty (non-nil) map means the input is acceptable.
func ValidateExpenseFields(amount, description string) FieldErrors {
	errs := FieldErrors{}

	if _, err := ParseAmount(amount); err != nil {
		errs[FieldAmount] = fieldMessages[ErrInvalidAmount]
	}
	if err := ValidateDescription(description); err != nil {
		errs[FieldDescription] = fieldMessages[err]
	}

	return errs
}

// ValidateDescription returns ErrEmptyDescription or ErrDescriptionTooLong.
func ValidateDescription(description string) error {
	if isBlank(description) {
		return ErrEmptyDescription
	}
	if descriptionLength(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// ValidateEmail returns ErrInvalidEmail unless email looks like an address.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" || !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateCredentials checks a sign-in attempt before it reaches the network.
func ValidateCredentials(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}

// ValidateSignUp checks a sign-up attempt, including the confirmation field.
func ValidateSignUp(email, password, confirm string) error {
	if err := ValidateCredentials(email, password); err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

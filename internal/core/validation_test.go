package core

import (
	"strings"
	"testing"
)

func TestValidateExpenseFields(t *testing.T) {
	cases := []struct {
		name        string
		amount      string
		description string
		wantFields  []string
	}{
		{"valid", "12.50", "Lunch", nil},
		{"valid max length", "1", strings.Repeat("a", MaxDescriptionLength), nil},
		{"zero amount", "0", "Lunch", []string{FieldAmount}},
		{"negative amount", "-5", "Lunch", []string{FieldAmount}},
		{"non numeric amount", "ten", "Lunch", []string{FieldAmount}},
		{"blank description", "3", "   ", []string{FieldDescription}},
		{"too long description", "3", strings.Repeat("a", MaxDescriptionLength+1), []string{FieldDescription}},
		{"both invalid", "", "", []string{FieldAmount, FieldDescription}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateExpenseFields(tc.amount, tc.description)
			if len(errs) != len(tc.wantFields) {
				t.Fatalf("expected %d errors, got %v", len(tc.wantFields), errs)
			}
			for _, f := range tc.wantFields {
				if errs[f] == "" {
					t.Fatalf("expected error on %q, got %v", f, errs)
				}
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	cases := []struct {
		description string
		want        error
	}{
		{"Lunch", nil},
		{"", ErrEmptyDescription},
		{"  \t", ErrEmptyDescription},
		{strings.Repeat("é", MaxDescriptionLength), nil},
		{strings.Repeat("a", MaxDescriptionLength+1), ErrDescriptionTooLong},
	}
	for _, tc := range cases {
		if got := ValidateDescription(tc.description); got != tc.want {
			t.Fatalf("ValidateDescription(%d chars) = %v, want %v", len([]rune(tc.description)), got, tc.want)
		}
	}

	errs := ValidateExpenseFields("1", "")
	if errs[FieldDescription] != "Description is required" {
		t.Fatalf("unexpected description message %q", errs[FieldDescription])
	}
}

func TestValidateCredentials(t *testing.T) {
	cases := []struct {
		email, password string
		want            error
	}{
		{"a@b.com", "secret1", nil},
		{"user.name+tag@example.co.uk", "123456", nil},
		{"", "secret1", ErrInvalidEmail},
		{"not-an-email", "secret1", ErrInvalidEmail},
		{"a@b", "secret1", ErrInvalidEmail},
		{"a@b.com", "12345", ErrPasswordTooShort},
	}
	for _, tc := range cases {
		if got := ValidateCredentials(tc.email, tc.password); got != tc.want {
			t.Fatalf("ValidateCredentials(%q, %q) = %v, want %v", tc.email, tc.password, got, tc.want)
		}
	}
}

func TestValidateSignUp(t *testing.T) {
	if err := ValidateSignUp("a@b.com", "secret1", "secret1"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := ValidateSignUp("a@b.com", "secret1", "secret2"); err != ErrPasswordMismatch {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if err := ValidateSignUp("bad", "secret1", "other"); err != ErrInvalidEmail {
		t.Fatalf("email should be checked first, got %v", err)
	}
}

package http

import (
	"errors"
	"testing"
)

var errTest = errors.New("boom")

type hexPayload struct {
	Account string `validate:"required,hex32"`
}

func TestValidator_Hex32(t *testing.T) {
	cv := NewValidator()

	ok := hexPayload{Account: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}
	if err := cv.Validate(&ok); err != nil {
		t.Fatalf("valid account rejected: %v", err)
	}

	bad := []string{
		"",
		"short",
		"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",     // uppercase
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",    // 33 chars
		"gggggggggggggggggggggggggggggggg",     // not hex
		"aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa", // separators
	}
	for _, acct := range bad {
		p := hexPayload{Account: acct}
		if err := cv.Validate(&p); err == nil {
			t.Fatalf("accepted invalid account %q", acct)
		}
	}
}

func TestToFieldErrors_ReadableMessages(t *testing.T) {
	cv := NewValidator()
	p := hexPayload{Account: "nope"}
	err := cv.Validate(&p)
	if err == nil {
		t.Fatal("expected validation error")
	}
	fes := ToFieldErrors(err)
	if len(fes) != 1 {
		t.Fatalf("field errors = %+v, want one", fes)
	}
	if fes[0].Field != "Account" || fes[0].Message != "must be 32-char lowercase hex" {
		t.Fatalf("unexpected field error: %+v", fes[0])
	}
}

func TestStatusForUnknownError(t *testing.T) {
	if got := statusFor(errTest); got != 500 {
		t.Fatalf("statusFor(unknown) = %d, want 500", got)
	}
}

package service

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckoutFormValidatePasses(t *testing.T) {
	form := validCheckoutForm()
	if err := form.Validate(); err != nil {
		t.Fatalf("expected valid form, got: %v", err)
	}
}

func TestCheckoutFormValidateTrimsWhitespace(t *testing.T) {
	form := validCheckoutForm()
	form.FullName = "  Sara Mohammadi  "
	form.Email = " sara@example.com "
	if err := form.Validate(); err != nil {
		t.Fatalf("expected trimmed form to pass, got: %v", err)
	}
	if form.FullName != "Sara Mohammadi" {
		t.Fatalf("expected normalized full name, got: %q", form.FullName)
	}
}

func TestCheckoutFormValidateCollectsAllFieldErrors(t *testing.T) {
	form := CheckoutForm{}
	err := form.Validate()
	if err == nil {
		t.Fatalf("expected validation error for empty form")
	}
	var validationErr *CheckoutValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected CheckoutValidationError, got: %T", err)
	}
	for _, field := range []string{
		"full_name", "email", "phone", "address", "city",
		"postal_code", "payer_card_number", "payment_reference",
	} {
		if _, ok := validationErr.Fields[field]; !ok {
			t.Fatalf("expected field error for %s, got: %+v", field, validationErr.Fields)
		}
	}
}

func TestCheckoutFormValidateCardNumberBoundaries(t *testing.T) {
	cases := []struct {
		card string
		ok   bool
	}{
		{"603799123456", true},          // 12 位下界
		{"60379912345678901234", true},  // 20 位上界
		{"60379912345", false},          // 11 位
		{"603799123456789012345", false}, // 21 位
		{"6037-9912-3456", false},       // 含分隔符
	}
	for _, c := range cases {
		form := validCheckoutForm()
		form.PayerCardNumber = c.card
		err := form.Validate()
		if c.ok && err != nil {
			t.Fatalf("card %q: expected valid, got: %v", c.card, err)
		}
		if !c.ok {
			var validationErr *CheckoutValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("card %q: expected validation error, got: %v", c.card, err)
			}
			if _, found := validationErr.Fields["payer_card_number"]; !found {
				t.Fatalf("card %q: expected payer_card_number error, got: %+v", c.card, validationErr.Fields)
			}
		}
	}
}

func TestCheckoutFormValidatePaymentReferenceBoundaries(t *testing.T) {
	form := validCheckoutForm()
	form.PaymentReference = "abc"
	if err := form.Validate(); err == nil {
		t.Fatalf("expected error for 3-char payment reference")
	}
	form = validCheckoutForm()
	form.PaymentReference = strings.Repeat("x", 51)
	if err := form.Validate(); err == nil {
		t.Fatalf("expected error for 51-char payment reference")
	}
	form = validCheckoutForm()
	form.PaymentReference = "abcd"
	if err := form.Validate(); err != nil {
		t.Fatalf("expected 4-char payment reference to pass, got: %v", err)
	}
}

func TestCheckoutFormValidateNotesLimit(t *testing.T) {
	form := validCheckoutForm()
	form.Notes = strings.Repeat("ن", 500)
	if err := form.Validate(); err != nil {
		t.Fatalf("expected 500-rune notes to pass, got: %v", err)
	}
	form.Notes = strings.Repeat("ن", 501)
	err := form.Validate()
	var validationErr *CheckoutValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for 501-rune notes, got: %v", err)
	}
	if _, found := validationErr.Fields["notes"]; !found {
		t.Fatalf("expected notes error, got: %+v", validationErr.Fields)
	}
}

func TestCheckoutValidationErrorMessageIsStable(t *testing.T) {
	err := &CheckoutValidationError{Fields: map[string]string{
		"phone": "phone must be at least 10 digits",
		"email": "invalid email address",
	}}
	msg := err.Error()
	if !strings.Contains(msg, "email: invalid email address") {
		t.Fatalf("unexpected message: %s", msg)
	}
	if strings.Index(msg, "email") > strings.Index(msg, "phone") {
		t.Fatalf("expected fields sorted by name, got: %s", msg)
	}
}

func TestCheckoutFormValidatePostalCodeBoundary(t *testing.T) {
	form := validCheckoutForm()
	form.PostalCode = "1234"
	var validationErr *CheckoutValidationError
	if err := form.Validate(); !errors.As(err, &validationErr) {
		t.Fatalf("expected postal code of 4 rejected, got: %v", err)
	} else if _, ok := validationErr.Fields["postal_code"]; !ok {
		t.Fatalf("expected postal_code field error, got: %+v", validationErr.Fields)
	}

	form = validCheckoutForm()
	form.PostalCode = "12345"
	if err := form.Validate(); err != nil {
		t.Fatalf("expected postal code of 5 accepted, got: %v", err)
	}
}

func TestCheckoutFormValidatePhoneDigitBoundary(t *testing.T) {
	cases := []struct {
		phone string
		ok    bool
	}{
		{"0912123456", true},    // 10 位数字下界
		{"091212345", false},    // 9 位数字
		{"123 45 678", false},   // 分隔符不计入位数，实际只有 8 位
		{"0912 123 4567", true}, // 含分隔符但数字足够
		{"+982112345678", true},
		{"0912a123456", false}, // 非法字符
	}
	for _, c := range cases {
		form := validCheckoutForm()
		form.Phone = c.phone
		err := form.Validate()
		if c.ok && err != nil {
			t.Fatalf("expected phone %q accepted, got: %v", c.phone, err)
		}
		if !c.ok {
			var validationErr *CheckoutValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected phone %q rejected, got: %v", c.phone, err)
			}
			if _, found := validationErr.Fields["phone"]; !found {
				t.Fatalf("expected phone field error for %q, got: %+v", c.phone, validationErr.Fields)
			}
		}
	}
}

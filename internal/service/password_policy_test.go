package service

import (
	"errors"
	"testing"

	"github.com/parskala/internal/config"
)

func TestValidatePasswordEmptyPolicyAllowsAnything(t *testing.T) {
	if err := validatePassword(config.PasswordPolicyConfig{}, "x"); err != nil {
		t.Fatalf("expected empty policy to pass, got: %v", err)
	}
}

func TestValidatePasswordMinLength(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 8}
	if err := validatePassword(policy, "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected weak password, got: %v", err)
	}
	if err := validatePassword(policy, "longenough"); err != nil {
		t.Fatalf("expected pass, got: %v", err)
	}
}

func TestValidatePasswordCharacterClasses(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}
	cases := []struct {
		password string
		ok       bool
	}{
		{"Aa1!aaaa", true},
		{"aa1!aaaa", false},
		{"AA1!AAAA", false},
		{"Aa!aaaaa", false},
		{"Aa1aaaaa", false},
	}
	for _, c := range cases {
		err := validatePassword(policy, c.password)
		if c.ok && err != nil {
			t.Fatalf("password %q: expected pass, got: %v", c.password, err)
		}
		if !c.ok && !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("password %q: expected weak password, got: %v", c.password, err)
		}
	}
}

func TestValidatePasswordCountsRunesNotBytes(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 6}
	if err := validatePassword(policy, "رمزعبو"); err != nil {
		t.Fatalf("expected 6-rune password to pass, got: %v", err)
	}
}

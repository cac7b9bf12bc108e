package service

import (
	"fmt"
	"net/mail"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var digitsOnlyPattern = regexp.MustCompile(`^[0-9]+$`)
var phoneCharsPattern = regexp.MustCompile(`^\+?[0-9\-()\s]+$`)

// validPhone 允许常见分隔符，但数字位数（不含分隔符）必须不少于 10
func validPhone(phone string) bool {
	if phone == "" || !phoneCharsPattern.MatchString(phone) {
		return false
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10 && digits <= 20
}

// CheckoutValidationError 结算表单校验错误，按字段聚合
type CheckoutValidationError struct {
	Fields map[string]string
}

// Error 实现 error 接口
func (e *CheckoutValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "checkout validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e.Fields[key]))
	}
	return "checkout validation failed: " + strings.Join(parts, "; ")
}

// CheckoutForm 结算表单（配送信息 + 转账信息）
type CheckoutForm struct {
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	City             string `json:"city"`
	PostalCode       string `json:"postal_code"`
	PayerCardNumber  string `json:"payer_card_number"`
	PaymentReference string `json:"payment_reference"`
	Notes            string `json:"notes"`
}

// Normalize 去除首尾空白
func (f *CheckoutForm) Normalize() {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	f.City = strings.TrimSpace(f.City)
	f.PostalCode = strings.TrimSpace(f.PostalCode)
	f.PayerCardNumber = strings.TrimSpace(f.PayerCardNumber)
	f.PaymentReference = strings.TrimSpace(f.PaymentReference)
	f.Notes = strings.TrimSpace(f.Notes)
}

// Validate 校验结算表单，全部字段一次性返回
func (f *CheckoutForm) Validate() error {
	f.Normalize()
	fields := map[string]string{}

	if utf8.RuneCountInString(f.FullName) < 3 {
		fields["full_name"] = "full name must be at least 3 characters"
	}
	if _, err := mail.ParseAddress(f.Email); err != nil {
		fields["email"] = "invalid email address"
	}
	if !validPhone(f.Phone) {
		fields["phone"] = "phone must be at least 10 digits"
	}
	if utf8.RuneCountInString(f.Address) < 5 {
		fields["address"] = "address must be at least 5 characters"
	}
	if utf8.RuneCountInString(f.City) < 2 {
		fields["city"] = "city must be at least 2 characters"
	}
	if utf8.RuneCountInString(f.PostalCode) < 5 {
		fields["postal_code"] = "postal code must be at least 5 characters"
	}
	cardDigits := len(f.PayerCardNumber)
	if cardDigits < 12 || cardDigits > 20 || !digitsOnlyPattern.MatchString(f.PayerCardNumber) {
		fields["payer_card_number"] = "payer card number must be 12 to 20 digits"
	}
	refLen := utf8.RuneCountInString(f.PaymentReference)
	if refLen < 4 || refLen > 50 {
		fields["payment_reference"] = "payment reference must be 4 to 50 characters"
	}
	if utf8.RuneCountInString(f.Notes) > 500 {
		fields["notes"] = "notes must be at most 500 characters"
	}

	if len(fields) > 0 {
		return &CheckoutValidationError{Fields: fields}
	}
	return nil
}

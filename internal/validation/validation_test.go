package validation

import (
	"errors"
	"testing"
)

type form struct {
	Name   string `json:"customerName" validate:"notblank"`
	Phone  string `json:"phone" validate:"notblank,lbphone"`
	City   string `json:"city" validate:"required,lbcity"`
	Price  string `json:"price" validate:"notblank,posdecimal"`
	Count  string `json:"buttons" validate:"posint"`
	Ignore string `json:"-"`
}

var msgs = Messages{
	"customerName":   "Name is required",
	"phone.notblank": "Phone number is required",
	"phone.lbphone":  "Please enter a valid Lebanese phone number",
	"city.required":  "City is required",
}

func validForm() form {
	return form{Name: "Rami", Phone: "03 123 456", City: "Beirut", Price: "99.99", Count: "6"}
}

func TestCheck_Valid(t *testing.T) {
	if err := Check(New(), validForm(), msgs); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}

func TestCheck_FieldMessages(t *testing.T) {
	f := form{Name: "   ", Phone: "12345", Price: "-1", Count: "zero"}
	err := Check(New(), f, msgs)
	var ve *Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected *Error, got %v", err)
	}
	want := map[string]string{
		"customerName": "Name is required",
		"phone":        "Please enter a valid Lebanese phone number",
		"city":         "City is required",
	}
	for field, msg := range want {
		if ve.Fields[field] != msg {
			t.Fatalf("field %s: expected %q, got %q", field, msg, ve.Fields[field])
		}
	}
	// no message configured: falls back to the validator's text
	if ve.Fields["price"] == "" || ve.Fields["buttons"] == "" {
		t.Fatalf("expected fallback messages, got %+v", ve.Fields)
	}
}

func TestCheck_UnsupportedCity(t *testing.T) {
	f := validForm()
	f.City = "beirut"
	err := Check(New(), f, msgs)
	var ve *Error
	if !errors.As(err, &ve) || ve.Fields["city"] == "" {
		t.Fatalf("expected city error, got %v", err)
	}
}

func TestIsLebanesePhone(t *testing.T) {
	cases := map[string]bool{
		"03123456":       true,
		"03 123 456":     true,
		"+961 3 123 456": true,
		"9613123456":     true,
		"71123456":       true,
		"+96171123456":   true,
		"12345":          false,
		"+1 555 1234567": false,
		"03-123-456":     false,
		"":               false,
		"0312345678":     false,
	}
	for in, want := range cases {
		if got := IsLebanesePhone(in); got != want {
			t.Errorf("IsLebanesePhone(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsSupportedCity(t *testing.T) {
	if !IsSupportedCity("Bhamdoun") || IsSupportedCity("Damascus") || IsSupportedCity("") {
		t.Fatalf("unexpected city membership result")
	}
	if len(Cities) != 12 || Cities[0] != "Beirut" {
		t.Fatalf("unexpected city list: %v", Cities)
	}
}

func TestError_Message(t *testing.T) {
	e := &Error{Fields: FieldErrors{"phone": "bad", "address": "missing"}}
	if got := e.Error(); got != "validation failed: address: missing; phone: bad" {
		t.Fatalf("unexpected message %q", got)
	}
}

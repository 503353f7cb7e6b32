package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type testCheckoutRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=100"`
}

func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeName bool, includeEmail bool, includeQuantity bool) bool {
			reqMap := make(map[string]interface{})

			if includeName {
				reqMap["first_name"] = "Ada"
			}
			if includeEmail {
				reqMap["email"] = "ada@example.com"
			}
			if includeQuantity {
				reqMap["quantity"] = 2
			}

			allFieldsPresent := includeName && includeEmail && includeQuantity

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/api/checkout", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var decoded testCheckoutRequest
			err := DecodeAndValidate(req, &decoded)

			if allFieldsPresent {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_QuantityRangeValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("quantity outside 1..100 is rejected", prop.ForAll(
		func(quantity int) bool {
			reqMap := map[string]interface{}{
				"first_name": "Ada",
				"email":      "ada@example.com",
				"quantity":   quantity,
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/api/checkout", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var decoded testCheckoutRequest
			err := DecodeAndValidate(req, &decoded)

			if quantity >= 1 && quantity <= 100 {
				return err == nil
			}
			return err != nil
		},
		gen.IntRange(-10, 200).SuchThat(func(q int) bool { return q != 0 }),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestFormatValidationErrorsIncludesFields(t *testing.T) {
	reqMap := map[string]interface{}{
		"first_name": "Ada",
		"email":      "not-an-email",
		"quantity":   2,
	}

	reqBody, _ := json.Marshal(reqMap)
	req := httptest.NewRequest("POST", "/api/checkout", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	var decoded testCheckoutRequest
	err := DecodeAndValidate(req, &decoded)
	if err == nil {
		t.Fatal("Expected validation error for invalid email")
	}

	validationErrors := FormatValidationErrors(err)
	if len(validationErrors) == 0 {
		t.Fatal("Expected formatted validation errors")
	}
	for _, ve := range validationErrors {
		if ve.Field == "" || ve.Message == "" {
			t.Errorf("Validation error missing field or message: %+v", ve)
		}
	}
}

func TestDecodeAndValidateRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/checkout", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	var decoded testCheckoutRequest
	if err := DecodeAndValidate(req, &decoded); err == nil {
		t.Fatal("Expected error for malformed JSON")
	}
}

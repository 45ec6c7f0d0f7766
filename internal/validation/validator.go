// internal/validation/validator.go

// Package validation performs structural validation of the score request
// before the core engine runs. Failures surface as a single human-readable
// message from a fixed template set, matching the public API contract.
package validation

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/openfinanceafrica/scoreapi/internal/score"
)

const (
	MsgUnparseableRequest = "Sorry, we were unable to parse your request. Ensure that you have the correct structure for the request as shown in our documentation (https://openfinance.africa/api/docs). You may also contact api@openfinance.africa for help."
	MsgInvalidStartDate   = `"paymentStartDate" is invalid. The format should be full-date as defined by "RFC 3339, section 5.6" (https://tools.ietf.org/html/rfc3339#section-5.6). For example: "2023-03-08T07:15:32.42"`
	MsgInvalidEndDate     = `"paymentEndDate" is invalid. The format should be full-date as defined by "RFC 3339, section 5.6" (https://tools.ietf.org/html/rfc3339#section-5.6). For example: "2023-03-08T07:15:32.42"`
	MsgInvalidCurrentDate = `"currentDate" is invalid. The format should be full-date as defined by "RFC 3339, section 5.6" (https://tools.ietf.org/html/rfc3339#section-5.6). For example: "2023-03-08T07:15:32.42"`
	MsgInvalidPaymentDay  = `The value of "expectedPaymentDay" should be between 1 and 28.`
	MsgInvalidAmount      = `The value of "expectedPaymentAmount" must be a number.`
	MsgInvalidPayments    = `The value of "payments" must be an array of Payment objects`
)

// scoreInputSchema encodes the structural contract of the request. Date
// parseability is checked separately since the accepted formats are wider
// than JSON Schema's date-time.
const scoreInputSchema = `{
	"type": "object",
	"required": ["paymentStartDate", "expectedPaymentDay", "expectedPaymentAmount", "payments"],
	"properties": {
		"paymentStartDate": {"type": "string"},
		"paymentEndDate": {"type": "string"},
		"currentDate": {"type": "string"},
		"expectedPaymentDay": {"type": "integer", "minimum": 1, "maximum": 28},
		"expectedPaymentAmount": {"type": "number", "exclusiveMinimum": 0},
		"reference": {"type": "string"},
		"scoreBeforeStartDate": {"type": "boolean"},
		"payments": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["date", "amount"],
				"properties": {
					"date": {"type": "string"},
					"amount": {"type": "number"}
				}
			}
		}
	}
}`

var schema = gojsonschema.NewStringLoader(scoreInputSchema)

// ValidateScoreInput checks a raw request body and returns the template
// message for the first violation, or "" when the body is valid.
func ValidateScoreInput(body []byte) string {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		// The body is not JSON at all.
		return MsgUnparseableRequest
	}
	if !result.Valid() {
		return messageFor(result.Errors()[0])
	}
	return checkDates(body)
}

func messageFor(resultErr gojsonschema.ResultError) string {
	field := resultErr.Field()
	if resultErr.Type() == "required" {
		if prop, ok := resultErr.Details()["property"].(string); ok {
			field = prop
		}
	}

	switch {
	case strings.HasPrefix(field, "paymentStartDate"):
		return MsgInvalidStartDate
	case strings.HasPrefix(field, "paymentEndDate"):
		return MsgInvalidEndDate
	case strings.HasPrefix(field, "currentDate"):
		return MsgInvalidCurrentDate
	case strings.HasPrefix(field, "expectedPaymentDay"):
		return MsgInvalidPaymentDay
	case strings.HasPrefix(field, "expectedPaymentAmount"):
		return MsgInvalidAmount
	case strings.HasPrefix(field, "payments"):
		return MsgInvalidPayments
	default:
		return MsgUnparseableRequest
	}
}

// checkDates verifies that the date-bearing fields actually parse under the
// engine's accepted layouts.
func checkDates(body []byte) string {
	var in score.ScoreInput
	if err := json.Unmarshal(body, &in); err != nil {
		return MsgUnparseableRequest
	}

	if _, err := score.ParseTime(in.PaymentStartDate); err != nil {
		return MsgInvalidStartDate
	}
	if in.PaymentEndDate != "" {
		if _, err := score.ParseTime(in.PaymentEndDate); err != nil {
			return MsgInvalidEndDate
		}
	}
	if in.CurrentDate != "" {
		if _, err := score.ParseTime(in.CurrentDate); err != nil {
			return MsgInvalidCurrentDate
		}
	}
	for _, p := range in.Payments {
		if _, err := score.ParseTime(p.Date); err != nil {
			return MsgInvalidPayments
		}
	}
	return ""
}

// internal/validation/validator_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const validBody = `{
	"paymentStartDate": "2017-07-21T17:32:28Z",
	"paymentEndDate": "2018-07-21T17:32:28Z",
	"expectedPaymentDay": 1,
	"expectedPaymentAmount": 5000,
	"payments": [{"amount": 2000, "date": "2017-07-21T17:32:28Z"}]
}`

func TestValidateScoreInput(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectedMsg string
	}{
		{
			name:        "valid request",
			body:        validBody,
			expectedMsg: "",
		},
		{
			name:        "minimal valid request",
			body:        `{"paymentStartDate": "2021-01-01", "expectedPaymentDay": 15, "expectedPaymentAmount": 500, "payments": []}`,
			expectedMsg: "",
		},
		{
			name:        "empty body",
			body:        "",
			expectedMsg: MsgUnparseableRequest,
		},
		{
			name:        "not json",
			body:        "hello",
			expectedMsg: MsgUnparseableRequest,
		},
		{
			name:        "missing start date",
			body:        `{"expectedPaymentDay": 15, "expectedPaymentAmount": 500, "payments": []}`,
			expectedMsg: MsgInvalidStartDate,
		},
		{
			name:        "unparseable start date",
			body:        `{"paymentStartDate": "21/01/2021", "expectedPaymentDay": 15, "expectedPaymentAmount": 500, "payments": []}`,
			expectedMsg: MsgInvalidStartDate,
		},
		{
			name:        "unparseable end date",
			body:        `{"paymentStartDate": "2021-01-01", "paymentEndDate": "later", "expectedPaymentDay": 15, "expectedPaymentAmount": 500, "payments": []}`,
			expectedMsg: MsgInvalidEndDate,
		},
		{
			name:        "payment day too large",
			body:        `{"paymentStartDate": "2021-01-01", "expectedPaymentDay": 31, "expectedPaymentAmount": 500, "payments": []}`,
			expectedMsg: MsgInvalidPaymentDay,
		},
		{
			name:        "payment day zero",
			body:        `{"paymentStartDate": "2021-01-01", "expectedPaymentDay": 0, "expectedPaymentAmount": 500, "payments": []}`,
			expectedMsg: MsgInvalidPaymentDay,
		},
		{
			name:        "payment day not an integer",
			body:        `{"paymentStartDate": "2021-01-01", "expectedPaymentDay": "first", "expectedPaymentAmount": 500, "payments": []}`,
			expectedMsg: MsgInvalidPaymentDay,
		},
		{
			name:        "amount not a number",
			body:        `{"paymentStartDate": "2021-01-01", "expectedPaymentDay": 15, "expectedPaymentAmount": "lots", "payments": []}`,
			expectedMsg: MsgInvalidAmount,
		},
		{
			name:        "amount not positive",
			body:        `{"paymentStartDate": "2021-01-01", "expectedPaymentDay": 15, "expectedPaymentAmount": 0, "payments": []}`,
			expectedMsg: MsgInvalidAmount,
		},
		{
			name:        "payments not an array",
			body:        `{"paymentStartDate": "2021-01-01", "expectedPaymentDay": 15, "expectedPaymentAmount": 500, "payments": {"date": "2021-01-15"}}`,
			expectedMsg: MsgInvalidPayments,
		},
		{
			name:        "payment missing amount",
			body:        `{"paymentStartDate": "2021-01-01", "expectedPaymentDay": 15, "expectedPaymentAmount": 500, "payments": [{"date": "2021-01-15"}]}`,
			expectedMsg: MsgInvalidPayments,
		},
		{
			name:        "payment date unparseable",
			body:        `{"paymentStartDate": "2021-01-01", "expectedPaymentDay": 15, "expectedPaymentAmount": 500, "payments": [{"date": "yesterday", "amount": 500}]}`,
			expectedMsg: MsgInvalidPayments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedMsg, ValidateScoreInput([]byte(tt.body)))
		})
	}
}

package dto

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms3pl/backend/internal/domain/billing"
)

func TestNormalizeErrorCode(t *testing.T) {
	tests := map[string]struct {
		code   string
		status int
	}{
		"FORBIDDEN":           {ErrCodeForbidden, http.StatusForbidden},
		"NOT_FOUND":           {ErrCodeNotFound, http.StatusNotFound},
		"INVALID_PERIOD":      {ErrCodeInvalidPeriod, http.StatusBadRequest},
		"INVALID_INPUT":       {ErrCodeInvalidInput, http.StatusBadRequest},
		"INVARIANT_VIOLATION": {ErrCodeInvariantViolation, http.StatusInternalServerError},
		"CONFLICT":            {ErrCodeConflict, http.StatusConflict},
		"SOMETHING_ELSE":      {ErrCodeInternal, http.StatusInternalServerError},
	}
	for domainCode, want := range tests {
		t.Run(domainCode, func(t *testing.T) {
			code := NormalizeErrorCode(domainCode)
			assert.Equal(t, want.code, code)
			assert.Equal(t, want.status, GetHTTPStatus(code))
		})
	}
}

func TestGetHTTPStatus_Unknown(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_WHATEVER"))
	assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(ErrCodeTokenExpired))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2025-01-31T23:00:00-02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 1, 1, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("31/01/2025")
	assert.Error(t, err)
}

func TestToInvoiceResponse(t *testing.T) {
	issued := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	inv := &billing.Invoice{
		ID:            "inv-1",
		TenantID:      "T1",
		TenantName:    "Acme",
		InvoiceNumber: "FACT-202502-0001",
		Lines: []billing.Line{
			{Description: "Monthly storage fee", Quantity: 1, UnitPrice: decimal.NewFromInt(150), LineTotal: decimal.NewFromInt(150)},
		},
		Subtotal:  decimal.NewFromInt(150),
		TaxRate:   decimal.NewFromInt(20),
		TaxAmount: decimal.NewFromInt(30),
		Total:     decimal.NewFromInt(180),
		Status:    billing.StatusDraft,
		IssueDate: issued,
		DueDate:   issued.AddDate(0, 0, 30),
	}

	resp := ToInvoiceResponse(inv)
	assert.Equal(t, "Acme", resp.ClientName)
	assert.Equal(t, "150.00", resp.Lines[0].UnitPrice)
	assert.Equal(t, "20.00", resp.TaxRate)
	assert.Equal(t, "180.00", resp.Total)
	assert.Equal(t, "2025-02-03", resp.IssueDate)
	assert.Equal(t, "2025-03-05", resp.DueDate)
	assert.Equal(t, "draft", resp.Status)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1",
		[]ValidationDetail{{Field: "tenant_id", Message: "This field is required"}})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
}

package amqp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/school_finance_app/internal/dto"
)

func TestPaymentAppliedMessageRoundTrip(t *testing.T) {
	event := dto.PaymentAppliedEvent{
		PaymentID:      "pay-1",
		OrganizationID: "org-1",
		StudentID:      "student-1",
		FeeID:          "fee-1",
		AmountMinor:    40000,
		PaidOn:         time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		FeeCompleted:   true,
		OccurredAt:     time.Date(2026, time.March, 2, 10, 30, 0, 0, time.UTC),
	}

	body, err := NewPaymentAppliedMessage(event).ToJSON()
	require.NoError(t, err)

	parsed, err := PaymentAppliedMessageFromJSON(body)
	require.NoError(t, err)

	assert.Equal(t, paymentAppliedSchema, parsed.Schema)
	assert.False(t, parsed.PublishedAt.IsZero())
	assert.Equal(t, event, parsed.Event)
}

func TestPaymentAppliedMessageFromJSON_Invalid(t *testing.T) {
	_, err := PaymentAppliedMessageFromJSON([]byte("{not json"))
	assert.Error(t, err)
}

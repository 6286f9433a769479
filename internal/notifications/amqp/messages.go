package amqp

import (
	"encoding/json"
	"time"

	"github.com/edusuite/school_finance_app/internal/dto"
)

// paymentAppliedSchema versions the wire format for consumers.
const paymentAppliedSchema = "payment.applied.v1"

// PaymentAppliedMessage is the wire envelope for a payment-applied event.
type PaymentAppliedMessage struct {
	Schema      string                  `json:"schema"`
	PublishedAt time.Time               `json:"publishedAt"`
	Event       dto.PaymentAppliedEvent `json:"event"`
}

// NewPaymentAppliedMessage wraps an event in the current envelope.
func NewPaymentAppliedMessage(event dto.PaymentAppliedEvent) *PaymentAppliedMessage {
	return &PaymentAppliedMessage{
		Schema:      paymentAppliedSchema,
		PublishedAt: time.Now(),
		Event:       event,
	}
}

// ToJSON converts the message to JSON bytes.
func (m *PaymentAppliedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// PaymentAppliedMessageFromJSON parses a message from JSON bytes.
func PaymentAppliedMessageFromJSON(data []byte) (*PaymentAppliedMessage, error) {
	var msg PaymentAppliedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

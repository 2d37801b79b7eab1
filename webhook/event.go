package webhook

import (
	"encoding/json"

	"github.com/stripekit/stripekit"
	"github.com/stripekit/stripekit/resources"
)

// EventID identifies an event ("evt_" prefix).
type EventID string

func (id EventID) String() string { return string(id) }

func (id *EventID) UnmarshalJSON(data []byte) error {
	return stripekit.UnmarshalID(data, (*string)(id), "evt")
}

// Event is a verified webhook delivery.
type Event struct {
	ID              EventID             `json:"id"`
	Object          string              `json:"object"`
	APIVersion      string              `json:"api_version,omitempty"`
	Created         stripekit.Timestamp `json:"created"`
	Data            EventData           `json:"data"`
	Livemode        bool                `json:"livemode"`
	PendingWebhooks int64               `json:"pending_webhooks"`
	Type            string              `json:"type"`
}

func (e Event) ObjectID() string { return string(e.ID) }

// EventData carries the affected resource. Object keeps the raw bytes so
// unknown resource types survive round trips; ParseObject resolves the
// typed value.
type EventData struct {
	Object             json.RawMessage `json:"object"`
	PreviousAttributes json.RawMessage `json:"previous_attributes,omitempty"`
}

// UnknownObject is returned by ParseObject for resource types this build
// has no generated struct for. Forward compatibility: new provider types
// do not require a library release to pass through.
type UnknownObject struct {
	Object string
	Raw    json.RawMessage
}

// ParseObject decodes data.object into its typed resource, dispatching on
// the `object` discriminant field.
func (d EventData) ParseObject() (any, error) {
	var probe struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(d.Object, &probe); err != nil {
		return nil, err
	}
	switch probe.Object {
	case "customer":
		v := new(resources.Customer)
		return v, json.Unmarshal(d.Object, v)
	case "payment_intent":
		v := new(resources.PaymentIntent)
		return v, json.Unmarshal(d.Object, v)
	case "checkout.session":
		v := new(resources.CheckoutSession)
		return v, json.Unmarshal(d.Object, v)
	case "product":
		v := new(resources.Product)
		return v, json.Unmarshal(d.Object, v)
	case "price":
		v := new(resources.Price)
		return v, json.Unmarshal(d.Object, v)
	default:
		return UnknownObject{Object: probe.Object, Raw: d.Object}, nil
	}
}

package resources_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stripekit/stripekit"
	"github.com/stripekit/stripekit/internal/stripetest"
	"github.com/stripekit/stripekit/resources"
)

func TestCreateCheckoutSessionWithExpansion(t *testing.T) {
	srv := stripetest.NewServer(t).Respond(200, `{
		"id": "cs_1",
		"object": "checkout.session",
		"mode": "payment",
		"status": "open",
		"created": 1700000000,
		"currency": "usd",
		"amount_total": 2500,
		"customer": {"id": "cus_9", "object": "customer", "created": 1, "email": "jane@example.com"},
		"line_items": {"object": "list", "data": [
			{"id": "li_1", "object": "item", "amount_total": 2500, "currency": "usd", "quantity": 1,
			 "price": {"id": "price_1", "object": "price", "active": true, "created": 1, "currency": "usd", "type": "one_time", "unit_amount": 2500}}
		], "has_more": false, "url": ""}
	}`)
	c := stripekit.New("sk_test_x").WithBaseURL(srv.URL)

	sess, err := resources.NewCreateCheckoutSession(resources.CheckoutSessionModePayment).
		Customer("cus_9").
		AddLineItem(resources.CheckoutSessionLineItemParams{Price: "price_1", Quantity: 1}).
		SuccessURL("https://shop.example/ok").
		Expand("customer", "line_items").
		Send(context.Background(), c)
	require.NoError(t, err)

	require.Equal(t, resources.CheckoutSessionModePayment, sess.Mode)
	cust, ok := sess.Customer.Object()
	require.True(t, ok, "customer should be expanded")
	require.Equal(t, "jane@example.com", cust.Email)
	require.Equal(t, "cus_9", sess.Customer.ID())
	require.Len(t, sess.LineItems.Data, 1)
	require.Equal(t, int64(2500), sess.LineItems.Data[0].Price.UnitAmount)

	req := srv.Last()
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "/v1/checkout/sessions", req.Path)
	require.Equal(t, "payment", req.Form.Get("mode"))
	require.Equal(t, "price_1", req.Form.Get("line_items[0][price]"))
	require.Equal(t, "1", req.Form.Get("line_items[0][quantity]"))
	require.Equal(t, "customer", req.Form.Get("expand[0]"))
	require.Equal(t, "line_items", req.Form.Get("expand[1]"))
}

func TestCheckoutSessionUnexpandedCustomer(t *testing.T) {
	srv := stripetest.NewServer(t).Respond(200, `{
		"id": "cs_1",
		"object": "checkout.session",
		"mode": "payment",
		"status": "complete",
		"created": 1700000000,
		"amount_total": 2500,
		"customer": "cus_9"
	}`)
	c := stripekit.New("sk_test_x").WithBaseURL(srv.URL)

	sess, err := resources.NewRetrieveCheckoutSession("cs_1").Send(context.Background(), c)
	require.NoError(t, err)
	require.Equal(t, "cus_9", sess.Customer.ID())
	_, ok := sess.Customer.Object()
	require.False(t, ok, "bare id must not report an inlined object")
}

func TestCreateCheckoutSessionMissingMode(t *testing.T) {
	c := stripekit.New("sk_test_x").WithBaseURL("http://unused.invalid")

	_, err := resources.NewCreateCheckoutSession("").Send(context.Background(), c)
	e, ok := stripekit.AsError(err)
	require.True(t, ok)
	require.Equal(t, stripekit.KindClient, e.Kind)
}

package payment_gateway

import (
	"context"
	"fmt"
	"strings"
	"tabib-service/internal/app/config"
	"tabib-service/internal/app/contracts"
	"tabib-service/internal/pkg/dto/responses"
	"tabib-service/internal/pkg/exceptions"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

const stripeGatewayName = "stripe"

var minorUnitFactor = decimal.NewFromInt(100)

type stripeService struct {
	client *client.API
}

func NewStripeService(internalConfig *config.InternalConfig) contracts.CardPaymentProcessor {
	api := &client.API{}
	api.Init(internalConfig.PaymentGateway.StripeSecretKey, nil)
	return &stripeService{client: api}
}

func (s *stripeService) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string) (*responses.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount.Mul(minorUnitFactor).IntPart()),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := s.client.PaymentIntents.New(params)
	if err != nil {
		return nil, exceptions.ErrPaymentGateway(err, stripeGatewayName)
	}

	return &responses.PaymentIntent{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Status:          string(intent.Status),
	}, nil
}

func (s *stripeService) RetrieveStatus(ctx context.Context, paymentIntentID string) (*responses.CardIntentStatus, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := s.client.PaymentIntents.Get(paymentIntentID, params)
	if err != nil {
		return nil, exceptions.ErrPaymentGateway(err, stripeGatewayName)
	}

	status := &responses.CardIntentStatus{
		Status: string(intent.Status),
	}
	if intent.LatestCharge != nil {
		status.TransactionID = intent.LatestCharge.ID
	}
	if intent.LastPaymentError != nil {
		status.FailureMessage = intent.LastPaymentError.Msg
	}
	return status, nil
}

func (s *stripeService) Refund(ctx context.Context, paymentIntentID string, amount decimal.Decimal) (string, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Amount:        stripe.Int64(amount.Mul(minorUnitFactor).IntPart()),
	}
	params.Context = ctx

	refund, err := s.client.Refunds.New(params)
	if err != nil {
		return "", exceptions.ErrPaymentGateway(err, stripeGatewayName)
	}
	if string(refund.Status) != contracts.GatewayRefundStatusSucceeded && refund.Status != stripe.RefundStatusPending {
		return "", exceptions.ErrPaymentGateway(fmt.Errorf("refund ended in status %s", refund.Status), stripeGatewayName)
	}
	return refund.ID, nil
}

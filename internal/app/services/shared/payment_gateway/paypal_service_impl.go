package payment_gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"tabib-service/internal/app/config"
	"tabib-service/internal/app/contracts"
	"tabib-service/internal/pkg/constvars"
	"tabib-service/internal/pkg/dto/requests"
	"tabib-service/internal/pkg/dto/responses"
	"tabib-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

const (
	paypalGatewayName          = "paypal"
	paypalOrderStatusCompleted = "COMPLETED"
)

type paypalService struct {
	BaseUrl    string
	ClientID   string
	Secret     string
	httpClient *http.Client
}

func NewPayPalService(internalConfig *config.InternalConfig) contracts.WalletPaymentProcessor {
	return &paypalService{
		BaseUrl:    internalConfig.PaymentGateway.PayPalBaseUrl,
		ClientID:   internalConfig.PaymentGateway.PayPalClientID,
		Secret:     internalConfig.PaymentGateway.PayPalSecret,
		httpClient: &http.Client{},
	}
}

type paypalCaptureResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID string `json:"id"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

func (s *paypalService) Charge(ctx context.Context, request *requests.WalletChargeRequest) (*responses.WalletChargeResult, error) {
	captureURL := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", s.BaseUrl, request.OrderID)
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, captureURL, nil)
	if err != nil {
		return nil, exceptions.ErrPaymentGateway(err, paypalGatewayName)
	}
	httpRequest.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	httpRequest.SetBasicAuth(s.ClientID, s.Secret)

	httpResponse, err := s.httpClient.Do(httpRequest)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return nil, exceptions.ErrPaymentGatewayTimeout(err)
		}
		return nil, exceptions.ErrPaymentGateway(err, paypalGatewayName)
	}
	defer httpResponse.Body.Close()

	var captureResponse paypalCaptureResponse
	if err := json.NewDecoder(httpResponse.Body).Decode(&captureResponse); err != nil {
		return nil, exceptions.ErrPaymentGateway(err, paypalGatewayName)
	}

	result := &responses.WalletChargeResult{
		Status:        captureResponse.Status,
		TransactionID: captureResponse.ID,
	}
	if len(captureResponse.PurchaseUnits) > 0 && len(captureResponse.PurchaseUnits[0].Payments.Captures) > 0 {
		result.TransactionID = captureResponse.PurchaseUnits[0].Payments.Captures[0].ID
	}
	if httpResponse.StatusCode == constvars.StatusCreated && captureResponse.Status == paypalOrderStatusCompleted {
		result.Status = contracts.WalletChargeStatusSucceeded
	} else if result.Message == "" {
		result.Message = fmt.Sprintf("capture ended in status %s", captureResponse.Status)
	}
	return result, nil
}

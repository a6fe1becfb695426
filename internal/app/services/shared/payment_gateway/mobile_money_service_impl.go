package payment_gateway

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"tabib-service/internal/app/config"
	"tabib-service/internal/app/contracts"
	"tabib-service/internal/pkg/constvars"
	"tabib-service/internal/pkg/dto/requests"
	"tabib-service/internal/pkg/dto/responses"
	"tabib-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

const mobileMoneyGatewayName = "mobile_money"

type mobileMoneyService struct {
	BaseUrl    string
	ApiKey     string
	httpClient *http.Client
}

func NewMobileMoneyService(internalConfig *config.InternalConfig) contracts.WalletPaymentProcessor {
	return &mobileMoneyService{
		BaseUrl:    internalConfig.PaymentGateway.MobileMoneyBaseUrl,
		ApiKey:     internalConfig.PaymentGateway.MobileMoneyApiKey,
		httpClient: &http.Client{},
	}
}

type mobileMoneyChargeRequest struct {
	Reference   string `json:"reference"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	PhoneNumber string `json:"phone_number"`
	Provider    string `json:"provider"`
}

type mobileMoneyChargeResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
}

func (s *mobileMoneyService) Charge(ctx context.Context, request *requests.WalletChargeRequest) (*responses.WalletChargeResult, error) {
	payload := mobileMoneyChargeRequest{
		Reference:   request.PaymentID,
		Amount:      request.Amount.StringFixed(2),
		Currency:    request.Currency,
		PhoneNumber: request.PhoneNumber,
		Provider:    request.Provider,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseUrl+"/v1/charges", bytes.NewReader(body))
	if err != nil {
		return nil, exceptions.ErrPaymentGateway(err, mobileMoneyGatewayName)
	}
	httpRequest.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	httpRequest.Header.Set(constvars.HeaderApiKey, s.ApiKey)

	httpResponse, err := s.httpClient.Do(httpRequest)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return nil, exceptions.ErrPaymentGatewayTimeout(err)
		}
		return nil, exceptions.ErrPaymentGateway(err, mobileMoneyGatewayName)
	}
	defer httpResponse.Body.Close()

	var chargeResponse mobileMoneyChargeResponse
	if err := json.NewDecoder(httpResponse.Body).Decode(&chargeResponse); err != nil {
		return nil, exceptions.ErrPaymentGateway(err, mobileMoneyGatewayName)
	}

	result := &responses.WalletChargeResult{
		Status:        chargeResponse.Status,
		TransactionID: chargeResponse.TransactionID,
		Message:       chargeResponse.Message,
	}
	if httpResponse.StatusCode == constvars.StatusOK && chargeResponse.Status == "SUCCESSFUL" {
		result.Status = contracts.WalletChargeStatusSucceeded
	}
	return result, nil
}

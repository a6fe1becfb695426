package middlewares

import (
	"time"

	"tabib-service/internal/app/config"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	PaymentLimiter *RateLimiter
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		PaymentLimiter: NewRateLimiter(internalConfig.App.MaxRequests, time.Second, time.Minute),
	}
}

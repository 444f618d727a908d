package fanout

import (
	"errors"
	"fmt"

	"fihealth/internal/clients"
)

var (
	ErrAuthTokenUnavailable     = errors.New("auth token unavailable")
	ErrDeliveryTimeout          = errors.New("delivery timed out")
	ErrDeliveryConnection       = errors.New("delivery connection failed")
	ErrDeliveryNonSuccessStatus = errors.New("delivery got non-success status")
)

func deliveryError(err error) error {
	switch {
	case err == nil:
		return nil
	case clients.IsTimeout(err):
		return fmt.Errorf("%w: %w", ErrDeliveryTimeout, err)
	case errors.Is(err, clients.ErrUpstreamConnection):
		return fmt.Errorf("%w: %w", ErrDeliveryConnection, err)
	case errors.Is(err, clients.ErrUpstreamStatus):
		return fmt.Errorf("%w: %w", ErrDeliveryNonSuccessStatus, err)
	}
	return err
}

package interfaces

import (
	"context"
	"time"

	"fihealth/internal/models"
)

type NotifierInterface interface {
	Channel() string
	Timeout() time.Duration
	Notify(ctx context.Context, record *models.RegionRecord) error
}

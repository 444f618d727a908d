package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"

	"fihealth/internal/models"
	"fihealth/internal/providers"
	"fihealth/internal/structures"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

var (
	ErrMalformedPayload = errors.New("malformed notification payload")
	ErrNoRegionApplied  = errors.New("notification did not update any region")
)

type NotificationServiceInterface interface {
	ParseRegions(ctx context.Context, payload *models.ContextResponse) []string
	ExtractSingleEntity(ctx context.Context, body []byte) (*models.RegionRecord, error)
}

type NotificationService struct {
	logger   providers.Logger
	store    *models.RegionStore
	excluded map[string]struct{}
}

// regionPatch holds the attributes found in one context element. Nil fields are left untouched.
type regionPatch struct {
	status          *string
	timestampMillis *int64
	elapsedMillis   *float64
}

func (p *regionPatch) apply(r *models.RegionRecord) {
	if p.status != nil {
		r.Status = *p.status
	}
	if p.timestampMillis != nil {
		r.TimestampMillis = *p.timestampMillis
		r.Timestamp = models.FormatTimestamp(*p.timestampMillis)
	}
	if p.elapsedMillis != nil {
		r.ElapsedTimeMillis = models.Millis(*p.elapsedMillis)
		r.ElapsedTime = models.FormatElapsed(*p.elapsedMillis)
	}
}

func (ns *NotificationService) patch(txid string, element *models.ContextElement) *regionPatch {
	p := &regionPatch{}
	for i := range element.Attributes {
		attr := &element.Attributes[i]
		raw := attr.RawValue()
		switch attr.Name {
		case models.AttrSanityStatus:
			p.status = &raw
		case models.AttrSanityTimestamp:
			millis, err := parseMillis(raw)
			if err != nil {
				ns.logger.Warnf(providers.TypeApp, "[%s] Region %s has an unreadable timestamp %q", txid, element.ID, raw)
				continue
			}
			p.timestampMillis = &millis
		case models.AttrSanityElapsedTime:
			elapsed, err := cast.ToFloat64E(raw)
			if err != nil {
				elapsed = math.NaN()
			}
			p.elapsedMillis = &elapsed
		}
	}
	return p
}

func parseMillis(raw string) (int64, error) {
	if millis, err := cast.ToInt64E(raw); err == nil {
		return millis, nil
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a millisecond timestamp: %q", raw)
	}
	return int64(f), nil
}

// ParseRegions applies every region entity of the payload to the store and returns
// the names it updated, in payload order. Excluded regions are removed from the store
// and entities for unknown regions are skipped.
func (ns *NotificationService) ParseRegions(ctx context.Context, payload *models.ContextResponse) []string {
	txid := providers.TransactionID(ctx)
	applied := make([]string, 0, len(payload.ContextResponses))
	for i := range payload.ContextResponses {
		element := &payload.ContextResponses[i].ContextElement
		if element.Type != models.EntityTypeRegion {
			continue
		}
		if _, ok := ns.excluded[element.ID]; ok {
			if err := ns.store.Delete(element.ID); err == nil {
				ns.logger.Infof(providers.TypeApp, "[%s] Region %s is excluded, removed", txid, element.ID)
			}
			continue
		}
		p := ns.patch(txid, element)
		if !ns.store.Update(element.ID, p.apply) {
			ns.logger.Warnf(providers.TypeApp, "[%s] Region %s is not configured, ignored", txid, element.ID)
			continue
		}
		applied = append(applied, element.ID)
	}
	return applied
}

// ExtractSingleEntity decodes a notification body and returns the stored state of the
// first region it updated.
func (ns *NotificationService) ExtractSingleEntity(ctx context.Context, body []byte) (*models.RegionRecord, error) {
	payload, err := decodeNotification(body)
	if err != nil {
		return nil, err
	}
	applied := ns.ParseRegions(ctx, payload)
	if len(applied) == 0 {
		return nil, ErrNoRegionApplied
	}
	record, ok := ns.store.Get(applied[0])
	if !ok {
		return nil, ErrNoRegionApplied
	}
	return record, nil
}

// decodeNotification accepts the document itself or a JSON string holding it.
func decodeNotification(body []byte) (*models.ContextResponse, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '"' {
		var inner string
		if err := json.Unmarshal(body, &inner); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		body = []byte(inner)
	}
	var payload models.ContextResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if payload.ContextResponses == nil {
		return nil, fmt.Errorf("%w: no contextResponses", ErrMalformedPayload)
	}
	return &payload, nil
}

func NewNotificationService(conf *structures.Config, logger providers.Logger, store *models.RegionStore) NotificationServiceInterface {
	excluded := make(map[string]struct{}, len(conf.Cbroker.Filter))
	for _, name := range conf.Cbroker.Filter {
		excluded[name] = struct{}{}
	}
	return &NotificationService{
		logger:   logger,
		store:    store,
		excluded: excluded,
	}
}

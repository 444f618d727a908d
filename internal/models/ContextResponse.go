package models

import json "github.com/goccy/go-json"

const EntityTypeRegion = "region"

// NGSI attribute names carried by region entities.
const (
	AttrSanityStatus      = "sanity_status"
	AttrSanityTimestamp   = "sanity_check_timestamp"
	AttrSanityElapsedTime = "sanity_check_elapsed_time"
)

type ContextAttribute struct {
	Name  string          `json:"name"`
	Type  string          `json:"type,omitempty"`
	Value json.RawMessage `json:"value"`
}

type ContextElement struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	IsPattern  string             `json:"isPattern,omitempty"`
	Attributes []ContextAttribute `json:"attributes"`
}

type ContextResponseItem struct {
	ContextElement ContextElement `json:"contextElement"`
}

// ContextResponse is the shape shared by queryContext responses and notifyContext bodies.
type ContextResponse struct {
	SubscriptionID   string                `json:"subscriptionId,omitempty"`
	ContextResponses []ContextResponseItem `json:"contextResponses"`
}

type EntityQuery struct {
	Type      string `json:"type"`
	IsPattern string `json:"isPattern"`
	ID        string `json:"id"`
}

type QueryContextRequest struct {
	Entities   []EntityQuery `json:"entities"`
	Attributes []string      `json:"attributes,omitempty"`
}

// NewRegionQuery builds the query matching every region entity.
func NewRegionQuery() *QueryContextRequest {
	return &QueryContextRequest{
		Entities: []EntityQuery{
			{Type: EntityTypeRegion, IsPattern: "true", ID: ".*"},
		},
		Attributes: []string{AttrSanityStatus, AttrSanityTimestamp, AttrSanityElapsedTime},
	}
}

// RawValue returns the attribute value as plain text, unquoting JSON strings.
func (a *ContextAttribute) RawValue() string {
	if len(a.Value) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(a.Value, &s); err == nil {
		return s
	}
	return string(a.Value)
}

// Package codex fetches and normalizes raw records from the upstream codex
// API. The adapter is deliberately lossy on failure: any transport or shape
// problem degrades to zero records with a logged reason, never a hard error,
// so schedulers and interactive callers only ever deal in record lists.
package codex

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Pandamonium-Gaming/PandaBot/internal/logger"
	"github.com/Pandamonium-Gaming/PandaBot/internal/metrics"
	"github.com/Pandamonium-Gaming/PandaBot/internal/rawdoc"
)

// Config holds the upstream connection settings.
type Config struct {
	BaseURL       string
	BulkTimeout   time.Duration
	DetailTimeout time.Duration
}

// Client talks to the upstream codex API.
type Client struct {
	http          *resty.Client
	detailTimeout time.Duration
}

// NewClient creates a codex client. Bulk listing calls use the client-wide
// timeout; per-id detail calls use the shorter detail timeout.
func NewClient(cfg Config) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(cfg.BaseURL)
	httpClient.SetTimeout(cfg.BulkTimeout)
	httpClient.SetHeader("Accept", "application/json")

	return &Client{
		http:          httpClient,
		detailTimeout: cfg.DetailTimeout,
	}
}

// fetchBulk GETs a listing endpoint and extracts the record array from
// whatever envelope the upstream wrapped it in.
func (c *Client) fetchBulk(ctx context.Context, resource, path string) []rawdoc.Doc {
	log := logger.FromContext(ctx)

	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		log.Warn(LogMsgUpstreamRequestFailed, "resource", resource, "error", err)
		metrics.UpstreamRequests.WithLabelValues(resource, metrics.OutcomeError).Inc()
		return nil
	}
	if !resp.IsSuccess() {
		log.Warn(LogMsgUpstreamBadStatus, "resource", resource, "status", resp.StatusCode())
		metrics.UpstreamRequests.WithLabelValues(resource, metrics.OutcomeError).Inc()
		return nil
	}

	docs, ok := extractRecords(ctx, resp.Body())
	if !ok {
		metrics.UpstreamRequests.WithLabelValues(resource, metrics.OutcomeError).Inc()
		return nil
	}

	metrics.UpstreamRequests.WithLabelValues(resource, metrics.OutcomeOK).Inc()
	return docs
}

// extractRecords handles the variable envelope shape: a bare array, or an
// object wrapping the array under one of the known keys. A literal "null" or
// empty body means zero records, not an error.
func extractRecords(ctx context.Context, body []byte) ([]rawdoc.Doc, bool) {
	log := logger.FromContext(ctx)

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, true
	}

	var root any
	if err := json.Unmarshal(trimmed, &root); err != nil {
		log.Warn(LogMsgUpstreamMalformedJSON, "error", err)
		return nil, false
	}

	var raw []any
	switch v := root.(type) {
	case []any:
		raw = v
	case map[string]any:
		doc := rawdoc.Doc(v)
		found := false
		for _, key := range envelopeKeys {
			if a, ok := doc.TryArray(key); ok {
				raw = a
				found = true
				break
			}
		}
		if !found {
			log.Warn(LogMsgUpstreamUnknownEnvelope, "keys", doc.Keys())
			return nil, false
		}
	default:
		log.Warn(LogMsgUpstreamUnknownEnvelope, "shape", "scalar")
		return nil, false
	}

	docs := make([]rawdoc.Doc, 0, len(raw))
	for _, entry := range raw {
		doc, ok := rawdoc.FromAny(entry)
		if !ok {
			// One malformed record must not sink the batch.
			log.Debug(LogMsgSkippedMalformedRecord)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, true
}

// FetchItemDetail GETs a single item's detail payload, which also carries the
// createdByRecipes association used by enrichment. Returns (nil, false) on
// any failure.
func (c *Client) FetchItemDetail(ctx context.Context, itemID string) (rawdoc.Doc, bool) {
	log := logger.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, c.detailTimeout)
	defer cancel()

	resp, err := c.http.R().SetContext(ctx).Get(EndpointItems + "/" + itemID)
	if err != nil {
		log.Warn(LogMsgUpstreamRequestFailed, "resource", ResourceItemDetail, "item_id", itemID, "error", err)
		metrics.UpstreamRequests.WithLabelValues(ResourceItemDetail, metrics.OutcomeError).Inc()
		return nil, false
	}
	if !resp.IsSuccess() {
		log.Warn(LogMsgUpstreamBadStatus, "resource", ResourceItemDetail, "item_id", itemID, "status", resp.StatusCode())
		metrics.UpstreamRequests.WithLabelValues(ResourceItemDetail, metrics.OutcomeError).Inc()
		return nil, false
	}

	trimmed := bytes.TrimSpace(resp.Body())
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		metrics.UpstreamRequests.WithLabelValues(ResourceItemDetail, metrics.OutcomeOK).Inc()
		return nil, false
	}

	doc, ok := rawdoc.Parse(trimmed)
	if !ok {
		log.Warn(LogMsgUpstreamMalformedJSON, "resource", ResourceItemDetail, "item_id", itemID)
		metrics.UpstreamRequests.WithLabelValues(ResourceItemDetail, metrics.OutcomeError).Inc()
		return nil, false
	}

	metrics.UpstreamRequests.WithLabelValues(ResourceItemDetail, metrics.OutcomeOK).Inc()
	return doc, true
}

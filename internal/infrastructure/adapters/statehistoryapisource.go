package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"apmdigest/internal/domain/activity"
	apperrors "apmdigest/internal/shared/errors"
	"apmdigest/internal/shared/logger"
	"apmdigest/internal/shared/utils/logutil"
)

const (
	defaultRequestTimeout = 30 * time.Second
	// Maximum response body size for the state history endpoint (32MB)
	maxStateHistoryResponseSize = 32 << 20
	// Maximum error body size read, and the part of it that is logged
	maxErrorBodySize = 4 << 10
	maxErrorBodyLog  = 256
	// Watermark layout sent to the API, millisecond precision in UTC
	sinceLayout = "2006-01-02T15:04:05.000Z07:00"
)

// stateHistoryResponse is the JSON:API document returned by the
// statehistories endpoint.
type stateHistoryResponse struct {
	Data []struct {
		Type       string                `json:"type"`
		ID         json.RawMessage       `json:"id"`
		Attributes activity.ChangeRecord `json:"attributes"`
	} `json:"data"`
}

// StateHistoryAPISource fetches change records from the transcriber API.
type StateHistoryAPISource struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Interface
}

var _ activity.ChangeSource = (*StateHistoryAPISource)(nil)

// NewStateHistoryAPISource creates a source for baseURL, which already
// includes the stage path.
func NewStateHistoryAPISource(baseURL string, timeout time.Duration, logger logger.Interface) *StateHistoryAPISource {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &StateHistoryAPISource{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchSince returns the changes after since in the order the API sends them.
func (s *StateHistoryAPISource) FetchSince(ctx context.Context, since time.Time) ([]activity.ChangeRecord, error) {
	reqURL := s.baseURL + "/api/statehistories/since/" + since.UTC().Format(sinceLayout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewFetchError("failed to create request", err)
	}
	req.Header.Set("Accept", "application/vnd.api+json")

	s.logger.Debugw("requesting state history", "url", reqURL)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewFetchError("failed to fetch state history", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		s.logger.Warnw("state history request rejected",
			"status", resp.StatusCode,
			"body", logutil.TruncateForLog(string(body), maxErrorBodyLog),
		)
		return nil, apperrors.NewFetchError(fmt.Sprintf("unexpected status code %d", resp.StatusCode), nil)
	}

	records, err := DecodeStateHistory(io.LimitReader(resp.Body, maxStateHistoryResponseSize))
	if err != nil {
		return nil, err
	}

	s.logger.Infow("fetched state history", "count", len(records))
	return records, nil
}

// DecodeStateHistory reads a statehistories JSON:API document and returns
// the attributes of each resource in document order.
func DecodeStateHistory(r io.Reader) ([]activity.ChangeRecord, error) {
	var doc stateHistoryResponse
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperrors.NewFetchError("failed to decode state history", err)
	}

	records := make([]activity.ChangeRecord, 0, len(doc.Data))
	for _, item := range doc.Data {
		records = append(records, item.Attributes)
	}
	return records, nil
}

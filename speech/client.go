package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/kbukum/meetscribe/errors"
	"github.com/kbukum/meetscribe/httpclient"
	"github.com/kbukum/meetscribe/locale"
	"github.com/kbukum/meetscribe/logger"
	"github.com/kbukum/meetscribe/util"
)

// subscriptionKeyHeader carries the service credential on every call.
const subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

// transcriptionFileKind marks the transcript entry in a job's file listing.
const transcriptionFileKind = "Transcription"

// Client talks to the batch transcription API. It is stateless: every
// method maps to a single HTTP exchange and callers drive their own
// polling cadence. Safe for concurrent use.
type Client struct {
	cfg  Config
	http *httpclient.Client
	log  *logger.Logger
}

// NewClient validates the configuration and builds a client for the
// configured region or endpoint.
func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	hc, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.baseURL(),
		Timeout: cfg.Timeout,
		Auth:    httpclient.APIKeyAuthHeader(cfg.Key, subscriptionKeyHeader),
	})
	if err != nil {
		return nil, apperrors.Configuration("speech", err.Error())
	}
	l := log.WithComponent("speech")
	l.Debug("speech client ready", map[string]interface{}{
		"endpoint": cfg.baseURL(),
		"key":      util.MaskSecret(cfg.Key, 4),
	})
	return &Client{cfg: cfg, http: hc, log: l}, nil
}

// Submit starts a batch transcription job for the staged audio and returns
// the assigned job identity. The request is not retried; transport failures
// and non-success responses surface as retryable upstream errors.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (*Job, error) {
	req.applyDefaults()
	if err := req.validate(); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/transcriptions",
		Body:   c.submitPayload(req),
	})
	if err != nil {
		return nil, apperrors.UpstreamRequest("submit", 0, "").WithCause(err)
	}
	if !resp.IsSuccess() {
		return nil, apperrors.UpstreamRequest("submit", resp.StatusCode, string(resp.Body))
	}

	id, statusURL, err := extractJobID(resp.StatusCode, resp.Headers, resp.Body, resp.ContentType())
	if err != nil {
		return nil, err
	}
	c.log.Info("transcription job submitted", logger.Fields(
		logger.FieldJobID, id,
		logger.FieldLocale, req.Locale,
	))
	return &Job{ID: id, StatusURL: statusURL}, nil
}

// submitPayload builds the job creation body. A language-identification
// block is included only when two or more candidate locales are present;
// the remote contract rejects smaller candidate sets.
func (c *Client) submitPayload(req SubmitRequest) map[string]any {
	properties := map[string]any{
		"diarizationEnabled": true,
		"diarization": map[string]any{
			"speakers": map[string]any{
				"minCount": req.MinSpeakers,
				"maxCount": req.MaxSpeakers,
			},
		},
		"wordLevelTimestampsEnabled": req.WordTimestamps,
		"timeToLive":                 fmt.Sprintf("PT%dH", c.cfg.resultTTLHours()),
	}
	if len(req.CandidateLocales) >= 2 {
		properties["languageIdentification"] = map[string]any{
			"candidateLocales": req.CandidateLocales,
			"mode":             languageIDMode(req.LanguageIDMode),
		}
	}
	displayName := req.DisplayName
	if displayName == "" {
		displayName = "meetscribe transcription"
	}
	return map[string]any{
		"displayName": displayName,
		"locale":      req.Locale,
		"contentUrls": []string{req.AudioURL},
		"properties":  properties,
	}
}

// languageIDMode renders the identification mode in the remote contract's
// capitalized form.
func languageIDMode(m locale.Mode) string {
	if m == locale.ModeContinuous {
		return "Continuous"
	}
	return "Single"
}

// Status fetches the current state of a job. The provider's status string
// is preserved verbatim; callers compare with Status.Is.
func (c *Client) Status(ctx context.Context, jobID string) (*JobStatus, error) {
	if jobID == "" {
		return nil, apperrors.MissingField("transcriptionId")
	}
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/transcriptions/" + jobID,
	})
	if err != nil {
		return nil, apperrors.UpstreamRequest("status", 0, "").WithCause(err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NotFound("transcription", jobID)
	}
	if !resp.IsSuccess() {
		return nil, apperrors.UpstreamRequest("status", resp.StatusCode, string(resp.Body))
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil || body.Status == "" {
		return nil, apperrors.ContractViolation("status", "response carries no status field").
			WithDetail("upstream_status", resp.StatusCode).
			WithDetail("content_type", resp.ContentType())
	}
	return &JobStatus{State: Status(body.Status), Raw: resp.Body}, nil
}

// Result fetches and normalizes a finished job's transcript. For jobs that
// have not succeeded it returns the observed state with no segments and
// performs no file or content calls.
func (c *Client) Result(ctx context.Context, jobID string) (*Result, error) {
	status, err := c.Status(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !status.State.Is(StatusSucceeded) {
		return &Result{State: status.State}, nil
	}

	contentURL, err := c.transcriptURL(ctx, jobID)
	if err != nil {
		return nil, err
	}
	segments, combined, err := c.fetchTranscript(ctx, contentURL)
	if err != nil {
		return nil, err
	}
	c.log.Info("transcription result fetched", logger.Fields(
		logger.FieldJobID, jobID,
		"segments", len(segments),
	))
	return &Result{State: status.State, Segments: segments, CombinedText: combined}, nil
}

// transcriptURL lists the job's files and returns the transcript's
// content URL.
func (c *Client) transcriptURL(ctx context.Context, jobID string) (string, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/transcriptions/" + jobID + "/files",
	})
	if err != nil {
		return "", apperrors.UpstreamRequest("files", 0, "").WithCause(err)
	}
	if !resp.IsSuccess() {
		return "", apperrors.UpstreamRequest("files", resp.StatusCode, string(resp.Body))
	}

	var list transcriptFileList
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return "", apperrors.ContractViolation("files", "response is not a file listing").
			WithDetail("upstream_status", resp.StatusCode)
	}
	for _, f := range list.Values {
		if strings.EqualFold(f.Kind, transcriptionFileKind) && f.Links.ContentURL != "" {
			return f.Links.ContentURL, nil
		}
	}
	return "", apperrors.ContractViolation("files", "listing carries no transcription file").
		WithDetail("file_count", len(list.Values))
}

// fetchTranscript downloads the transcript document from its signed URL.
// The URL is pre-authorized, so the subscription key is withheld.
func (c *Client) fetchTranscript(ctx context.Context, contentURL string) ([]TranscriptSegment, string, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   contentURL,
		Auth:   httpclient.NoAuth(),
	})
	if err != nil {
		return nil, "", apperrors.UpstreamRequest("content", 0, "").WithCause(err)
	}
	if !resp.IsSuccess() {
		return nil, "", apperrors.UpstreamRequest("content", resp.StatusCode, string(resp.Body))
	}
	return parseTranscript(resp.Body)
}

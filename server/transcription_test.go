package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/meetscribe/errors"
	"github.com/kbukum/meetscribe/logger"
	"github.com/kbukum/meetscribe/speech"
	"github.com/kbukum/meetscribe/staging"
)

type fakeSpeech struct {
	submitted *speech.SubmitRequest
	submitErr error
	status    speech.Status
	statusErr error
	result    *speech.Result
	resultErr error
}

func (f *fakeSpeech) Submit(_ context.Context, req speech.SubmitRequest) (*speech.Job, error) {
	f.submitted = &req
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &speech.Job{ID: "job-1"}, nil
}

func (f *fakeSpeech) Status(_ context.Context, jobID string) (*speech.JobStatus, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &speech.JobStatus{State: f.status}, nil
}

func (f *fakeSpeech) Result(_ context.Context, jobID string) (*speech.Result, error) {
	if f.resultErr != nil {
		return nil, f.resultErr
	}
	return f.result, nil
}

type fakeStager struct {
	stagedName string
	err        error
}

func (f *fakeStager) Stage(_ context.Context, localPath, originalName, contentType string) (*staging.StagedAudio, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, err := os.Stat(localPath); err != nil {
		return nil, err
	}
	f.stagedName = originalName
	return &staging.StagedAudio{
		Object:    "audio/staged.wav",
		URL:       "https://blobs.example/audio/staged.wav?sig=abc",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func newTestRouter(svc *fakeSpeech, stager *fakeStager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewTranscriptionHandler(svc, stager, logger.NewDefault("test")).Register(engine)
	return engine
}

func multipartUpload(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("audio", "meeting.wav")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = fw.Write([]byte("RIFF fake audio"))
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	_ = w.Close()
	return &buf, w.FormDataContentType()
}

func TestSubmit(t *testing.T) {
	svc := &fakeSpeech{}
	stager := &fakeStager{}
	router := newTestRouter(svc, stager)

	body, contentType := multipartUpload(t, map[string]string{
		"locale":           "ja_jp",
		"candidateLocales": "en-US, de",
		"minSpeakers":      "2",
		"maxSpeakers":      "5",
		"wordTimestamps":   "true",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/transcriptions", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["ok"] != true {
		t.Error("ok not set")
	}
	if resp["transcriptionId"] != "job-1" {
		t.Errorf("transcriptionId = %v", resp["transcriptionId"])
	}
	if resp["locale"] != "ja-JP" {
		t.Errorf("locale = %v, want normalized ja-JP", resp["locale"])
	}

	if svc.submitted == nil {
		t.Fatal("submit not called")
	}
	if svc.submitted.AudioURL != "https://blobs.example/audio/staged.wav?sig=abc" {
		t.Errorf("AudioURL = %q", svc.submitted.AudioURL)
	}
	if svc.submitted.Locale != "ja-JP" {
		t.Errorf("Locale = %q", svc.submitted.Locale)
	}
	want := []string{"ja-JP", "en-US", "de-DE"}
	if len(svc.submitted.CandidateLocales) != len(want) {
		t.Fatalf("CandidateLocales = %v, want %v", svc.submitted.CandidateLocales, want)
	}
	for i, w := range want {
		if svc.submitted.CandidateLocales[i] != w {
			t.Errorf("CandidateLocales[%d] = %q, want %q", i, svc.submitted.CandidateLocales[i], w)
		}
	}
	if svc.submitted.MinSpeakers != 2 || svc.submitted.MaxSpeakers != 5 {
		t.Errorf("speakers = %d/%d", svc.submitted.MinSpeakers, svc.submitted.MaxSpeakers)
	}
	if !svc.submitted.WordTimestamps {
		t.Error("WordTimestamps not propagated")
	}
	if stager.stagedName != "meeting.wav" {
		t.Errorf("staged name = %q", stager.stagedName)
	}
}

func TestSubmit_MissingAudio(t *testing.T) {
	router := newTestRouter(&fakeSpeech{}, &fakeStager{})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("locale", "en-US")
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/transcriptions", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp apperrors.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.OK {
		t.Error("ok must be false")
	}
	if resp.Error.Code != apperrors.ErrCodeMissingField {
		t.Errorf("code = %v", resp.Error.Code)
	}
}

func TestSubmit_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
	}{
		{"bad mode", map[string]string{"mode": "both"}},
		{"bad minSpeakers", map[string]string{"minSpeakers": "two"}},
		{"min above max", map[string]string{"minSpeakers": "5", "maxSpeakers": "2"}},
		{"zero speakers", map[string]string{"minSpeakers": "0", "maxSpeakers": "0"}},
		{"bad wordTimestamps", map[string]string{"wordTimestamps": "maybe"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&fakeSpeech{}, &fakeStager{})
			body, contentType := multipartUpload(t, tc.fields)
			req := httptest.NewRequest(http.MethodPost, "/api/transcriptions", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSubmit_UpstreamErrorPropagates(t *testing.T) {
	svc := &fakeSpeech{submitErr: apperrors.UpstreamRequest("submit", 503, "busy")}
	router := newTestRouter(svc, &fakeStager{})

	body, contentType := multipartUpload(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/transcriptions", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp apperrors.ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !resp.Error.Retryable {
		t.Error("upstream errors must be marked retryable")
	}
}

func TestStatus(t *testing.T) {
	svc := &fakeSpeech{status: speech.StatusRunning}
	router := newTestRouter(svc, &fakeStager{})

	req := httptest.NewRequest(http.MethodGet, "/api/transcriptions/job-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["status"] != "Running" {
		t.Errorf("status = %v, want the provider string verbatim", resp["status"])
	}
	if resp["terminal"] != false {
		t.Errorf("terminal = %v", resp["terminal"])
	}
}

func TestStatus_NotFound(t *testing.T) {
	svc := &fakeSpeech{statusErr: apperrors.NotFound("transcription", "nope")}
	router := newTestRouter(svc, &fakeStager{})

	req := httptest.NewRequest(http.MethodGet, "/api/transcriptions/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestResult(t *testing.T) {
	end := int64(2500)
	speaker := 1
	svc := &fakeSpeech{result: &speech.Result{
		State: speech.StatusSucceeded,
		Segments: []speech.TranscriptSegment{
			{Speaker: &speaker, StartMs: 1000, EndMs: &end, Text: "Hello."},
		},
		CombinedText: "Hello.",
	}}
	router := newTestRouter(svc, &fakeStager{})

	req := httptest.NewRequest(http.MethodGet, "/api/transcriptions/job-1/result", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		OK           bool                       `json:"ok"`
		Status       string                     `json:"status"`
		CombinedText string                     `json:"combinedText"`
		Segments     []speech.TranscriptSegment `json:"segments"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK || resp.Status != "Succeeded" || resp.CombinedText != "Hello." {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(resp.Segments) != 1 || resp.Segments[0].StartMs != 1000 {
		t.Errorf("segments = %+v", resp.Segments)
	}
}

func TestResult_UnfinishedJobHasEmptySegments(t *testing.T) {
	svc := &fakeSpeech{result: &speech.Result{State: speech.StatusRunning}}
	router := newTestRouter(svc, &fakeStager{})

	req := httptest.NewRequest(http.MethodGet, "/api/transcriptions/job-1/result", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	segments, ok := resp["segments"].([]any)
	if !ok {
		t.Fatalf("segments is %T, want an array even when empty", resp["segments"])
	}
	if len(segments) != 0 {
		t.Errorf("segments = %v", segments)
	}
}

package server

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/meetscribe/errors"
	"github.com/kbukum/meetscribe/locale"
	"github.com/kbukum/meetscribe/logger"
	"github.com/kbukum/meetscribe/speech"
	"github.com/kbukum/meetscribe/staging"
)

// SpeechService is the slice of the speech client the handler needs.
type SpeechService interface {
	Submit(ctx context.Context, req speech.SubmitRequest) (*speech.Job, error)
	Status(ctx context.Context, jobID string) (*speech.JobStatus, error)
	Result(ctx context.Context, jobID string) (*speech.Result, error)
}

// AudioStager uploads a local audio file and returns a signed read URL.
type AudioStager interface {
	Stage(ctx context.Context, localPath, originalName, contentType string) (*staging.StagedAudio, error)
}

// TranscriptionHandler serves the transcription routes: upload-and-submit,
// status, and result.
type TranscriptionHandler struct {
	speech SpeechService
	stager AudioStager
	log    *logger.Logger
}

// NewTranscriptionHandler builds the handler.
func NewTranscriptionHandler(svc SpeechService, stager AudioStager, log *logger.Logger) *TranscriptionHandler {
	return &TranscriptionHandler{speech: svc, stager: stager, log: log.WithComponent("transcription")}
}

// Register mounts the transcription routes on the engine.
func (h *TranscriptionHandler) Register(engine *gin.Engine) {
	api := engine.Group("/api")
	api.POST("/transcriptions", h.Submit)
	api.GET("/transcriptions/:id", h.Status)
	api.GET("/transcriptions/:id/result", h.Result)
}

// Submit accepts a multipart audio upload, stages it to object storage,
// and starts a batch transcription job.
//
// Form fields: audio (file, required), locale, candidateLocales
// (comma-separated), mode (single|continuous), minSpeakers, maxSpeakers,
// wordTimestamps (bool), displayName.
func (h *TranscriptionHandler) Submit(c *gin.Context) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		RespondWithError(c, apperrors.MissingField("audio"))
		return
	}

	params, err := parseSubmitParams(c)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	tmp, err := os.CreateTemp("", "meetscribe-upload-*"+filepath.Ext(fileHeader.Filename))
	if err != nil {
		RespondWithError(c, apperrors.Internal(err))
		return
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		RespondWithError(c, apperrors.Internal(err))
		return
	}

	staged, err := h.stager.Stage(c.Request.Context(), tmpPath, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		RespondWithError(c, apperrors.Internal(err))
		return
	}

	candidates := locale.BuildCandidateSet(params.locale, params.candidateLocales, params.mode)

	job, err := h.speech.Submit(c.Request.Context(), speech.SubmitRequest{
		AudioURL:         staged.URL,
		DisplayName:      params.displayName,
		Locale:           candidates[0],
		CandidateLocales: candidates,
		LanguageIDMode:   params.mode,
		MinSpeakers:      params.minSpeakers,
		MaxSpeakers:      params.maxSpeakers,
		WordTimestamps:   params.wordTimestamps,
	})
	if err != nil {
		RespondWithError(c, err)
		return
	}

	h.log.Info("transcription submitted", logger.Fields(
		logger.FieldJobID, job.ID,
		logger.FieldObject, staged.Object,
	))
	RespondCreated(c, gin.H{
		"transcriptionId": job.ID,
		"locale":          candidates[0],
		"audioObject":     staged.Object,
	})
}

// Status reports the job's current state as observed from the remote
// service.
func (h *TranscriptionHandler) Status(c *gin.Context) {
	id := c.Param("id")
	status, err := h.speech.Status(c.Request.Context(), id)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"transcriptionId": id,
		"status":          status.State,
		"terminal":        status.State.Terminal(),
	})
}

// Result returns the normalized transcript. Unfinished jobs answer with
// their state and no segments.
func (h *TranscriptionHandler) Result(c *gin.Context) {
	id := c.Param("id")
	result, err := h.speech.Result(c.Request.Context(), id)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	segments := result.Segments
	if segments == nil {
		segments = []speech.TranscriptSegment{}
	}
	RespondOK(c, gin.H{
		"transcriptionId": id,
		"status":          result.State,
		"combinedText":    result.CombinedText,
		"segments":        segments,
	})
}

type submitParams struct {
	locale           string
	candidateLocales []string
	mode             locale.Mode
	minSpeakers      int
	maxSpeakers      int
	wordTimestamps   bool
	displayName      string
}

func parseSubmitParams(c *gin.Context) (*submitParams, error) {
	p := &submitParams{
		locale:      c.PostForm("locale"),
		displayName: c.PostForm("displayName"),
		mode:        locale.ModeSingle,
	}

	if raw := c.PostForm("candidateLocales"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				p.candidateLocales = append(p.candidateLocales, part)
			}
		}
	}

	switch mode := c.PostForm("mode"); mode {
	case "", string(locale.ModeSingle):
	case string(locale.ModeContinuous):
		p.mode = locale.ModeContinuous
	default:
		return nil, apperrors.InvalidInput("mode", "must be single or continuous")
	}

	var err error
	if p.minSpeakers, err = formInt(c, "minSpeakers", speech.DefaultMinSpeakers); err != nil {
		return nil, err
	}
	if p.maxSpeakers, err = formInt(c, "maxSpeakers", speech.DefaultMaxSpeakers); err != nil {
		return nil, err
	}
	if p.minSpeakers < 1 || p.maxSpeakers < 1 {
		return nil, apperrors.InvalidInput("speakers", "speaker counts must be positive")
	}
	if p.minSpeakers > p.maxSpeakers {
		return nil, apperrors.InvalidInput("minSpeakers", "must not exceed maxSpeakers")
	}

	if raw := c.PostForm("wordTimestamps"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, apperrors.InvalidInput("wordTimestamps", "must be a boolean")
		}
		p.wordTimestamps = v
	}

	return p, nil
}

func formInt(c *gin.Context, field string, fallback int) (int, error) {
	raw := c.PostForm(field)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.InvalidInput(field, "must be an integer")
	}
	return v, nil
}

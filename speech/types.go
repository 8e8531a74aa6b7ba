package speech

import (
	"encoding/json"

	apperrors "github.com/kbukum/meetscribe/errors"
	"github.com/kbukum/meetscribe/locale"
)

// Default speaker bounds applied when the caller supplies none.
const (
	DefaultMinSpeakers = 1
	DefaultMaxSpeakers = 6
)

// SubmitRequest holds parameters for starting a batch transcription job.
type SubmitRequest struct {
	// AudioURL is the signed read URL the service fetches the audio from.
	AudioURL string
	// DisplayName is a human-readable job name.
	DisplayName string
	// Locale is the normalized primary locale. Required by the remote
	// contract even when CandidateLocales is also present.
	Locale string
	// CandidateLocales is the ordered candidate set for automatic language
	// identification. A language-ID block is sent only with 2+ entries.
	CandidateLocales []string
	// LanguageIDMode selects single or continuous language identification.
	LanguageIDMode locale.Mode
	// MinSpeakers and MaxSpeakers bound the expected speaker count.
	MinSpeakers int
	MaxSpeakers int
	// WordTimestamps enables word-level timestamps in the result.
	WordTimestamps bool
}

// applyDefaults fills in the caller-side speaker-bound defaults.
func (r *SubmitRequest) applyDefaults() {
	if r.MinSpeakers == 0 {
		r.MinSpeakers = DefaultMinSpeakers
	}
	if r.MaxSpeakers == 0 {
		r.MaxSpeakers = DefaultMaxSpeakers
	}
	if r.LanguageIDMode == "" {
		r.LanguageIDMode = locale.ModeSingle
	}
}

// validate enforces the request invariants.
func (r *SubmitRequest) validate() error {
	if r.AudioURL == "" {
		return apperrors.MissingField("audioUrl")
	}
	if r.Locale == "" {
		return apperrors.MissingField("locale")
	}
	if r.MinSpeakers < 1 || r.MaxSpeakers < 1 {
		return apperrors.InvalidInput("speakers", "speaker counts must be positive")
	}
	if r.MinSpeakers > r.MaxSpeakers {
		return apperrors.InvalidInput("minSpeakers", "must not exceed maxSpeakers")
	}
	return nil
}

// Job identifies a submitted batch transcription job.
type Job struct {
	// ID is the opaque job identifier assigned by the remote service.
	ID string
	// StatusURL is the job's self link, used for polling.
	StatusURL string
}

// JobStatus is the observed state of a job.
type JobStatus struct {
	// State is the provider's status string, verbatim.
	State Status
	// Raw is the provider's status response body.
	Raw json.RawMessage
}

// TranscriptSegment is one diarized utterance.
type TranscriptSegment struct {
	// Speaker is the speaker identifier; nil means the speaker was not
	// resolved.
	Speaker *int `json:"speaker"`
	// StartMs is the start offset in milliseconds.
	StartMs int64 `json:"startMs"`
	// EndMs is the end offset in milliseconds; nil when the duration was
	// not resolvable.
	EndMs *int64 `json:"endMs"`
	// Text is the recognized text.
	Text string `json:"text"`
}

// Result holds a fetched, normalized transcription result. Segments are
// sorted ascending by start offset; CombinedText is recomputed on every
// fetch and never cached.
type Result struct {
	State        Status              `json:"status"`
	Segments     []TranscriptSegment `json:"segments"`
	CombinedText string              `json:"combinedText"`
}

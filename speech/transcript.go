package speech

import (
	"encoding/json"
	"sort"
	"strings"

	apperrors "github.com/kbukum/meetscribe/errors"
)

// transcriptFileList is the provider's files listing for a finished job.
type transcriptFileList struct {
	Values []transcriptFile `json:"values"`
}

type transcriptFile struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Links struct {
		ContentURL string `json:"contentUrl"`
	} `json:"links"`
}

// transcriptContent is the downloaded transcript document.
type transcriptContent struct {
	CombinedRecognizedPhrases []struct {
		Display string `json:"display"`
		Lexical string `json:"lexical"`
	} `json:"combinedRecognizedPhrases"`
	RecognizedPhrases []recognizedPhrase `json:"recognizedPhrases"`
}

// recognizedPhrase mirrors one recognized phrase on the wire. The provider
// has shipped several field spellings for the speaker label and two
// encodings for offsets, so all variants are carried and resolved during
// normalization.
type recognizedPhrase struct {
	Speaker         *int   `json:"speaker"`
	SpeakerID       *int   `json:"speakerId"`
	SpeakerNumber   *int   `json:"speakerNumber"`
	OffsetInTicks   *int64 `json:"offsetInTicks"`
	DurationInTicks *int64 `json:"durationInTicks"`
	Offset          string `json:"offset"`
	Duration        string `json:"duration"`
	NBest           []struct {
		Display string `json:"display"`
		Lexical string `json:"lexical"`
	} `json:"nBest"`
}

// speaker picks the first non-nil speaker field variant.
func (p *recognizedPhrase) speaker() *int {
	for _, v := range []*int{p.Speaker, p.SpeakerID, p.SpeakerNumber} {
		if v != nil {
			return v
		}
	}
	return nil
}

// text prefers the display form of the top hypothesis, falling back to
// the lexical form.
func (p *recognizedPhrase) text() string {
	if len(p.NBest) == 0 {
		return ""
	}
	if d := strings.TrimSpace(p.NBest[0].Display); d != "" {
		return d
	}
	return strings.TrimSpace(p.NBest[0].Lexical)
}

// startMillis resolves the phrase start, preferring ticks over the
// ISO-8601 string form. The second return reports whether any start was
// present at all.
func (p *recognizedPhrase) startMillis() (int64, bool) {
	if p.OffsetInTicks != nil {
		return ticksToMillis(*p.OffsetInTicks), true
	}
	if p.Offset != "" {
		if ms, ok := parseISODurationMillis(p.Offset); ok {
			return ms, true
		}
	}
	return 0, false
}

// durationMillis resolves the phrase duration when present.
func (p *recognizedPhrase) durationMillis() (int64, bool) {
	if p.DurationInTicks != nil {
		return ticksToMillis(*p.DurationInTicks), true
	}
	if p.Duration != "" {
		if ms, ok := parseISODurationMillis(p.Duration); ok {
			return ms, true
		}
	}
	return 0, false
}

// parseTranscript decodes a downloaded transcript document and normalizes
// its phrases into ordered segments. Phrases without a resolvable start
// are dropped.
func parseTranscript(data []byte) ([]TranscriptSegment, string, error) {
	var doc transcriptContent
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, "", apperrors.DownloadParse("transcript", err)
	}

	segments := make([]TranscriptSegment, 0, len(doc.RecognizedPhrases))
	for i := range doc.RecognizedPhrases {
		p := &doc.RecognizedPhrases[i]
		start, ok := p.startMillis()
		if !ok {
			continue
		}
		seg := TranscriptSegment{
			Speaker: p.speaker(),
			StartMs: start,
			Text:    p.text(),
		}
		if d, ok := p.durationMillis(); ok {
			end := start + d
			seg.EndMs = &end
		}
		segments = append(segments, seg)
	}
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].StartMs < segments[j].StartMs
	})

	return segments, combinedText(segments), nil
}

// combinedText joins segment texts with single spaces, skipping empties.
func combinedText(segments []TranscriptSegment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

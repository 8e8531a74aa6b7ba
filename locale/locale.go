package locale

import "strings"

// DefaultLocale is substituted when the primary hint is empty or unknown.
const DefaultLocale = "en-US"

// Mode selects the language-identification strategy offered to the remote
// service. It caps how many candidate locales a request may carry.
type Mode string

const (
	// ModeSingle identifies one language for the whole recording.
	ModeSingle Mode = "single"
	// ModeContinuous re-identifies the language continuously.
	ModeContinuous Mode = "continuous"
)

const (
	maxCandidatesSingle     = 15
	maxCandidatesContinuous = 10
)

// Cap returns the maximum candidate-set length for the mode.
func (m Mode) Cap() int {
	if m == ModeContinuous {
		return maxCandidatesContinuous
	}
	return maxCandidatesSingle
}

// defaultRegions maps bare 2-letter language codes, as emitted by mobile OS
// locale APIs, to the region the speech service expects.
var defaultRegions = map[string]string{
	"ar": "SA",
	"cs": "CZ",
	"da": "DK",
	"de": "DE",
	"el": "GR",
	"en": "US",
	"es": "ES",
	"fi": "FI",
	"fr": "FR",
	"he": "IL",
	"hi": "IN",
	"hu": "HU",
	"id": "ID",
	"it": "IT",
	"ja": "JP",
	"ko": "KR",
	"ms": "MY",
	"nb": "NO",
	"nl": "NL",
	"no": "NO",
	"pl": "PL",
	"pt": "BR",
	"ro": "RO",
	"ru": "RU",
	"sv": "SE",
	"th": "TH",
	"tr": "TR",
	"uk": "UA",
	"vi": "VN",
	"zh": "CN",
}

// Normalize turns an arbitrary client-supplied locale string into the
// canonical tag format the remote service accepts. Rules are applied in
// order: underscore replacement, unknown substitution, bare-language region
// expansion, Chinese script-to-region mapping, positional re-casing. Returns
// fallback if the result is still empty.
func Normalize(raw, fallback string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "_", "-")
	if s == "" || strings.EqualFold(s, "und") {
		return fallback
	}

	parts := strings.Split(s, "-")
	lang := strings.ToLower(parts[0])

	if len(parts) == 1 {
		if region, ok := defaultRegions[lang]; ok && len(lang) == 2 {
			return lang + "-" + region
		}
		if lang == "" {
			return fallback
		}
		return lang
	}

	if lang == "zh" {
		if tag, ok := normalizeChinese(parts[1:]); ok {
			return tag
		}
	}

	out := make([]string, 0, len(parts))
	out = append(out, lang)
	for _, sub := range parts[1:] {
		out = append(out, recaseSubtag(sub))
	}
	result := strings.Join(out, "-")
	if result == "" {
		return fallback
	}
	return result
}

// normalizeChinese maps Hans/Hant script subtags to concrete regions when no
// region is otherwise present: Hans becomes CN (unless the tag carries SG),
// Hant becomes TW (unless the tag carries HK or MO). The script subtag is
// collapsed away because the service keys Chinese variants on region alone.
func normalizeChinese(subtags []string) (string, bool) {
	var script, region string
	for _, sub := range subtags {
		switch {
		case len(sub) == 4 && isAlpha(sub):
			script = titleCase(sub)
		case len(sub) == 2 && isAlpha(sub):
			region = strings.ToUpper(sub)
		}
	}
	switch script {
	case "Hans":
		if region == "" {
			region = "CN"
		}
		return "zh-" + region, true
	case "Hant":
		if region == "" {
			region = "TW"
		}
		return "zh-" + region, true
	}
	return "", false
}

// recaseSubtag applies positional casing: 4-letter scripts are Title-case,
// 2-letter regions are UPPERCASE, anything else passes through unchanged.
func recaseSubtag(sub string) string {
	switch {
	case len(sub) == 4 && isAlpha(sub):
		return titleCase(sub)
	case len(sub) == 2 && isAlpha(sub):
		return strings.ToUpper(sub)
	default:
		return sub
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return s != ""
}

// BuildCandidateSet normalizes the primary hint and every candidate hint
// into an ordered, deduplicated list with the normalized primary always at
// index 0, truncated to the mode's cap. Candidates that normalize to empty
// are dropped. The primary is forced to the front even when deduplication
// would have placed it elsewhere; the primary itself falls back to
// DefaultLocale when empty or unknown.
func BuildCandidateSet(primaryRaw string, candidateRaw []string, mode Mode) []string {
	primary := Normalize(primaryRaw, DefaultLocale)

	seen := make(map[string]bool, len(candidateRaw)+1)
	ordered := make([]string, 0, len(candidateRaw)+1)
	for _, raw := range candidateRaw {
		n := Normalize(raw, "")
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		ordered = append(ordered, n)
	}

	// Force the primary to the front regardless of where dedup left it.
	out := make([]string, 0, len(ordered)+1)
	out = append(out, primary)
	for _, tag := range ordered {
		if tag == primary {
			continue
		}
		out = append(out, tag)
	}

	if limit := mode.Cap(); len(out) > limit {
		out = out[:limit]
	}
	return out
}

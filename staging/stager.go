package staging

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/meetscribe/logger"
	"github.com/kbukum/meetscribe/storage"
)

// DefaultURLTTL is how long a signed read URL stays valid when the config
// does not say otherwise. The remote service must start fetching the audio
// before then.
const DefaultURLTTL = 60 * time.Minute

// Config holds staging configuration.
type Config struct {
	// Prefix is an optional path prefix for staged object names.
	Prefix string `yaml:"prefix" mapstructure:"prefix"`

	// URLTTLMinutes is the signed-URL validity window in minutes.
	URLTTLMinutes int `yaml:"url_ttl_minutes" mapstructure:"url_ttl_minutes"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.URLTTLMinutes <= 0 {
		c.URLTTLMinutes = int(DefaultURLTTL / time.Minute)
	}
}

// URLTTL returns the signed-URL validity window as a duration.
func (c *Config) URLTTL() time.Duration {
	return time.Duration(c.URLTTLMinutes) * time.Minute
}

// StagedAudio is the result of staging: a storage object name, a
// time-limited read URL, and the URL's expiry instant. Created once per
// request and never mutated.
type StagedAudio struct {
	Object    string
	URL       string
	ExpiresAt time.Time
}

// Stager uploads audio files to object storage and signs read URLs for them.
// It is stateless and safe for concurrent use.
type Stager struct {
	store storage.Storage
	cfg   Config
	log   *logger.Logger
}

// NewStager creates a new audio stager.
func NewStager(store storage.Storage, cfg Config, log *logger.Logger) *Stager {
	cfg.ApplyDefaults()
	return &Stager{
		store: store,
		cfg:   cfg,
		log:   log.WithComponent("staging"),
	}
}

// Stage uploads the file at localPath and returns a signed read URL for it.
// originalName supplies the object-name extension; contentType tags the
// object when known. Any failure fails the whole start operation; there is
// no partial-success state.
func (s *Stager) Stage(ctx context.Context, localPath, originalName, contentType string) (*StagedAudio, error) {
	if err := s.store.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("staging: ensure bucket: %w", err)
	}

	object := s.objectName(originalName)

	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("staging: open %s: %w", localPath, err)
	}
	defer f.Close()

	if err := s.store.Upload(ctx, object, f, contentType); err != nil {
		return nil, fmt.Errorf("staging: upload: %w", err)
	}

	ttl := s.cfg.URLTTL()
	url, err := s.store.SignedURL(ctx, object, ttl)
	if err != nil {
		return nil, fmt.Errorf("staging: sign url: %w", err)
	}

	staged := &StagedAudio{
		Object:    object,
		URL:       url,
		ExpiresAt: time.Now().Add(ttl),
	}
	s.log.Info("audio staged", logger.Fields(
		logger.FieldObject, staged.Object,
		"url_ttl_minutes", s.cfg.URLTTLMinutes,
	))
	return staged, nil
}

// objectName derives a collision-resistant object name from a timestamp, a
// random suffix and the original file extension, optionally under the
// configured prefix. Two calls within the same millisecond still produce
// distinct names.
func (s *Stager) objectName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("%s-%s%s",
		time.Now().UTC().Format("20060102T150405"),
		uuid.NewString()[:8],
		ext,
	)
	if s.cfg.Prefix != "" {
		return path.Join(strings.Trim(s.cfg.Prefix, "/"), name)
	}
	return name
}

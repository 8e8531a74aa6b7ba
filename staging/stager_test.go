package staging

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/meetscribe/logger"
)

// fakeStorage records calls in memory.
type fakeStorage struct {
	objects      map[string][]byte
	contentTypes map[string]string
	ensureCalls  int
	ensureErr    error
	uploadErr    error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (f *fakeStorage) EnsureBucket(_ context.Context) error {
	f.ensureCalls++
	return f.ensureErr
}

func (f *fakeStorage) Upload(_ context.Context, path string, r io.Reader, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[path] = data
	f.contentTypes[path] = contentType
	return nil
}

func (f *fakeStorage) SignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "https://storage.example.com/" + path + "?sig=abc", nil
}

func writeTempAudio(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "upload.m4a")
	if err := os.WriteFile(p, []byte("RIFFfake"), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestStage(t *testing.T) {
	store := newFakeStorage()
	s := NewStager(store, Config{Prefix: "audio", URLTTLMinutes: 30}, logger.NewDefault("test"))

	staged, err := s.Stage(context.Background(), writeTempAudio(t), "meeting.m4a", "audio/mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.ensureCalls != 1 {
		t.Errorf("expected EnsureBucket once, got %d", store.ensureCalls)
	}
	if !strings.HasPrefix(staged.Object, "audio/") {
		t.Errorf("object should carry the configured prefix, got %q", staged.Object)
	}
	if !strings.HasSuffix(staged.Object, ".m4a") {
		t.Errorf("object should keep the original extension, got %q", staged.Object)
	}
	if !bytes.Equal(store.objects[staged.Object], []byte("RIFFfake")) {
		t.Error("uploaded bytes do not match the local file")
	}
	if store.contentTypes[staged.Object] != "audio/mp4" {
		t.Errorf("content type not propagated, got %q", store.contentTypes[staged.Object])
	}
	if !strings.Contains(staged.URL, staged.Object) {
		t.Errorf("signed URL should reference the object, got %q", staged.URL)
	}
	if remaining := time.Until(staged.ExpiresAt); remaining < 29*time.Minute || remaining > 31*time.Minute {
		t.Errorf("expiry should be ~30m from issuance, got %v", remaining)
	}
}

func TestStage_DistinctObjectNames(t *testing.T) {
	store := newFakeStorage()
	s := NewStager(store, Config{}, logger.NewDefault("test"))
	audio := writeTempAudio(t)

	a, err := s.Stage(context.Background(), audio, "a.wav", "audio/wav")
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Stage(context.Background(), audio, "a.wav", "audio/wav")
	if err != nil {
		t.Fatal(err)
	}
	if a.Object == b.Object {
		t.Errorf("staging the same file twice must produce distinct names, both %q", a.Object)
	}
}

func TestStage_EnsureBucketFailureIsFatal(t *testing.T) {
	store := newFakeStorage()
	store.ensureErr = errors.New("access denied")
	s := NewStager(store, Config{}, logger.NewDefault("test"))

	if _, err := s.Stage(context.Background(), writeTempAudio(t), "a.wav", ""); err == nil {
		t.Fatal("expected error when bucket ensure fails")
	}
	if len(store.objects) != 0 {
		t.Error("no object should be uploaded after ensure failure")
	}
}

func TestStage_UploadFailureIsFatal(t *testing.T) {
	store := newFakeStorage()
	store.uploadErr = errors.New("network down")
	s := NewStager(store, Config{}, logger.NewDefault("test"))

	if _, err := s.Stage(context.Background(), writeTempAudio(t), "a.wav", ""); err == nil {
		t.Fatal("expected error when upload fails")
	}
}

func TestStage_MissingLocalFile(t *testing.T) {
	s := NewStager(newFakeStorage(), Config{}, logger.NewDefault("test"))
	if _, err := s.Stage(context.Background(), "/nonexistent/audio.wav", "audio.wav", ""); err == nil {
		t.Fatal("expected error for missing local file")
	}
}

package resumestore

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"talentflow/internal/domain/resume"
)

var ErrBadRef = errors.New("invalid resume reference")

// Remote documents are capped so a misbehaving host cannot fill the disk.
const maxRemoteResumeBytes = 10 << 20

// Store resolves résumé references against a directory of uploaded files
// and converts them to plain text. A reference is either the bare file
// name an application carries in resume_ref, or an http(s) URL left by
// the sourcing importer; remote documents are downloaded into the store
// directory once and reused afterwards.
type Store struct {
	baseDir string
	conv    *resume.Converter
	client  *http.Client
}

func NewStore(baseDir string) *Store {
	return &Store{
		baseDir: baseDir,
		conv:    resume.NewConverter(),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Text implements the resume source the scoring layer consumes. Local
// references must stay inside the store directory.
func (s *Store) Text(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrBadRef)
	}
	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		local, err := s.fetch(u)
		if err != nil {
			return "", err
		}
		return s.conv.ConvertPath(local)
	}
	if filepath.Base(ref) != ref || strings.HasPrefix(ref, ".") {
		return "", fmt.Errorf("%w: %q", ErrBadRef, ref)
	}
	return s.conv.ConvertPath(filepath.Join(s.baseDir, ref))
}

// fetch downloads a remote résumé into the store directory keyed by the
// URL hash; later reads for the same URL hit the cached copy.
func (s *Store) fetch(u *url.URL) (string, error) {
	sum := sha256.Sum256([]byte(u.String()))
	name := "remote-" + hex.EncodeToString(sum[:8]) + strings.ToLower(filepath.Ext(u.Path))
	local := filepath.Join(s.baseDir, name)
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	resp, err := s.client.Get(u.String())
	if err != nil {
		return "", fmt.Errorf("fetch resume: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s answered %d", ErrBadRef, u.Host, resp.StatusCode)
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(s.baseDir, name+".part-*")
	if err != nil {
		return "", err
	}
	_, copyErr := io.Copy(tmp, io.LimitReader(resp.Body, maxRemoteResumeBytes))
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(tmp.Name())
		if copyErr != nil {
			return "", copyErr
		}
		return "", closeErr
	}
	if err := os.Rename(tmp.Name(), local); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return local, nil
}

package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/messaging"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
)

var pageFilenamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+\.html$`)

// ValidPageFilename reports whether name is a bare page file name.
func ValidPageFilename(name string) bool {
	return pageFilenamePattern.MatchString(name)
}

// PageService reads and writes the raw HTML files under the site root
type PageService struct {
	root      string
	backupDir string
	publisher messaging.Publisher
	logger    *logging.ChanneledLogger
}

func NewPageService(root, backupDir string, publisher messaging.Publisher, logger *logging.ChanneledLogger) *PageService {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	return &PageService{
		root:      root,
		backupDir: backupDir,
		publisher: publisher,
		logger:    logger,
	}
}

// Read returns the raw content of an existing page
func (s *PageService) Read(name string) ([]byte, error) {
	if !ValidPageFilename(name) {
		return nil, invalid("invalid page filename")
	}
	raw, err := os.ReadFile(filepath.Join(s.root, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read page %s: %w", name, err)
	}
	return raw, nil
}

// Write snapshots the current page into the backup directory, then replaces
// it. It returns the snapshot path. Only existing pages can be written.
func (s *PageService) Write(name string, body []byte, actor string) (string, error) {
	if !ValidPageFilename(name) {
		return "", invalid("invalid page filename")
	}
	target := filepath.Join(s.root, name)

	previous, err := os.ReadFile(target)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read page %s: %w", name, err)
	}

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	snapshot := filepath.Join(s.backupDir, fmt.Sprintf("%s.%d.bak", name, time.Now().UnixNano()))
	if err := os.WriteFile(snapshot, previous, 0o644); err != nil {
		return "", fmt.Errorf("failed to snapshot page %s: %w", name, err)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write page %s: %w", name, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return "", fmt.Errorf("failed to replace page %s: %w", name, err)
	}

	s.publisher.Publish(messaging.Event{Type: messaging.EventPageSaved, Target: name, Actor: actor})
	s.logger.Content().Info("Page saved", "page", name, "bytes", len(body), "snapshot", snapshot)
	return snapshot, nil
}

package notebook

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"todopanel/internal/domain"
	"todopanel/internal/ports"
)

// todoPattern matches "# TODO: text" markers inside notebook cells.
var todoPattern = regexp.MustCompile(`(?i)#\s*TODO\s*:\s*(.+)`)

// defaultTTL is how long a scan result is served before the notebooks
// are walked again.
const defaultTTL = 5 * time.Second

// Scanner implements ports.Scanner by walking a directory tree for
// .ipynb files and extracting TODO-marker lines from their cells.
// Results are cached for a short window, and concurrent callers share
// a single in-flight walk.
type Scanner struct {
	root string
	log  *logrus.Logger
	ttl  time.Duration

	mu          sync.Mutex
	cached      []domain.Item
	lastRefresh time.Time
	inflight    chan struct{}
}

var _ ports.Scanner = (*Scanner)(nil)

// NewScanner creates a scanner rooted at root. A non-positive ttl
// selects the default cache window; logger may be nil.
func NewScanner(root string, ttl time.Duration, logger *logrus.Logger) *Scanner {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Scanner{root: root, ttl: ttl, log: logger}
}

// Scan returns the notebook-derived items under the root. A fresh
// cached result is returned as-is; otherwise one walk runs and every
// waiting caller shares its result.
func (s *Scanner) Scan(ctx context.Context) ([]domain.Item, error) {
	s.mu.Lock()
	if !s.lastRefresh.IsZero() && time.Since(s.lastRefresh) < s.ttl {
		items := append([]domain.Item(nil), s.cached...)
		s.mu.Unlock()
		return items, nil
	}

	if s.inflight != nil {
		ch := s.inflight
		s.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		s.mu.Lock()
		items := append([]domain.Item(nil), s.cached...)
		s.mu.Unlock()
		return items, nil
	}

	ch := make(chan struct{})
	s.inflight = ch
	s.mu.Unlock()

	items := s.collect()

	s.mu.Lock()
	s.cached = items
	s.lastRefresh = time.Now()
	s.inflight = nil
	close(ch)
	items = append([]domain.Item(nil), s.cached...)
	s.mu.Unlock()
	return items, nil
}

// Invalidate drops the cached result so the next Scan walks again.
func (s *Scanner) Invalidate() {
	s.mu.Lock()
	s.lastRefresh = time.Time{}
	s.mu.Unlock()
}

// collect walks the root for notebooks. A missing root or an
// unreadable notebook yields no items rather than an error.
func (s *Scanner) collect() []domain.Item {
	info, err := os.Stat(s.root)
	if err != nil || !info.IsDir() {
		return nil
	}

	var items []domain.Item
	filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".ipynb_checkpoints" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".ipynb") {
			return nil
		}
		items = append(items, s.extract(path)...)
		return nil
	})
	return items
}

// notebookFile is the slice of the .ipynb format the scanner needs.
type notebookFile struct {
	Cells []struct {
		Source json.RawMessage `json:"source"`
	} `json:"cells"`
}

// extract pulls TODO-marker items out of one notebook.
func (s *Scanner) extract(path string) []domain.Item {
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.WithError(err).Warnf("failed to read %s", path)
		return nil
	}

	var nb notebookFile
	if err := json.Unmarshal(data, &nb); err != nil {
		s.log.WithError(err).Warnf("failed to parse %s", path)
		return nil
	}

	rel := relativePath(path, s.root)
	var items []domain.Item
	for cellIdx, cell := range nb.Cells {
		for lineIdx, line := range cellLines(cell.Source) {
			match := todoPattern.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			text := strings.TrimSpace(match[1])
			if text == "" {
				continue
			}
			cellIdx, lineIdx := cellIdx, lineIdx
			items = append(items, domain.Item{
				ID:         fmt.Sprintf("notebook:%s:%d:%d", rel, cellIdx, lineIdx),
				Text:       text,
				Source:     domain.SourceNotebook,
				OriginPath: rel,
				OriginCell: &cellIdx,
				OriginLine: &lineIdx,
			})
		}
	}
	return items
}

// cellLines normalizes a cell source, which the format allows to be
// either a string or a list of lines.
func cellLines(source json.RawMessage) []string {
	if len(source) == 0 {
		return nil
	}
	var asList []string
	if err := json.Unmarshal(source, &asList); err == nil {
		for i := range asList {
			asList[i] = strings.TrimRight(asList[i], "\n")
		}
		return asList
	}
	var asString string
	if err := json.Unmarshal(source, &asString); err == nil {
		return strings.Split(asString, "\n")
	}
	return nil
}

// relativePath returns path relative to root with forward slashes, so
// locator ids are stable across platforms.
func relativePath(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

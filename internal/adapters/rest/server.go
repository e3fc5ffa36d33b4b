package rest

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todopanel/internal/domain"
	"todopanel/internal/ports"
)

// Server exposes the todo items REST contract: GET /items returns the
// stored manual items merged with scanner output, PUT /items replaces
// the stored manual items. Items are persisted to a single JSON file
// with an atomic tmp-and-rename write.
type Server struct {
	storagePath string
	scanner     ports.Scanner
	log         *logrus.Logger
	router      *gin.Engine

	mu sync.Mutex // serializes storage file writes
}

// NewServer creates a server persisting to storagePath. scanner may be
// nil when notebook scanning is not configured; logger may be nil.
func NewServer(storagePath string, scanner ports.Scanner, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}

	s := &Server{
		storagePath: storagePath,
		scanner:     scanner,
		log:         logger,
		router:      gin.Default(),
	}

	s.router.GET("/items", s.handleGetItems)
	s.router.PUT("/items", s.handlePutItems)

	return s
}

// Run starts the server on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler returns the underlying handler, used by tests and embedders.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleGetItems(c *gin.Context) {
	items := s.readItems()

	if s.scanner != nil && c.Query("include_notebook_todos") != "0" {
		scanned, err := s.scanner.Scan(c.Request.Context())
		if err != nil {
			s.log.WithError(err).Warn("notebook scan failed")
		} else {
			items = append(items, scanned...)
		}
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) handlePutItems(c *gin.Context) {
	var payload struct {
		Items *[]domain.Item `json:"items"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Items == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "request body must include an 'items' array"})
		return
	}

	if err := s.writeItems(*payload.Items); err != nil {
		s.log.WithError(err).Error("failed to persist items")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to persist items"})
		return
	}

	c.Status(http.StatusNoContent)
}

// readItems loads the stored items. A missing or unreadable file, or a
// payload that is neither an items envelope nor a bare list, reads as
// empty.
func (s *Server) readItems() []domain.Item {
	data, err := os.ReadFile(s.storagePath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.WithError(err).Warnf("failed to read %s", s.storagePath)
		}
		return []domain.Item{}
	}

	var envelope struct {
		Items []domain.Item `json:"items"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Items != nil {
		return envelope.Items
	}

	var bare []domain.Item
	if err := json.Unmarshal(data, &bare); err == nil && bare != nil {
		return bare
	}

	s.log.Warnf("malformed payload in %s, treating as empty", s.storagePath)
	return []domain.Item{}
}

// writeItems persists items atomically so a crashed write never leaves
// a truncated storage file behind.
func (s *Server) writeItems(items []domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if items == nil {
		items = []domain.Item{}
	}
	data, err := json.Marshal(map[string][]domain.Item{"items": items})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.storagePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmpPath := s.storagePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, s.storagePath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

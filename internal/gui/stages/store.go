// Package stages keeps rendered pipeline captures for the viewer.
package stages

import (
	"image"
	"sync"

	"object-counter/internal/debug"
	"object-counter/internal/models"
)

// Store is a debug.Sink that renders and keeps every capture, grouped by
// source in arrival order.
type Store struct {
	mu      sync.RWMutex
	sources []string
	stages  map[string][]string
	images  map[string]map[string]image.Image
	results map[string]*models.Result
}

func NewStore() *Store {
	return &Store{
		stages:  make(map[string][]string),
		images:  make(map[string]map[string]image.Image),
		results: make(map[string]*models.Result),
	}
}

func (s *Store) Capture(source, stage string, buf debug.Imager) {
	img := buf.ToImage()

	s.mu.Lock()
	defer s.mu.Unlock()

	byStage, ok := s.images[source]
	if !ok {
		byStage = make(map[string]image.Image)
		s.images[source] = byStage
		s.sources = append(s.sources, source)
	}
	if _, seen := byStage[stage]; !seen {
		s.stages[source] = append(s.stages[source], stage)
	}
	byStage[stage] = img
}

// SetResult attaches the final result of source for display.
func (s *Store) SetResult(result *models.Result) {
	if result == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.Path] = result
}

func (s *Store) Sources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.sources...)
}

func (s *Store) Stages(source string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.stages[source]...)
}

func (s *Store) Image(source, stage string) image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.images[source][stage]
}

func (s *Store) Result(source string) *models.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results[source]
}

func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sources) == 0
}

package monitoring

import (
	"sort"
	"sync"
	"time"

	"github.com/itsatony/smartrooms/internal/cleanup"
	nuts "github.com/vaudience/go-nuts"
)

// Config holds monitoring configuration
type Config struct {
	LogLevel string
	// Window bounds how long recorded events are kept for GetEventMetrics
	Window time.Duration
}

type event struct {
	name   string
	at     time.Time
	labels map[string]string
}

// Service records domain events such as cascade deletions
type Service struct {
	config Config
	mu     sync.Mutex
	events []event
	totals map[string]int64
}

// NewService creates a new monitoring service
func NewService(config Config) *Service {
	if config.Window <= 0 {
		config.Window = 24 * time.Hour
	}
	return &Service{
		config: config,
		totals: make(map[string]int64),
	}
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	ts := time.Now()

	s.mu.Lock()
	s.totals[eventName]++
	s.events = append(s.events, event{name: eventName, at: ts, labels: labels})
	s.pruneLocked(ts)
	s.mu.Unlock()

	nuts.L.Infof("[Monitoring] Event %s recorded with labels: %v", eventName, labels)
}

// GetEventMetrics counts events of eventType seen within duration, keyed by
// "label=value". The "total" key holds the overall count.
func (s *Service) GetEventMetrics(eventType string, duration time.Duration) (map[string]int64, error) {
	since := time.Now().Add(-duration)

	s.mu.Lock()
	defer s.mu.Unlock()

	metrics := map[string]int64{"total": 0}
	for _, e := range s.events {
		if e.name != eventType || e.at.Before(since) {
			continue
		}
		metrics["total"]++
		for k, v := range e.labels {
			metrics[k+"="+v]++
		}
	}
	return metrics, nil
}

// Window is how far back GetEventMetrics can see
func (s *Service) Window() time.Duration {
	return s.config.Window
}

// WatchCleanup records every cascade deletion reported by c
func (s *Service) WatchCleanup(c *cleanup.CleanupService) error {
	watched := []struct {
		event string
		name  string
		label string
	}{
		{cleanup.EventAreaDeleted, "area_deletion", "area_id"},
		{cleanup.EventSensorDeleted, "sensor_deletion", "sensor_id"},
		{cleanup.EventImageDeleted, "image_deletion", "image_path"},
	}
	for _, w := range watched {
		name, label := w.name, w.label
		err := c.OnCleanup(w.event, func(id string) {
			s.RecordEvent(name, map[string]string{label: id})
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Totals returns the lifetime count per event name
func (s *Service) Totals() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int64, len(s.totals))
	for k, v := range s.totals {
		out[k] = v
	}
	return out
}

// EventNames lists every event name recorded so far, sorted
func (s *Service) EventNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.totals))
	for k := range s.totals {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (s *Service) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.config.Window)
	i := 0
	for i < len(s.events) && s.events[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		s.events = append(s.events[:0], s.events[i:]...)
	}
}

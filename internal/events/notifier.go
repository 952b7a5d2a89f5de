// Package events publishes visualizer history changes to NATS JetStream.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"visualizer-service/internal/models"
	"visualizer-service/internal/visualizer"
)

const (
	// StreamName is the JetStream stream capturing history events.
	StreamName = "VISUALIZER"
	// SubjectPrefix prefixes the per-session history subject.
	SubjectPrefix = "visualizer.history"
)

// JetStreamPublisher is the subset of nats.JetStreamContext the notifier uses.
type JetStreamPublisher interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
	StreamInfo(stream string, opts ...nats.JSOpt) (*nats.StreamInfo, error)
	AddStream(cfg *nats.StreamConfig, opts ...nats.JSOpt) (*nats.StreamInfo, error)
}

// HistoryEvent describes a change of a session's present snapshot.
type HistoryEvent struct {
	ID          string             `json:"id"`
	SessionID   string             `json:"session_id"`
	Action      string             `json:"action"`
	PastDepth   int                `json:"past"`
	FutureDepth int                `json:"future"`
	Present     models.HistoryItem `json:"present"`
	At          time.Time          `json:"at"`
}

// Subject returns the subject history events of a session are published on.
func Subject(sessionID string) string {
	return fmt.Sprintf("%s.%s", SubjectPrefix, sessionID)
}

// Notifier publishes history events from a single background worker, so events
// leave in the order they were queued.
type Notifier struct {
	js     JetStreamPublisher
	queue  chan HistoryEvent
	done   chan struct{}
	closed bool
	mu     sync.RWMutex
}

// NewNotifier creates a Notifier with a queue of the given size.
func NewNotifier(js JetStreamPublisher, buffer int) *Notifier {
	return &Notifier{
		js:    js,
		queue: make(chan HistoryEvent, buffer),
		done:  make(chan struct{}),
	}
}

// EnsureStream creates the history stream if it does not exist yet.
func (n *Notifier) EnsureStream() error {
	if _, err := n.js.StreamInfo(StreamName); err == nil {
		return nil
	}
	log.Printf("Stream %s not found, attempting to create it for subject %s.>...", StreamName, SubjectPrefix)
	_, err := n.js.AddStream(&nats.StreamConfig{
		Name:     StreamName,
		Subjects: []string{SubjectPrefix + ".>"},
		Storage:  nats.FileStorage,
	})
	if err != nil {
		return fmt.Errorf("failed to create NATS stream %s: %w", StreamName, err)
	}
	log.Printf("Successfully created NATS stream %s", StreamName)
	return nil
}

// Run publishes queued events until Close is called.
func (n *Notifier) Run() {
	defer close(n.done)
	for ev := range n.queue {
		if err := n.publish(ev); err != nil {
			log.Printf("Error publishing history event %s: %v", ev.ID, err)
		}
	}
}

func (n *Notifier) publish(ev HistoryEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal history event: %w", err)
	}
	subject := Subject(ev.SessionID)
	ack, err := n.js.Publish(subject, payload)
	if err != nil {
		return fmt.Errorf("failed to publish to subject %s: %w", subject, err)
	}
	if ack != nil {
		log.Printf("Published history event %s to %s (Stream: %s, Sequence: %d)", ev.ID, subject, ack.Stream, ack.Sequence)
	}
	return nil
}

// Notify queues ev without blocking; the event is dropped when the queue is
// full or the notifier is closed.
func (n *Notifier) Notify(ev HistoryEvent) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return
	}
	select {
	case n.queue <- ev:
	default:
		log.Printf("Warning: history event queue full, dropping event for session %s", ev.SessionID)
	}
}

// Listener returns a store listener queuing an event whenever the present
// snapshot of the given session changes.
func (n *Notifier) Listener(sessionID string) visualizer.Listener {
	return func(action visualizer.Action, state models.State, presentChanged bool) {
		if !presentChanged {
			return
		}
		n.Notify(HistoryEvent{
			ID:          uuid.New().String(),
			SessionID:   sessionID,
			Action:      action.Type(),
			PastDepth:   len(state.Past),
			FutureDepth: len(state.Future),
			Present:     state.Present,
			At:          time.Now().UTC(),
		})
	}
}

// Close stops accepting events and waits for queued ones to be published.
// Run must have been started.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	close(n.queue)
	n.mu.Unlock()
	<-n.done
}

package app

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Notification severities.
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

// retained caps how many notifications Recent keeps around.
const retained = 50

// Notification is a transient user-facing message emitted by the application.
type Notification struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Subscriber receives every notification published to the center.
type Subscriber func(Notification)

// Notifier fans application notifications out to subscribers and keeps a
// bounded history of the most recent ones.
type Notifier struct {
	logger *zap.Logger

	mu          sync.Mutex
	subscribers []Subscriber
	recent      []Notification
	now         func() time.Time
}

// NewNotifier builds a notification center.
func NewNotifier(logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		logger: logger.Named("notifier"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Subscribe registers a callback invoked for every future notification.
func (n *Notifier) Subscribe(s Subscriber) {
	if s == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subscribers = append(n.subscribers, s)
}

// Publish records a notification and delivers it to all subscribers.
func (n *Notifier) Publish(level, message string) {
	note := Notification{Level: level, Message: message}

	n.mu.Lock()
	note.Time = n.now()
	n.recent = append(n.recent, note)
	if len(n.recent) > retained {
		n.recent = n.recent[len(n.recent)-retained:]
	}
	subs := make([]Subscriber, len(n.subscribers))
	copy(subs, n.subscribers)
	n.mu.Unlock()

	n.logger.Info("notification published",
		zap.String("level", level),
		zap.String("message", message),
	)

	for _, s := range subs {
		s(note)
	}
}

// Info publishes an informational notification.
func (n *Notifier) Info(message string) { n.Publish(LevelInfo, message) }

// Success publishes a success notification.
func (n *Notifier) Success(message string) { n.Publish(LevelSuccess, message) }

// Warning publishes a warning notification.
func (n *Notifier) Warning(message string) { n.Publish(LevelWarning, message) }

// Error publishes an error notification.
func (n *Notifier) Error(message string) { n.Publish(LevelError, message) }

// Recent returns the retained notifications, newest last.
func (n *Notifier) Recent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.recent))
	copy(out, n.recent)
	return out
}

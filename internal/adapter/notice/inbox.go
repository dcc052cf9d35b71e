package notice

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rl1809/smart-pos/internal/core/domain"
	"github.com/rl1809/smart-pos/internal/port"
)

const DefaultCapacity = 50

// Inbox logs every notice, keeps the most recent ones for the operator and
// forwards them to any attached notifiers.
type Inbox struct {
	log      logrus.FieldLogger
	capacity int
	forward  []port.Notifier

	mu      sync.Mutex
	notices []domain.Notice
}

func NewInbox(log logrus.FieldLogger, capacity int, forward ...port.Notifier) *Inbox {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Inbox{
		log:      log.WithField("component", "notice"),
		capacity: capacity,
		forward:  forward,
	}
}

func (b *Inbox) Notify(n domain.Notice) {
	entry := b.log.WithField("notice", n.Message)
	switch n.Level {
	case domain.NoticeError:
		entry.Error("notice")
	case domain.NoticeWarn:
		entry.Warn("notice")
	default:
		entry.Info("notice")
	}

	b.mu.Lock()
	b.notices = append(b.notices, n)
	if over := len(b.notices) - b.capacity; over > 0 {
		b.notices = append([]domain.Notice(nil), b.notices[over:]...)
	}
	b.mu.Unlock()

	for _, f := range b.forward {
		f.Notify(n)
	}
}

// Recent returns the kept notices, newest last.
func (b *Inbox) Recent() []domain.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Notice(nil), b.notices...)
}

// Dismiss drops every kept notice.
func (b *Inbox) Dismiss() {
	b.mu.Lock()
	b.notices = nil
	b.mu.Unlock()
}

package service

import (
	"time"

	"github.com/rl1809/smart-pos/internal/core/domain"
	"github.com/rl1809/smart-pos/internal/port"
)

func notify(n port.Notifier, level domain.NoticeLevel, message string) {
	if n == nil {
		return
	}
	n.Notify(domain.Notice{Level: level, Message: message, Time: time.Now()})
}

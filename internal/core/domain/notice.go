package domain

import "time"

type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeWarn  NoticeLevel = "warn"
	NoticeError NoticeLevel = "error"
)

// Notice is a visible, dismissable message for the operator.
type Notice struct {
	Level   NoticeLevel
	Message string
	Time    time.Time
}

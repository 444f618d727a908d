package models

// NotificationKind tells which context broker subscription delivered a notification.
type NotificationKind string

const (
	// KindValue is every sanity check result. It feeds the metrics channel.
	KindValue NotificationKind = "value"
	// KindChange fires only when a region status changed. It feeds the mailing lists.
	KindChange NotificationKind = "change"
)

package presenter

import "time"

// Loop drives the periodic refresh of time-based views and reschedules
// itself through the Schedule callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Session  *SessionPresenter
	Schedule func()
	Now      func() time.Time
}

func NewLoop(sess *SessionPresenter, schedule func()) *Loop {
	return &Loop{Session: sess, Schedule: schedule, Now: time.Now}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Now != nil {
		now = l.Now()
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}

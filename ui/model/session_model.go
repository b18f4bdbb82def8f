package model

import (
	"time"
)

// SessionModel tracks time spent on the current image, the accumulated
// annotation time and how many samples were inserted and saved.
// It is decoupled from the UI; presenters should poll Values() and Counts().
// The zero value is ready to use.
type SessionModel struct {
	active       bool
	imageStart   time.Time
	lastDuration time.Duration
	accumulated  time.Duration

	inserted int
	saved    int
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the timers. hasImage reports whether an image is loaded.
// Call periodically (for example, from a presenter tick).
func (m *SessionModel) OnTick(hasImage bool, now time.Time) {
	if m == nil {
		return
	}
	if hasImage {
		if !m.active { // transition off -> on
			m.active = true
			m.imageStart = now
			m.lastDuration = 0
		}
		m.lastDuration = now.Sub(m.imageStart)
	} else if m.active { // transition on -> off
		m.lastDuration = now.Sub(m.imageStart)
		m.accumulated += m.lastDuration
		m.active = false
	}
}

// OnImageChanged closes the running image timer and starts a new one.
func (m *SessionModel) OnImageChanged(now time.Time) {
	if m == nil {
		return
	}
	if m.active {
		m.accumulated += now.Sub(m.imageStart)
	}
	m.active = true
	m.imageStart = now
	m.lastDuration = 0
}

// Values returns the time on the current image and the total annotation time.
// The total includes the running image when active.
func (m *SessionModel) Values() (image, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	image = m.lastDuration
	total = m.accumulated
	if m.active {
		total += image
	}
	return
}

// OnInsert counts one inserted sample.
func (m *SessionModel) OnInsert() {
	if m != nil {
		m.inserted++
	}
}

// OnUndo reverses one insert.
func (m *SessionModel) OnUndo() {
	if m != nil && m.inserted > m.saved {
		m.inserted--
	}
}

// OnSaved records that every inserted sample has been written.
func (m *SessionModel) OnSaved() {
	if m != nil {
		m.saved = m.inserted
	}
}

// Counts returns the inserted and saved totals for this session.
func (m *SessionModel) Counts() (inserted, saved int) {
	if m == nil {
		return 0, 0
	}
	return m.inserted, m.saved
}

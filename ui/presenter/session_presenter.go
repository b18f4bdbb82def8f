package presenter

import (
	"time"

	"github.com/soocke/plumage-go/ui/model"
)

// ImageLoadedModel reports whether an image is open.
type ImageLoadedModel interface{ HasImage() bool }

// SessionView displays the session timers and sample counters.
type SessionView interface {
	SetSession(image, total time.Duration)
	SetCounts(inserted, saved int)
}

// SessionPresenter formats the session model into the view.
type SessionPresenter struct {
	sess   *model.SessionModel
	loaded ImageLoadedModel
	view   SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, loaded ImageLoadedModel, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, loaded: loaded, view: view}
}

// Tick advances the session model and pushes values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.loaded == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.loaded.HasImage(), now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
	in, saved := p.sess.Counts()
	p.view.SetCounts(in, saved)
}

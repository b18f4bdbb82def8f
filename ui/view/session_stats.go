package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows time on the current image, total annotation time and
// the inserted/saved sample counters.
type SessionStats interface {
	SetSession(image, total time.Duration)
	SetCounts(inserted, saved int)
}

type sessionStats struct {
	imageLbl  *LabelWidget
	totalLbl  *LabelWidget
	countsLbl *LabelWidget
}

// NewSessionStats creates the labels in a row of parent starting at startCol.
func NewSessionStats(parent *FrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{imageLbl: Label(Width(14)), totalLbl: Label(Width(14)), countsLbl: Label(Width(24))}
	for i, l := range []*LabelWidget{s.imageLbl, s.totalLbl, s.countsLbl} {
		Grid(l, In(parent), Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
	}
	s.SetSession(0, 0)
	s.SetCounts(0, 0)
	return s
}

func (s *sessionStats) SetSession(image, total time.Duration) {
	if s == nil || s.imageLbl == nil {
		return
	}
	s.imageLbl.Configure(Txt("Image: " + clock(image)))
	s.totalLbl.Configure(Txt("Total: " + clock(total)))
}

func (s *sessionStats) SetCounts(inserted, saved int) {
	if s == nil || s.countsLbl == nil {
		return
	}
	s.countsLbl.Configure(Txt(fmt.Sprintf("Samples: %d (%d saved)", inserted, saved)))
}

func clock(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

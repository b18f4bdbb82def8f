package model

import (
	"github.com/soocke/plumage-go/domain/annotation"
)

// AnnotationModel holds the current annotation state. Handlers from the
// annotation package are applied to it one at a time.
// No synchronization needed: updates occur on the UI thread.
type AnnotationModel struct {
	state annotation.State
}

// NewAnnotationModel returns a model starting at initial.
func NewAnnotationModel(initial annotation.State) *AnnotationModel {
	return &AnnotationModel{state: initial}
}

// State returns a copy of the current state.
func (m *AnnotationModel) State() annotation.State {
	if m == nil {
		return annotation.State{}
	}
	return m.state
}

// Apply replaces the state with fn's result.
func (m *AnnotationModel) Apply(fn func(annotation.State) annotation.State) annotation.State {
	if m == nil {
		return annotation.State{}
	}
	m.state = fn(m.state)
	return m.state
}

// ApplyErr is Apply for handlers that can fail. On error the state is kept.
func (m *AnnotationModel) ApplyErr(fn func(annotation.State) (annotation.State, error)) (annotation.State, error) {
	if m == nil {
		return annotation.State{}, nil
	}
	next, err := fn(m.state)
	if err != nil {
		return m.state, err
	}
	m.state = next
	return m.state, nil
}

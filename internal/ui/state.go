// Package ui models the client application's state as an explicit container
// with pure transitions, so the submit/refresh machine can be tested
// deterministically instead of mutating ad-hoc globals.
package ui

import "github.com/example/miniblog/internal/models"

type State struct {
	Posts []models.Post

	// In-progress new-post form.
	Title   string
	Content string
	Author  string

	Submitting bool
	LastError  string
}

type Event interface{ isEvent() }

type EditForm struct {
	Title   string
	Content string
	Author  string
}

type LoadSucceeded struct{ Posts []models.Post }

type LoadFailed struct{ Err string }

type SubmitStarted struct{}

type SubmitSucceeded struct{}

type SubmitFailed struct{ Err string }

func (EditForm) isEvent()        {}
func (LoadSucceeded) isEvent()   {}
func (LoadFailed) isEvent()      {}
func (SubmitStarted) isEvent()   {}
func (SubmitSucceeded) isEvent() {}
func (SubmitFailed) isEvent()    {}

// Apply returns the state after the event. It never mutates its input.
func Apply(s State, e Event) State {
	switch ev := e.(type) {
	case EditForm:
		s.Title, s.Content, s.Author = ev.Title, ev.Content, ev.Author
	case LoadSucceeded:
		posts := ev.Posts
		if posts == nil {
			posts = []models.Post{}
		}
		s.Posts = posts
		s.LastError = ""
	case LoadFailed:
		// Keep showing the last fetched list.
		s.LastError = ev.Err
	case SubmitStarted:
		s.Submitting = true
	case SubmitSucceeded:
		s.Submitting = false
		s.Title, s.Content, s.Author = "", "", ""
		s.LastError = ""
	case SubmitFailed:
		// The form is kept so the user can retry without retyping.
		s.Submitting = false
		s.LastError = ev.Err
	}
	return s
}

package workflow

import (
	"errors"
	"sync"

	"github.com/kataras/golog"
)

const (
	DefaultRating = 3
	MinRating     = 1
	MaxRating     = 5

	FeedbackThanksMessage = "Thank you for your feedback!"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type FeedbackState struct {
	Rating          int
	Comment         string
	Acknowledgement string
}

// FeedbackWidget collects a rating and a comment. There is no backend
// contract for feedback, so Submit only resets the widget.
type FeedbackWidget struct {
	mu    sync.Mutex
	state FeedbackState
}

func NewFeedbackWidget() *FeedbackWidget {
	return &FeedbackWidget{
		state: FeedbackState{Rating: DefaultRating},
	}
}

func (f *FeedbackWidget) SetRating(n int) error {
	if n < MinRating || n > MaxRating {
		return ErrInvalidRating
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Rating = n
	f.state.Acknowledgement = ""
	return nil
}

func (f *FeedbackWidget) SetComment(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Comment = s
	f.state.Acknowledgement = ""
}

// Submit resets the widget and returns the acknowledgement to show.
func (f *FeedbackWidget) Submit() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	golog.Debugf("📝 Feedback submitted with rating %d/%d", f.state.Rating, MaxRating)

	f.state = FeedbackState{
		Rating:          DefaultRating,
		Acknowledgement: FeedbackThanksMessage,
	}
	return FeedbackThanksMessage
}

// Dismiss clears the acknowledgement once it has been shown.
func (f *FeedbackWidget) Dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Acknowledgement = ""
}

func (f *FeedbackWidget) State() FeedbackState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

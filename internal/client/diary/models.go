package diary

import (
	"fmt"
	"strings"
	"time"
)

type Mood string

const (
	MoodHappy Mood = "happy"
	MoodOK    Mood = "ok"
	MoodTired Mood = "tired"
	MoodSad   Mood = "sad"
)

// Moods lists every mood in display order.
var Moods = []Mood{MoodHappy, MoodOK, MoodTired, MoodSad}

// ParseMood accepts a mood name in any case.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Moods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown mood %q", ErrInvalidInput, s)
}

func (m Mood) Label() string {
	switch m {
	case MoodHappy:
		return "Happy"
	case MoodOK:
		return "OK"
	case MoodTired:
		return "Tired"
	case MoodSad:
		return "Sad"
	default:
		return string(m)
	}
}

const (
	MinEnergy = 1
	MaxEnergy = 5
)

// CheckIn is one daily mood and energy record.
type CheckIn struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Mood      Mood      `json:"mood" validate:"required,oneof=happy ok tired sad"`
	Energy    int       `json:"energy" validate:"min=1,max=5"`
	Note      string    `json:"note,omitempty"`
}

// Entry is a free-text symptom diary record.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Text      string    `json:"text" validate:"required"`
}

// CareTask is an item of the daily care checklist.
type CareTask struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Done   bool   `json:"done"`
}

// DefaultTasks returns a fresh copy of the daily checklist, all undone.
func DefaultTasks() []CareTask {
	return []CareTask{
		{ID: "medication", Title: "Take medication", Detail: "Follow the dose prescribed by your doctor."},
		{ID: "water", Title: "Drink water", Detail: "Aim for 6–8 glasses during the day."},
		{ID: "movement", Title: "Short walk / movement", Detail: "Move safely for a few minutes if possible."},
		{ID: "rest", Title: "Rest & breathing break", Detail: "Sit comfortably and breathe slowly for 5 minutes."},
	}
}

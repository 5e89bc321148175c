// Package export builds caregiver reports from a user's diary and delivers
// them to a Sink: a local directory or an S3-compatible bucket.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/caresupport/internal/client/diary"
)

// Report is the JSON document handed to a caregiver.
type Report struct {
	UserID      string           `json:"user_id"`
	DisplayName string           `json:"display_name,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
	CheckIns    []diary.CheckIn  `json:"check_ins"`
	Entries     []diary.Entry    `json:"diary_entries"`
	Tasks       []diary.CareTask `json:"tasks"`
}

// Build snapshots the store. Lists are most recent first.
func Build(s *diary.Store, displayName string, now time.Time) Report {
	return Report{
		UserID:      s.UserID(),
		DisplayName: displayName,
		GeneratedAt: now.UTC(),
		CheckIns:    s.AllCheckIns(),
		Entries:     s.AllDiaryEntries(),
		Tasks:       s.Tasks(),
	}
}

func (r Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Name is the object name reports are stored under.
func (r Report) Name() string {
	return fmt.Sprintf("%s/report-%s.json", r.UserID, r.GeneratedAt.Format("20060102-150405"))
}

// Sink stores a report body under name and returns where it can be found.
type Sink interface {
	Put(ctx context.Context, name string, body []byte) (location string, err error)
}

// Deliver encodes r and stores it in sink.
func Deliver(ctx context.Context, sink Sink, r Report) (string, error) {
	body, err := r.JSON()
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	loc, err := sink.Put(ctx, r.Name(), body)
	if err != nil {
		return "", fmt.Errorf("store report: %w", err)
	}
	return loc, nil
}

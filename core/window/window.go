package window

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/tmugisha/amali/core"
)

// Duration is the fixed length of a submission window, anchored at the
// student's first access to the assessment.
const Duration = 4 * time.Hour

const keyPrefix = "session_window"

// Window is the per-(assessment, student) submission window. End is fixed
// at creation as Start + Duration and never recomputed.
type Window struct {
	AssessmentID int
	UserID       string
	Start        time.Time
	End          time.Time
}

// record is the persisted layout: {"start": RFC3339, "end": RFC3339}.
type record struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Key returns the store key for a given (assessment, student) pair.
func Key(assessmentID int, userID string) string {
	return fmt.Sprintf("%s::%d::%s", keyPrefix, assessmentID, userID)
}

// Store persists one Window per (assessment, student) pair in a
// KeyValueStore.
type Store struct {
	kv core.KeyValueStore
}

func NewStore(kv core.KeyValueStore) *Store {
	return &Store{kv: kv}
}

// GetOrCreate returns the existing window for (assessmentID, userID), or
// anchors a fresh one at `now`. An existing record wins regardless of `now`,
// so the end never moves once set. A record that does not decode to a value
// with an end timestamp is treated as absent and recreated; the corruption
// is never surfaced to the caller.
func (s *Store) GetOrCreate(assessmentID int, userID string, now time.Time) (Window, error) {
	key := Key(assessmentID, userID)

	if raw, err := s.kv.Get(key); err == nil {
		var rec record
		if err := json.Unmarshal([]byte(raw), &rec); err == nil && !rec.End.IsZero() {
			return Window{
				AssessmentID: assessmentID,
				UserID:       userID,
				Start:        rec.Start,
				End:          rec.End,
			}, nil
		}
		// undecodable or missing end: fall through and recreate
	} else if err != core.ErrKeyNotFound {
		return Window{}, errors.Wrapf(err, "reading window %s", key)
	}

	win := Window{
		AssessmentID: assessmentID,
		UserID:       userID,
		Start:        now,
		End:          now.Add(Duration),
	}
	raw, err := json.Marshal(record{Start: win.Start, End: win.End})
	if err != nil {
		return Window{}, errors.Wrap(err, "encoding window")
	}
	if err := s.kv.Set(key, string(raw)); err != nil {
		return Window{}, errors.Wrapf(err, "persisting window %s", key)
	}
	return win, nil
}

// Remove deletes the stored window. Not part of the normal flow; exposed for
// administrative repair.
func (s *Store) Remove(assessmentID int, userID string) error {
	return s.kv.Remove(Key(assessmentID, userID))
}

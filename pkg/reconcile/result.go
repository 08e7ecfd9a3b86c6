package reconcile

import "github.com/rs/zerolog"

// Stats summarizes one reconciliation pass. Per-item failures never abort
// the batch; they are counted here and reported at the end of the run.
type Stats struct {
	Built    int // presets merged into the document
	Updated  int // existing entries replaced in place
	Inserted int // new entries appended
	Skipped  int // presets excluded (missing/invalid identity)
}

// Add accumulates another pass's counts, used when the run builds both
// documents.
func (s *Stats) Add(other *Stats) {
	if other == nil {
		return
	}
	s.Built += other.Built
	s.Updated += other.Updated
	s.Inserted += other.Inserted
	s.Skipped += other.Skipped
}

// MarshalZerologObject lets Stats log as a structured field group.
func (s *Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Int("built", s.Built).
		Int("updated", s.Updated).
		Int("inserted", s.Inserted).
		Int("skipped", s.Skipped)
}

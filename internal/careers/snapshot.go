package careers

import (
	"sync/atomic"
	"time"
)

// Snapshot is an immutable view of the dataset. It is never modified after
// construction; reloading the dataset means building a new Snapshot.
type Snapshot struct {
	records []Record
	byID    map[string]int
	source  string
	loaded  time.Time
}

// NewSnapshot copies records into a new snapshot. Later duplicates of an id
// replace earlier ones in place so the first position is kept.
func NewSnapshot(source string, records []Record) *Snapshot {
	s := &Snapshot{
		records: make([]Record, 0, len(records)),
		byID:    make(map[string]int, len(records)),
		source:  source,
		loaded:  time.Now().UTC(),
	}

	for _, r := range records {
		if idx, ok := s.byID[r.ID]; ok {
			s.records[idx] = r.clone()
			continue
		}
		s.byID[r.ID] = len(s.records)
		s.records = append(s.records, r.clone())
	}

	return s
}

// All returns every record in effect, in dataset order. The returned slice
// is a copy and may be modified by the caller.
func (s *Snapshot) All() []Record {
	if s == nil {
		return nil
	}
	out := make([]Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.clone()
	}
	return out
}

// ByID looks up a record by identifier.
func (s *Snapshot) ByID(id string) (Record, bool) {
	if s == nil {
		return Record{}, false
	}
	idx, ok := s.byID[id]
	if !ok {
		return Record{}, false
	}
	return s.records[idx].clone(), true
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

func (s *Snapshot) Source() string {
	if s == nil {
		return ""
	}
	return s.source
}

func (s *Snapshot) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.loaded
}

// Each calls fn for every record without copying. fn must not retain or
// modify the slices of the record.
func (s *Snapshot) Each(fn func(Record)) {
	if s == nil {
		return
	}
	for _, r := range s.records {
		fn(r)
	}
}

// Merge builds the effective dataset: records from upload override base
// records with the same id and extend the dataset otherwise.
func Merge(source string, base, upload *Snapshot) *Snapshot {
	records := make([]Record, 0, base.Len()+upload.Len())
	base.Each(func(r Record) { records = append(records, r) })
	upload.Each(func(r Record) { records = append(records, r) })
	return NewSnapshot(source, records)
}

// Store publishes the current snapshot. Readers never block: a reload
// builds a complete snapshot and swaps the pointer.
type Store struct {
	current atomic.Pointer[Snapshot]
}

func NewStore(initial *Snapshot) *Store {
	s := &Store{}
	if initial == nil {
		initial = NewSnapshot("empty", nil)
	}
	s.current.Store(initial)
	return s
}

// Load returns the snapshot currently in effect.
func (s *Store) Load() *Snapshot {
	return s.current.Load()
}

// Publish replaces the current snapshot and returns the previous one.
func (s *Store) Publish(next *Snapshot) *Snapshot {
	if next == nil {
		next = NewSnapshot("empty", nil)
	}
	return s.current.Swap(next)
}

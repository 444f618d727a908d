package models

import (
	"errors"
	"sort"
	"sync"
)

var ErrRegionNotFound = errors.New("region not found")

// RegionStore is the in-memory view of the latest known state per region.
// Reads return copies, so callers never observe later mutations.
type RegionStore struct {
	mu   sync.RWMutex
	data map[string]RegionRecord
}

func NewRegionStore() *RegionStore {
	return &RegionStore{
		data: make(map[string]RegionRecord),
	}
}

// Init replaces the store contents with one default record per name.
func (s *RegionStore) Init(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]RegionRecord, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		s.data[name] = NewRegionRecord(name)
	}
}

func (s *RegionStore) Get(name string) (*RegionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[name]
	if !ok {
		return nil, false
	}
	copy := val
	return &copy, true
}

func (s *RegionStore) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[name]
	return ok
}

func (s *RegionStore) Set(record *RegionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record == nil || record.Node == "" {
		return
	}
	s.data[record.Node] = *record
}

// Update applies fn to the named record under the write lock.
// It is a no-op returning false when the region is unknown.
func (s *RegionStore) Update(name string, fn func(r *RegionRecord)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[name]
	if !ok {
		return false
	}
	fn(&rec)
	rec.Node = name
	s.data[name] = rec
	return true
}

func (s *RegionStore) SetStatus(name, status string) bool {
	return s.Update(name, func(r *RegionRecord) { r.Status = status })
}

func (s *RegionStore) SetAuthorized(name string, authorized bool) bool {
	return s.Update(name, func(r *RegionRecord) { r.Authorized = authorized })
}

func (s *RegionStore) SetSubscribed(name string, subscribed bool) bool {
	return s.Update(name, func(r *RegionRecord) { r.Subscribed = subscribed })
}

func (s *RegionStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[name]; !ok {
		return ErrRegionNotFound
	}
	delete(s.data, name)
	return nil
}

func (s *RegionStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// List returns a snapshot of every record in ascending order by node.
func (s *RegionStore) List() []RegionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]RegionRecord, 0, len(s.data))
	for _, rec := range s.data {
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Node < result[j].Node
	})
	return result
}

func (s *RegionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// ObservedCount returns how many regions have received a status.
func (s *RegionStore) ObservedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, rec := range s.data {
		if rec.Observed() {
			n++
		}
	}
	return n
}

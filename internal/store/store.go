package store

import (
	"container/list"
	"sync"
)

// Paste is one stored blob together with the device code that owns it.
// A Paste is created at insertion and never mutated afterwards.
type Paste struct {
	Content []byte
	Device  string
}

type entry struct {
	id    string
	paste Paste
}

// Store is a thread-safe in-memory paste store, keyed by paste identifier.
// Entries keep insertion order: walking the order front-to-back yields
// oldest-first, which is what the per-device eviction relies on.
//
// Each device keeps at most `limit` live pastes. The excess is trimmed
// lazily when that device inserts again; a device that never inserts again
// keeps its pastes until the process exits.
type Store struct {
	mu    sync.RWMutex
	limit int
	order *list.List               // of *entry, oldest first
	byID  map[string]*list.Element // identifier -> element in order
}

// New creates a Store that retains at most devicePasteLimit pastes per device.
// Limits below one are clamped to one: eviction assumes every device may hold
// at least the paste being inserted.
func New(devicePasteLimit int) *Store {
	if devicePasteLimit < 1 {
		devicePasteLimit = 1
	}
	return &Store{
		limit: devicePasteLimit,
		order: list.New(),
		byID:  make(map[string]*list.Element),
	}
}

// Insert stores content under id for the given device. It first evicts the
// device's oldest pastes so that, after the insert, the device holds at most
// the retention limit, then appends the new paste as the most recent entry.
// Eviction and insertion happen under one write lock, so no reader can
// observe the intermediate state.
//
// If id is already live the existing entry is removed first, whoever owns
// it, so identifiers stay unique. Callers must not modify content after
// calling Insert.
//
// The return value is the number of pastes evicted, for accounting only.
func (s *Store) Insert(id string, content []byte, device string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.byID[id]; ok {
		s.remove(el)
	}

	evicted := s.evictOldest(device)

	el := s.order.PushBack(&entry{id: id, paste: Paste{Content: content, Device: device}})
	s.byID[id] = el
	return evicted
}

// evictOldest removes the device's oldest pastes until limit-1 remain,
// making room for the paste about to be inserted. Caller holds the write lock.
func (s *Store) evictOldest(device string) int {
	var owned []*list.Element
	for el := s.order.Front(); el != nil; el = el.Next() {
		if el.Value.(*entry).paste.Device == device {
			owned = append(owned, el)
		}
	}

	if len(owned) < s.limit {
		return 0
	}
	excess := len(owned) - s.limit + 1
	for _, el := range owned[:excess] {
		s.remove(el)
	}
	return excess
}

// remove drops el from both the order and the id index. Caller holds the write lock.
func (s *Store) remove(el *list.Element) {
	delete(s.byID, el.Value.(*entry).id)
	s.order.Remove(el)
}

// Get returns the content stored under id, but only when the paste exists and
// is owned by device. The second return is false both when the id is unknown
// and when it belongs to another device; callers cannot tell the two apart.
// Callers must not modify the returned bytes.
func (s *Store) Get(id, device string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	el, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	p := el.Value.(*entry).paste
	if p.Device != device {
		return nil, false
	}
	return p.Content, true
}

// ListIDs returns every live identifier owned by device, most recent first.
func (s *Store) ListIDs(device string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0)
	for el := s.order.Back(); el != nil; el = el.Prev() {
		e := el.Value.(*entry)
		if e.paste.Device == device {
			ids = append(ids, e.id)
		}
	}
	return ids
}

// KnownDevices returns the set of device codes that own at least one live
// paste. Used by device code generation to avoid handing out a live code.
func (s *Store) KnownDevices() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	devices := make(map[string]struct{})
	for el := s.order.Front(); el != nil; el = el.Next() {
		devices[el.Value.(*entry).paste.Device] = struct{}{}
	}
	return devices
}

// Has reports whether a paste with the given id is currently live, for any
// device. The HTTP layer uses this to re-roll freshly generated identifiers
// that happen to collide.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok
}

// Count returns the total number of live pastes.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// DeviceCount returns the number of distinct devices with at least one live paste.
func (s *Store) DeviceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	devices := make(map[string]struct{})
	for el := s.order.Front(); el != nil; el = el.Next() {
		devices[el.Value.(*entry).paste.Device] = struct{}{}
	}
	return len(devices)
}

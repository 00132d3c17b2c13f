package state

import "sync"

// TabStore holds the host copy of the tab set and the active index.
type TabStore interface {
	Tabs() []string
	Active() int
	Label(index int) (string, bool)
	Len() int
	Ready() bool
	Replace(tabs []string, active int)
	SetActive(index int) bool
	Reset()
}

type tabStore struct {
	mu     sync.RWMutex
	tabs   []string
	active int
	ready  bool
}

func NewTabStore() TabStore {
	return &tabStore{}
}

func (s *tabStore) Tabs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTabs(s.tabs)
}

func (s *tabStore) Active() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *tabStore) Label(index int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.tabs) {
		return "", false
	}
	return s.tabs[index], true
}

func (s *tabStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tabs)
}

// Ready reports whether a session has been set up and not reset since.
func (s *tabStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *tabStore) Replace(tabs []string, active int) {
	s.mu.Lock()
	s.tabs = cloneTabs(tabs)
	s.active = active
	s.ready = true
	s.mu.Unlock()
}

// SetActive stores index when it addresses a known tab.
func (s *tabStore) SetActive(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.tabs) {
		return false
	}
	s.active = index
	return true
}

// Reset forgets the session but keeps the labels so the host can set up
// again with the same tabs.
func (s *tabStore) Reset() {
	s.mu.Lock()
	s.ready = false
	s.mu.Unlock()
}

func cloneTabs(tabs []string) []string {
	if len(tabs) == 0 {
		return nil
	}
	dup := make([]string, len(tabs))
	copy(dup, tabs)
	return dup
}

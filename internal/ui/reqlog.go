package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// RequestEntry is one outbound call to the remote task store.
type RequestEntry struct {
	When      time.Time
	RequestID string
	Method    string
	Path      string
	Status    int
	Err       string
}

// String renders the entry as a single diagnostic line.
func (e RequestEntry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", e.When.Format("15:04:05"), e.Method, e.Path)
	if e.Status != 0 {
		fmt.Fprintf(&b, " -> %d", e.Status)
	}
	if e.Err != "" {
		fmt.Fprintf(&b, " error=%q", e.Err)
	}
	if e.RequestID != "" {
		fmt.Fprintf(&b, " id=%s", e.RequestID)
	}
	return b.String()
}

type RequestLogStore struct {
	mu  sync.Mutex
	buf []RequestEntry
	max int
	now func() time.Time
}

func NewRequestLogStore(max int) *RequestLogStore {
	if max <= 0 {
		max = 200
	}
	return &RequestLogStore{max: max, now: time.Now}
}

func (s *RequestLogStore) SetMax(max int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if max <= 0 {
		return
	}
	s.max = max
	s.trim()
}

// Record satisfies remote.Recorder.
func (s *RequestLogStore) Record(requestID, method, path string, status int, err error) {
	e := RequestEntry{RequestID: requestID, Method: method, Path: path, Status: status}
	if err != nil {
		e.Err = err.Error()
	}
	s.Append(e)
}

func (s *RequestLogStore) Append(e RequestEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.When.IsZero() {
		e.When = s.now()
	}
	s.buf = append(s.buf, e)
	s.trim()
}

// drop oldest; caller holds mu
func (s *RequestLogStore) trim() {
	if len(s.buf) > s.max {
		s.buf = append([]RequestEntry(nil), s.buf[len(s.buf)-s.max:]...)
	}
}

// List returns the newest n entries, oldest first. n <= 0 means all.
func (s *RequestLogStore) List(n int) []RequestEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.buf) {
		n = len(s.buf)
	}
	out := make([]RequestEntry, n)
	copy(out, s.buf[len(s.buf)-n:])
	return out
}

func (s *RequestLogStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf)
}

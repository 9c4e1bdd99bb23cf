package testing

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Request is an inbound request captured by a recording server.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// RecordingServer is an httptest server that records every request and answers with a fixed response.
type RecordingServer struct {
	*httptest.Server

	lock     sync.Mutex
	requests []Request
}

// NewRecordingServer starts a server replying with the given status and body.
func NewRecordingServer(status int, body string) *RecordingServer {
	s := &RecordingServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := ioutil.ReadAll(r.Body)
		s.lock.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: data})
		s.lock.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	return s
}

// Requests returns a copy of the captured requests.
func (s *RecordingServer) Requests() []Request {
	s.lock.Lock()
	defer s.lock.Unlock()
	res := make([]Request, len(s.requests))
	copy(res, s.requests)
	return res
}

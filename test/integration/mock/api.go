package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// recordedCall is one request received by the stub.
type recordedCall struct {
	body    map[string]any
	headers map[string]string
}

type reply struct {
	status int
	body   any
}

// route holds the calls and scripted replies of one method and path.
type route struct {
	calls    []recordedCall
	replies  map[int]reply // keyed by call index
	fallback *reply
}

// ApiMock stands in for a third-party JSON API such as Resend. It records every call
// and answers with the reply scripted for that call index, the route fallback, or an
// empty 200. The email worker calls it from its own goroutine, so access is locked.
type ApiMock struct {
	mu     sync.Mutex
	routes map[string]*route
	url    string
}

func NewApiServer() *ApiMock {
	return &ApiMock{routes: map[string]*route{}}
}

// Start serves the stub on a local port.
func (a *ApiMock) Start() {
	server := httptest.NewServer(http.HandlerFunc(a.serve))
	a.url = server.URL
}

func (a *ApiMock) GetUrl() string {
	return a.url
}

func (a *ApiMock) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	body := map[string]any{}
	_ = json.Unmarshal(raw, &body)

	headers := make(map[string]string, len(r.Header))
	for key, values := range r.Header {
		headers[key] = values[0]
	}

	a.mu.Lock()
	rt := a.route(r.Method, r.URL.Path)
	index := len(rt.calls)
	rt.calls = append(rt.calls, recordedCall{body: body, headers: headers})
	answer := reply{status: http.StatusOK, body: map[string]any{}}
	if scripted, ok := rt.replies[index]; ok {
		answer = scripted
	} else if rt.fallback != nil {
		answer = *rt.fallback
	}
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(answer.status)
	_ = json.NewEncoder(w).Encode(answer.body)
}

// route returns the entry for method and path, creating it. Callers hold a.mu.
func (a *ApiMock) route(method, path string) *route {
	key := method + " " + path
	rt, ok := a.routes[key]
	if !ok {
		rt = &route{replies: map[int]reply{}}
		a.routes[key] = rt
	}
	return rt
}

// SetResponse scripts the reply to call number index, or to every unscripted call
// when index is -1.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	rt := a.route(method, path)
	if index == -1 {
		rt.fallback = &reply{status: status, body: response}
		return
	}
	rt.replies[index] = reply{status: status, body: response}
}

// GetRequestBody returns the decoded JSON body of call number index, or nil.
func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	if call, ok := a.call(method, path, index); ok {
		return call.body
	}
	return nil
}

// GetRequestHeaders returns the first value of each header of call number index, or nil.
func (a *ApiMock) GetRequestHeaders(method, path string, index int) map[string]string {
	if call, ok := a.call(method, path, index); ok {
		return call.headers
	}
	return nil
}

func (a *ApiMock) call(method, path string, index int) (recordedCall, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	rt := a.route(method, path)
	if index < 0 || index >= len(rt.calls) {
		return recordedCall{}, false
	}
	return rt.calls[index], true
}

// RequestCount returns how many requests reached method and path.
func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.route(method, path).calls)
}

// ClearResponses forgets the calls and scripted replies of method and path.
func (a *ApiMock) ClearResponses(method, path string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.routes, method+" "+path)
}

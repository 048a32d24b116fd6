package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/demoapps/rbac-portal/internal/api/metrics"
	"github.com/demoapps/rbac-portal/internal/core/domain"
)

// DefaultDelay is the artificial latency applied to every synthesized
// response, matching the reference behavior of the demo backend.
const DefaultDelay = 500 * time.Millisecond

var userByIDPath = regexp.MustCompile(`^/api/users/(\d+)$`)

// FakeBackend is an http.RoundTripper that emulates the remote auth/user API
// entirely in-process. Recognized (path, method) pairs are resolved locally
// with a fixed artificial delay; everything else is delegated to the next
// transport in the chain, undelayed.
type FakeBackend struct {
	registry *Registry
	delay    time.Duration
	next     http.RoundTripper
	now      func() time.Time
}

// NewFakeBackend builds a FakeBackend over the given registry. A negative
// delay is treated as zero; a nil next falls back to http.DefaultTransport.
func NewFakeBackend(registry *Registry, delay time.Duration, next http.RoundTripper) *FakeBackend {
	if delay < 0 {
		delay = 0
	}
	if next == nil {
		next = http.DefaultTransport
	}
	return &FakeBackend{
		registry: registry,
		delay:    delay,
		next:     next,
		now:      time.Now,
	}
}

// outcome is a materialized response, success or failure alike, so that the
// latency simulation applies identically to both kinds before the outcome is
// turned back into an http.Response.
type outcome struct {
	status int
	body   any
}

func ok(body any) outcome {
	return outcome{status: http.StatusOK, body: body}
}

type errorBody struct {
	Message string `json:"message"`
}

func unauthorized() outcome {
	return outcome{status: http.StatusUnauthorized, body: errorBody{Message: "Unauthorized"}}
}

func notFound() outcome {
	return outcome{status: http.StatusNotFound, body: errorBody{Message: "Not found"}}
}

func (b *FakeBackend) RoundTrip(req *http.Request) (*http.Response, error) {
	var (
		route string
		out   outcome
	)

	switch {
	case req.URL.Path == "/api/auth/login" && req.Method == http.MethodPost:
		route, out = "/api/auth/login", b.authenticate(req)
	case req.URL.Path == "/api/users" && req.Method == http.MethodGet:
		route, out = "/api/users", b.listUsers(req)
	case userByIDPath.MatchString(req.URL.Path) && req.Method == http.MethodGet:
		route, out = "/api/users/{id}", b.userByID(req)
	default:
		// Not ours; hand over to the real (or further simulated) transport.
		return b.next.RoundTrip(req)
	}

	// The outcome is fully built before the delay, so success and failure
	// resolve after the same interval. There is deliberately no abort path:
	// once a simulated request is issued it always resolves.
	start := b.now()
	if b.delay > 0 {
		time.Sleep(b.delay)
	}

	metrics.BackendRequestsTotal.WithLabelValues(route, strconv.Itoa(out.status)).Inc()
	metrics.BackendRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())

	return synthesize(req, out)
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (b *FakeBackend) authenticate(req *http.Request) outcome {
	var creds loginBody
	if req.Body != nil {
		defer req.Body.Close()
		_ = json.NewDecoder(req.Body).Decode(&creds)
	}

	user, found := b.registry.FindByCredentials(creds.Username, creds.Password)
	if !found {
		// Deliberately does not say which of the two was wrong.
		return outcome{status: http.StatusUnauthorized, body: errorBody{Message: "Username or password is incorrect"}}
	}

	return ok(loginResult{
		Token: domain.IssueToken(user.ID, b.now()),
		User:  user.WithoutPassword(),
	})
}

func (b *FakeBackend) listUsers(req *http.Request) outcome {
	caller, found := b.caller(req)
	if !found || caller.Role != domain.RoleAdmin {
		return unauthorized()
	}

	users := b.registry.All()
	for i := range users {
		users[i] = users[i].WithoutPassword()
	}
	return ok(users)
}

func (b *FakeBackend) userByID(req *http.Request) outcome {
	if !b.isLoggedIn(req) {
		return unauthorized()
	}

	// The path matched userByIDPath, so the capture is all digits.
	id, _ := strconv.Atoi(userByIDPath.FindStringSubmatch(req.URL.Path)[1])
	user, found := b.registry.FindByID(id)
	if !found {
		return notFound()
	}

	// A user may read their own record; admins may read anyone's.
	caller, found := b.caller(req)
	if !found || (caller.ID != id && caller.Role != domain.RoleAdmin) {
		return unauthorized()
	}

	return ok(user.WithoutPassword())
}

// isLoggedIn checks only that the request carries a bearer token of our own
// issue. Resolving who the caller actually is happens in caller.
func (b *FakeBackend) isLoggedIn(req *http.Request) bool {
	return strings.HasPrefix(req.Header.Get("Authorization"), "Bearer "+domain.TokenPrefix)
}

// caller resolves the seeded user embedded in the request's bearer token.
// Malformed or absent tokens resolve to "not authenticated".
func (b *FakeBackend) caller(req *http.Request) (domain.User, bool) {
	id, parsed := domain.ParseBearer(req.Header.Get("Authorization"))
	if !parsed {
		return domain.User{}, false
	}
	return b.registry.FindByID(id)
}

// synthesize turns a materialized outcome back into a regular http.Response.
func synthesize(req *http.Request, out outcome) (*http.Response, error) {
	payload, err := json.Marshal(out.body)
	if err != nil {
		return nil, fmt.Errorf("fake backend: encode response: %w", err)
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", out.status, http.StatusText(out.status)),
		StatusCode:    out.status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(payload)),
		ContentLength: int64(len(payload)),
		Request:       req,
	}, nil
}

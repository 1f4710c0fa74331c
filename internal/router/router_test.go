package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishusinha26/portfolio-backend/config"
	"github.com/rishusinha26/portfolio-backend/internal/container"
	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/internal/domain/repository"
	"github.com/rishusinha26/portfolio-backend/internal/infrastructure/store"
	"github.com/rishusinha26/portfolio-backend/pkg/identity"
	"github.com/rishusinha26/portfolio-backend/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type memMessages struct {
	mu   sync.Mutex
	seq  int
	rows []entity.Message
}

func (m *memMessages) Create(_ context.Context, msg *entity.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	msg.ID = "m" + strconv.Itoa(m.seq)
	msg.CreatedAt = time.Now()
	m.rows = append(m.rows, *msg)
	return nil
}

func (m *memMessages) List(context.Context) ([]entity.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.Message(nil), m.rows...), nil
}

func (m *memMessages) UpdateStatus(_ context.Context, id string, s entity.MessageStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Status = s
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memMessages) MarkRead(context.Context, string) (*entity.Message, error) {
	return nil, repository.ErrNotFound
}
func (m *memMessages) Delete(context.Context, string) error { return repository.ErrNotFound }

type noProjects struct{}

func (noProjects) List(context.Context) ([]entity.Project, error) { return []entity.Project{}, nil }
func (noProjects) Get(context.Context, string) (*entity.Project, error) {
	return nil, repository.ErrNotFound
}
func (noProjects) Create(_ context.Context, p *entity.Project) error { p.ID = "p1"; return nil }
func (noProjects) Update(context.Context, string, entity.ProjectPatch) (*entity.Project, error) {
	return nil, repository.ErrNotFound
}
func (noProjects) Delete(context.Context, string) error        { return repository.ErrNotFound }
func (noProjects) DeleteAll(context.Context) (int64, error)     { return 0, nil }

type noExperiences struct{}

func (noExperiences) List(context.Context, entity.ExperienceFilter) ([]entity.Experience, error) {
	return []entity.Experience{}, nil
}
func (noExperiences) Get(context.Context, string) (*entity.Experience, error) {
	return nil, repository.ErrNotFound
}
func (noExperiences) Create(context.Context, *entity.Experience) error { return nil }
func (noExperiences) Update(context.Context, string, entity.ExperiencePatch) (*entity.Experience, error) {
	return nil, repository.ErrNotFound
}
func (noExperiences) Delete(context.Context, string) error    { return repository.ErrNotFound }
func (noExperiences) DeleteAll(context.Context) (int64, error) { return 0, nil }

// users has one admin with subject "owner"; everyone else is created as a plain user.
type users struct {
	mu   sync.Mutex
	rows map[string]*entity.User
}

func newUsers() *users {
	return &users{rows: map[string]*entity.User{
		"owner": {ID: "u-owner", SubjectID: "owner", Email: "owner@x.com", Role: entity.RoleAdmin},
	}}
}

func (u *users) Create(_ context.Context, usr *entity.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	usr.ID = "u-" + usr.SubjectID
	cp := *usr
	u.rows[usr.SubjectID] = &cp
	return nil
}

func (u *users) GetBySubject(_ context.Context, sub string) (*entity.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if usr, ok := u.rows[sub]; ok {
		cp := *usr
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (u *users) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrNotFound
}
func (u *users) TouchLastLogin(context.Context, string, time.Time) error { return nil }
func (u *users) UpdateRole(context.Context, string, entity.Role) error   { return nil }

const jwtSecret = "test-secret"

func newContainer(t *testing.T, withAuth bool) (*container.Container, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger, _ := test.NewNullLogger()
	c := &container.Container{
		Config: &config.Config{
			AppName:        "portfolio-api",
			AppVersion:     "1.0.0",
			Env:            "test",
			MailProvider:   "none",
			MetricsEnabled: true,
			UploadMaxBytes: 5 << 20,
		},
		Logger: logger,
		Store: &store.Store{
			Messages:    &memMessages{},
			Users:       newUsers(),
			Projects:    noProjects{},
			Experiences: noExperiences{},
		},
		Redis: rdb,
	}
	if withAuth {
		c.Verifier = identity.NewJWTVerifier(jwtSecret, time.Hour)
	}
	return c, mr
}

func token(t *testing.T, sub string) string {
	t.Helper()
	tok, _, err := identity.NewJWTVerifier(jwtSecret, time.Hour).Issue(identity.Claims{Subject: sub, Email: sub + "@x.com"})
	require.NoError(t, err)
	return "Bearer " + tok
}

func call(r http.Handler, method, path, auth string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestEngine_PublicRoutes(t *testing.T) {
	c, _ := newContainer(t, true)
	r := NewEngine(c)

	w := call(r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = call(r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = call(r, http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, decode(t, w)["data"])

	w = call(r, http.MethodGet, "/api/projects/search?q=go", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = call(r, http.MethodGet, "/api/experiences?type=work", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, decode(t, w)["data"])

	w = call(r, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", decode(t, w)["message"])

	w = call(r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "portfolio_http_requests_total")
}

func TestEngine_ContactSubmitWithoutMail(t *testing.T) {
	c, _ := newContainer(t, true)
	r := NewEngine(c)

	w := call(r, http.MethodPost, "/api/contact", "", map[string]string{
		"name": "Ana", "email": "ana@x.com", "message": "hello",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Message sent successfully", body["message"])

	rows, _ := c.Store.Messages.List(context.Background())
	require.Len(t, rows, 1)
	assert.Equal(t, entity.StatusEmailFailed, rows[0].Status)
}

func TestEngine_ContactRateLimit(t *testing.T) {
	c, _ := newContainer(t, true)
	r := NewEngine(c)

	payload := map[string]string{"name": "Ana", "email": "ana@x.com", "message": "hi"}
	for i := 0; i < 5; i++ {
		w := call(r, http.MethodPost, "/api/contact", "", payload)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := call(r, http.MethodPost, "/api/contact", "", payload)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many contact form submissions, please try again later.", decode(t, w)["message"])
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestEngine_GlobalRateLimitSkipsHealth(t *testing.T) {
	c, mr := newContainer(t, true)
	r := NewEngine(c)

	for i := 0; i < 100; i++ {
		require.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/projects", "", nil).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, call(r, http.MethodGet, "/api/projects", "", nil).Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/health", "", nil).Code)

	mr.FastForward(16 * time.Minute)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/projects", "", nil).Code)
}

func TestEngine_AdminGate(t *testing.T) {
	c, _ := newContainer(t, true)
	r := NewEngine(c)

	w := call(r, http.MethodGet, "/api/contact", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token provided", decode(t, w)["message"])

	w = call(r, http.MethodGet, "/api/contact", "Bearer garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(r, http.MethodGet, "/api/contact", token(t, "visitor"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin access required", decode(t, w)["message"])

	w = call(r, http.MethodGet, "/api/contact", token(t, "owner"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	inbox := decode(t, w)
	require.Contains(t, inbox, "data")
	assert.Equal(t, []any{}, inbox["data"])

	w = call(r, http.MethodPost, "/api/projects", token(t, "owner"), map[string]any{"title": "T", "description": "D"})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(r, http.MethodPost, "/api/upload", token(t, "owner"), nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestEngine_AdminGateNotConfigured(t *testing.T) {
	c, _ := newContainer(t, false)
	r := NewEngine(c)

	w := call(r, http.MethodDelete, "/api/projects/p1", "Bearer anything", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, decode(t, w)["message"], "Authentication service not configured")
}

func TestEngine_NoRedisDisablesLimits(t *testing.T) {
	c, _ := newContainer(t, true)
	c.Redis = nil
	r := NewEngine(c)

	payload := map[string]string{"name": "Ana", "email": "ana@x.com", "message": "hi"}
	for i := 0; i < 7; i++ {
		assert.Equal(t, http.StatusCreated, call(r, http.MethodPost, "/api/contact", "", payload).Code)
	}
}

func TestEngine_AdminLimitPerUser(t *testing.T) {
	c, mr := newContainer(t, true)
	r := NewEngine(c)

	owner := token(t, "owner")
	for i := 0; i < AdminRequestsPerMinute; i++ {
		require.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/contact", owner, nil).Code, i)
	}
	w := call(r, http.MethodGet, "/api/contact", owner, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many admin requests, please slow down.", decode(t, w)["message"])

	// public reads share only the IP budget
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/projects", "", nil).Code)

	mr.FastForward(time.Minute)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/contact", owner, nil).Code)
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishusinha26/portfolio-backend/internal/application"
	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type submitterFunc func(context.Context, application.SubmitInput) (*entity.Message, error)

func (f submitterFunc) Submit(ctx context.Context, in application.SubmitInput) (*entity.Message, error) {
	return f(ctx, in)
}

type fakeInbox struct {
	listFn   func() ([]entity.Message, error)
	readFn   func(id string) (*entity.Message, error)
	deleteFn func(id string) error
}

func (f fakeInbox) List(context.Context) ([]entity.Message, error) { return f.listFn() }
func (f fakeInbox) MarkRead(_ context.Context, id string) (*entity.Message, error) {
	return f.readFn(id)
}
func (f fakeInbox) Delete(_ context.Context, id string) error { return f.deleteFn(id) }

type fakeProjects struct {
	created  *entity.Project
	patch    entity.ProjectPatch
	searchQ  string
	searchN  int
	getErr   error
	createFn func(p *entity.Project) (*entity.Project, error)
}

func (f *fakeProjects) List(context.Context) ([]entity.Project, error) {
	return []entity.Project{{ID: "p1", Title: "One"}}, nil
}
func (f *fakeProjects) Get(_ context.Context, id string) (*entity.Project, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &entity.Project{ID: id}, nil
}
func (f *fakeProjects) Create(_ context.Context, p *entity.Project) (*entity.Project, error) {
	f.created = p
	if f.createFn != nil {
		return f.createFn(p)
	}
	p.ID = "new"
	return p, nil
}
func (f *fakeProjects) Update(_ context.Context, id string, patch entity.ProjectPatch) (*entity.Project, error) {
	f.patch = patch
	return &entity.Project{ID: id}, nil
}
func (f *fakeProjects) Delete(context.Context, string) error { return nil }
func (f *fakeProjects) Search(_ context.Context, q string, size int) ([]entity.Project, error) {
	f.searchQ, f.searchN = q, size
	return []entity.Project{{ID: "p2"}}, nil
}

type fakeExperiences struct {
	filter  entity.ExperienceFilter
	created *entity.Experience
	patch   entity.ExperiencePatch
}

func (f *fakeExperiences) List(_ context.Context, flt entity.ExperienceFilter) ([]entity.Experience, error) {
	f.filter = flt
	return []entity.Experience{}, nil
}
func (f *fakeExperiences) Get(_ context.Context, id string) (*entity.Experience, error) {
	return nil, application.NotFound("Experience not found")
}
func (f *fakeExperiences) Create(_ context.Context, e *entity.Experience) (*entity.Experience, error) {
	f.created = e
	return e, nil
}
func (f *fakeExperiences) Update(_ context.Context, id string, p entity.ExperiencePatch) (*entity.Experience, error) {
	f.patch = p
	return &entity.Experience{ID: id}, nil
}
func (f *fakeExperiences) Delete(context.Context, string) error { return nil }

type fakeUploader struct {
	configured bool
	gotName    string
	gotBody    string
	deleteErr  error
}

func (f *fakeUploader) Configured() bool { return f.configured }
func (f *fakeUploader) Upload(_ context.Context, original, _ string, _ int64, r io.Reader) (*application.UploadResult, error) {
	b, _ := io.ReadAll(r)
	f.gotName, f.gotBody = original, string(b)
	return &application.UploadResult{URL: "https://storage.googleapis.com/b/1_" + original, FileName: "1_" + original}, nil
}
func (f *fakeUploader) Delete(_ context.Context, name string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if name == "" {
		return application.Validation("File name required", map[string]string{"fileName": "is required"})
	}
	return nil
}

func do(t *testing.T, r *gin.Engine, method, path string, body io.Reader, contentType string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w, out
}

func jsonBody(v any) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func TestMessageHandler_Submit(t *testing.T) {
	logger, _ := test.NewNullLogger()
	var got application.SubmitInput
	h := NewMessageHandler(submitterFunc(func(_ context.Context, in application.SubmitInput) (*entity.Message, error) {
		got = in
		return &entity.Message{ID: "m1", Name: in.Name, Status: entity.StatusCompleted}, nil
	}), nil, logger)
	r := gin.New()
	r.POST("/api/contact", h.Submit)

	w, body := do(t, r, http.MethodPost, "/api/contact",
		jsonBody(map[string]string{"name": "Ana", "email": "ana@x.com", "message": "hi"}), "application/json")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Message sent successfully", body["message"])
	assert.Equal(t, "Ana", got.Name)
	assert.NotEmpty(t, got.ClientIP)
}

func TestMessageHandler_SubmitErrors(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", application.Validation("Please provide name, email, and message", nil), http.StatusBadRequest, "Please provide name, email, and message"},
		{"persistence", application.Persistence("Failed to save message", errors.New("down")), http.StatusBadRequest, "Failed to save message"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Failed to send message"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewMessageHandler(submitterFunc(func(context.Context, application.SubmitInput) (*entity.Message, error) {
				return nil, tc.err
			}), nil, logger)
			r := gin.New()
			r.POST("/api/contact", h.Submit)
			w, body := do(t, r, http.MethodPost, "/api/contact", jsonBody(map[string]string{"name": "x"}), "application/json")
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.msg, body["message"])
		})
	}
}

func TestMessageHandler_MalformedBody(t *testing.T) {
	logger, _ := test.NewNullLogger()
	h := NewMessageHandler(submitterFunc(func(context.Context, application.SubmitInput) (*entity.Message, error) {
		t.Fatal("submit must not run")
		return nil, nil
	}), nil, logger)
	r := gin.New()
	r.POST("/api/contact", h.Submit)
	w, body := do(t, r, http.MethodPost, "/api/contact", bytes.NewBufferString("{"), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", body["message"])
}

func TestMessageHandler_Inbox(t *testing.T) {
	logger, _ := test.NewNullLogger()
	h := NewMessageHandler(nil, fakeInbox{
		listFn: func() ([]entity.Message, error) { return []entity.Message{{ID: "a"}, {ID: "b"}}, nil },
		readFn: func(id string) (*entity.Message, error) {
			if id == "missing" {
				return nil, application.NotFound("Message not found")
			}
			return &entity.Message{ID: id, Read: true}, nil
		},
		deleteFn: func(string) error { return nil },
	}, logger)
	r := gin.New()
	r.GET("/api/contact", h.List)
	r.PATCH("/api/contact/:id/read", h.MarkRead)
	r.DELETE("/api/contact/:id", h.Delete)

	w, body := do(t, r, http.MethodGet, "/api/contact", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["data"], 2)

	empty := NewMessageHandler(nil, fakeInbox{
		listFn: func() ([]entity.Message, error) { return []entity.Message{}, nil },
	}, logger)
	re := gin.New()
	re.GET("/api/contact", empty.List)
	w, body = do(t, re, http.MethodGet, "/api/contact", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, body, "data")
	assert.Equal(t, []any{}, body["data"])

	w, body = do(t, r, http.MethodPatch, "/api/contact/missing/read", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Message not found", body["message"])

	w, body = do(t, r, http.MethodDelete, "/api/contact/a", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Message deleted successfully", body["message"])
}

func TestProjectHandler(t *testing.T) {
	svc := &fakeProjects{}
	h := NewProjectHandler(svc)
	r := gin.New()
	r.GET("/api/projects/search", h.Search)
	r.GET("/api/projects/:id", h.Get)
	r.POST("/api/projects", h.Create)
	r.PUT("/api/projects/:id", h.Update)

	w, body := do(t, r, http.MethodPost, "/api/projects",
		jsonBody(map[string]any{"title": "T", "description": "D", "techStack": []string{"go"}, "featured": true}), "application/json")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "new", body["data"].(map[string]any)["_id"])
	assert.Equal(t, []string{"go"}, svc.created.TechStack)
	assert.True(t, svc.created.Featured)

	w, _ = do(t, r, http.MethodPut, "/api/projects/p1", jsonBody(map[string]any{"order": 3}), "application/json")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.patch.Order)
	assert.Equal(t, 3, *svc.patch.Order)
	assert.Nil(t, svc.patch.Title)

	w, body = do(t, r, http.MethodGet, "/api/projects/search?q=react&size=5", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "react", svc.searchQ)
	assert.Equal(t, 5, svc.searchN)
	assert.EqualValues(t, 1, body["meta"].(map[string]any)["count"])

	svc.getErr = application.NotFound("Project not found")
	w, body = do(t, r, http.MethodGet, "/api/projects/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Project not found", body["message"])
}

func TestExperienceHandler(t *testing.T) {
	svc := &fakeExperiences{}
	h := NewExperienceHandler(svc)
	r := gin.New()
	r.GET("/api/experiences", h.List)
	r.GET("/api/experiences/:id", h.Get)
	r.POST("/api/experiences", h.Create)
	r.PUT("/api/experiences/:id", h.Update)

	w, _ := do(t, r, http.MethodGet, "/api/experiences?type=Work", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.ExperienceWork, svc.filter.Type)

	w, _ = do(t, r, http.MethodPost, "/api/experiences", jsonBody(map[string]any{
		"type": "education", "title": "BSc", "organization": "Uni", "startDate": "2019-08-01", "endDate": "2023-05",
	}), "application/json")
	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, time.Date(2019, 8, 1, 0, 0, 0, 0, time.UTC), svc.created.StartDate)
	require.NotNil(t, svc.created.EndDate)
	assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), *svc.created.EndDate)

	w, body := do(t, r, http.MethodPost, "/api/experiences", jsonBody(map[string]any{"type": "internship"}), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", body["message"])

	w, body = do(t, r, http.MethodPost, "/api/experiences", jsonBody(map[string]any{"startDate": "yesterday"}), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid startDate", body["message"])

	w, _ = do(t, r, http.MethodPut, "/api/experiences/e1", jsonBody(map[string]any{"endDate": "", "current": true}), "application/json")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.patch.ClearEndDate)
	assert.Nil(t, svc.patch.EndDate)

	w, _ = do(t, r, http.MethodGet, "/api/experiences/x", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func multipartFile(t *testing.T, field, name, content string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, _ = fw.Write([]byte(content))
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadHandler_NotConfigured(t *testing.T) {
	h := NewUploadHandler(&fakeUploader{}, 1<<20)
	r := gin.New()
	r.POST("/api/upload", h.Upload)
	r.DELETE("/api/upload", h.Delete)

	w, body := do(t, r, http.MethodPost, "/api/upload", nil, "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Contains(t, body["message"], "GCS_BUCKET")

	w, _ = do(t, r, http.MethodDelete, "/api/upload", jsonBody(map[string]string{"fileName": "a"}), "application/json")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestUploadHandler(t *testing.T) {
	up := &fakeUploader{configured: true}
	h := NewUploadHandler(up, 1<<20)
	r := gin.New()
	r.POST("/api/upload", h.Upload)
	r.DELETE("/api/upload", h.Delete)

	body, ct := multipartFile(t, "file", "shot.png", "png-bytes")
	w, out := do(t, r, http.MethodPost, "/api/upload", body, ct)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "File uploaded successfully", out["message"])
	assert.Equal(t, "1_shot.png", out["data"].(map[string]any)["fileName"])
	assert.Equal(t, "shot.png", up.gotName)
	assert.Equal(t, "png-bytes", up.gotBody)

	body, ct = multipartFile(t, "other", "x.png", "x")
	w, out = do(t, r, http.MethodPost, "/api/upload", body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", out["message"])

	w, out = do(t, r, http.MethodDelete, "/api/upload", jsonBody(map[string]string{}), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "File name required", out["message"])

	up.deleteErr = application.NotFound("File not found")
	w, _ = do(t, r, http.MethodDelete, "/api/upload", jsonBody(map[string]string{"fileName": "gone"}), "application/json")
	assert.Equal(t, http.StatusNotFound, w.Code)

	up.deleteErr = nil
	w, out = do(t, r, http.MethodDelete, "/api/upload", jsonBody(map[string]string{"fileName": "1_shot.png"}), "application/json")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "File deleted successfully", out["message"])
}

func TestSystemHandler(t *testing.T) {
	h := NewSystemHandler("portfolio-api", "1.0.0")
	r := gin.New()
	r.GET("/", h.Root)
	r.GET("/api/health", h.Health)
	r.NoRoute(h.NoRoute)

	w, body := do(t, r, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Portfolio API is running", body["message"])
	assert.NotEmpty(t, body["timestamp"])

	w, body = do(t, r, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1.0.0", body["data"].(map[string]any)["version"])

	w, body = do(t, r, http.MethodPost, "/api/nothing", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", body["message"])
	assert.Equal(t, map[string]any{"path": "/api/nothing", "method": "POST"}, body["error"])
}

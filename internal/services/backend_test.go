package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type capturedUpload struct {
	Email    string
	Filename string
	Content  []byte
}

type fakeBackend struct {
	mu      sync.Mutex
	uploads []capturedUpload
	logins  []models.LoginRequest
	signups []models.SignupRequest

	uploadStatus int
	uploadBody   string
	authStatus   int
	authBody     string
}

func (f *fakeBackend) server(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, err := io.ReadAll(file)
		require.NoError(t, err)

		f.mu.Lock()
		f.uploads = append(f.uploads, capturedUpload{
			Email:    r.FormValue("email"),
			Filename: header.Filename,
			Content:  content,
		})
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.uploadStatus)
		_, _ = io.WriteString(w, f.uploadBody)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.mu.Lock()
		f.logins = append(f.logins, req)
		f.mu.Unlock()
		w.WriteHeader(f.authStatus)
		_, _ = io.WriteString(w, f.authBody)
	})
	mux.HandleFunc("/api/signup", func(w http.ResponseWriter, r *http.Request) {
		var req models.SignupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		f.mu.Lock()
		f.signups = append(f.signups, req)
		f.mu.Unlock()
		w.WriteHeader(f.authStatus)
		_, _ = io.WriteString(w, f.authBody)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func sampleFile() *models.SelectedFile {
	data := []byte("%PDF-1.4 fake resume")
	return &models.SelectedFile{Name: "resume.pdf", Size: int64(len(data)), Data: data}
}

func TestAnalyzeSendsMultipartAndKeepsBody(t *testing.T) {
	body := `{"name":"Jane Doe","technical_skills":["Python","SQL"],"ats_score":82}`
	backend := &fakeBackend{uploadStatus: http.StatusOK, uploadBody: body}
	srv := backend.server(t)
	client := NewBackendClient(srv.URL+"/", "test@gmail.com", 5*time.Second)

	record, err := client.Analyze(context.Background(), sampleFile())
	require.NoError(t, err)

	assert.Equal(t, body, string(record.Raw))
	require.NotNil(t, record.Result.Name)
	assert.Equal(t, "Jane Doe", *record.Result.Name)

	require.Len(t, backend.uploads, 1)
	assert.Equal(t, "test@gmail.com", backend.uploads[0].Email)
	assert.Equal(t, "resume.pdf", backend.uploads[0].Filename)
	assert.Equal(t, sampleFile().Data, backend.uploads[0].Content)
}

func TestAnalyzeErrorBody(t *testing.T) {
	backend := &fakeBackend{uploadStatus: http.StatusBadRequest, uploadBody: `{"error":"bad format"}`}
	client := NewBackendClient(backend.server(t).URL, "test@gmail.com", 0)

	_, err := client.Analyze(context.Background(), sampleFile())

	var backendErr *models.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusBadRequest, backendErr.StatusCode)
	assert.Equal(t, "bad format", backendErr.Message)
}

func TestAnalyzeErrorWithoutBody(t *testing.T) {
	backend := &fakeBackend{uploadStatus: http.StatusInternalServerError, uploadBody: `<html>oops</html>`}
	client := NewBackendClient(backend.server(t).URL, "test@gmail.com", 0)

	_, err := client.Analyze(context.Background(), sampleFile())

	var backendErr *models.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Empty(t, backendErr.Message)
}

func TestAnalyzeUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewBackendClient(url, "test@gmail.com", time.Second)
	_, err := client.Analyze(context.Background(), sampleFile())

	require.Error(t, err)
	var backendErr *models.BackendError
	assert.NotErrorAs(t, err, &backendErr)
}

func TestAnalyzeHonoursCancelledContext(t *testing.T) {
	backend := &fakeBackend{uploadStatus: http.StatusOK, uploadBody: `{}`}
	client := NewBackendClient(backend.server(t).URL, "test@gmail.com", 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Analyze(ctx, sampleFile())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, backend.uploads)
}

func TestLoginSuccess(t *testing.T) {
	backend := &fakeBackend{
		authStatus: http.StatusOK,
		authBody:   `{"success":true,"username":"jane","upload_count":3,"skills":["Go","SQL"]}`,
	}
	client := NewBackendClient(backend.server(t).URL, "", 0)

	profile, err := client.Login(context.Background(), models.LoginRequest{Username: "jane@example.com", Password: "pw"})
	require.NoError(t, err)

	assert.Equal(t, &models.AuthProfile{Username: "jane", UploadCount: 3, Skills: []string{"Go", "SQL"}}, profile)
	require.Len(t, backend.logins, 1)
	assert.Equal(t, models.LoginRequest{Username: "jane@example.com", Password: "pw"}, backend.logins[0])
}

func TestLoginFailureShapes(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{name: "success false", status: http.StatusOK, body: `{"success":false,"message":"invalid credentials"}`, wantMessage: "invalid credentials"},
		{name: "error status", status: http.StatusUnauthorized, body: `{"success":false,"message":"Invalid password"}`, wantMessage: "Invalid password"},
		{name: "error status without body", status: http.StatusInternalServerError, body: ``, wantMessage: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{authStatus: tt.status, authBody: tt.body}
			client := NewBackendClient(backend.server(t).URL, "", 0)

			_, err := client.Login(context.Background(), models.LoginRequest{Username: "a@b.com", Password: "x"})

			var backendErr *models.BackendError
			require.ErrorAs(t, err, &backendErr)
			assert.Equal(t, tt.status, backendErr.StatusCode)
			assert.Equal(t, tt.wantMessage, backendErr.Message)
		})
	}
}

func TestLoginUndecodableSuccessBody(t *testing.T) {
	backend := &fakeBackend{authStatus: http.StatusOK, authBody: `not json`}
	client := NewBackendClient(backend.server(t).URL, "", 0)

	_, err := client.Login(context.Background(), models.LoginRequest{Username: "a@b.com", Password: "x"})

	require.Error(t, err)
	var backendErr *models.BackendError
	assert.NotErrorAs(t, err, &backendErr)
}

func TestSignupPostsToSignupEndpoint(t *testing.T) {
	backend := &fakeBackend{authStatus: http.StatusCreated, authBody: `{"success":true,"message":"Signup successful"}`}
	client := NewBackendClient(backend.server(t).URL, "", 0)

	req := models.SignupRequest{Username: "jdoe", Email: "jane@example.com", Password: "secret"}
	profile, err := client.Signup(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, profile.Username)
	require.Len(t, backend.signups, 1)
	assert.Equal(t, req, backend.signups[0])
	assert.Empty(t, backend.logins)
}

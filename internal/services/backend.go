package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/kataras/golog"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	uploadPath = "/upload"
	loginPath  = "/login"
	signupPath = "/api/signup"

	uploadFileField  = "file"
	uploadEmailField = "email"
)

type AnalyzerService interface {
	Analyze(ctx context.Context, file *models.SelectedFile) (*models.AnalysisRecord, error)
}

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthProfile, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.AuthProfile, error)
}

// BackendClient talks to the external analysis and auth service. Every
// application failure comes back as *models.BackendError; anything else is
// a transport or decoding failure.
type BackendClient interface {
	AnalyzerService
	AuthService
}

type backendClient struct {
	baseURL     string
	uploadEmail string
	timeout     time.Duration
}

func NewBackendClient(baseURL, uploadEmail string, timeout time.Duration) BackendClient {
	return &backendClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		uploadEmail: uploadEmail,
		timeout:     timeout,
	}
}

// Analyze implements AnalyzerService.
func (b *backendClient) Analyze(ctx context.Context, file *models.SelectedFile) (*models.AnalysisRecord, error) {
	if file == nil {
		return nil, fmt.Errorf("no file to analyze")
	}
	// fiber.Agent has no context support, so cancellation is only honoured
	// before the request is sent.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set(uploadEmailField, b.uploadEmail)

	agent := b.newAgent(uploadPath)
	agent.FileData(&fiber.FormFile{
		Fieldname: uploadFileField,
		Name:      file.Name,
		Content:   file.Data,
	}).MultipartForm(args)

	golog.Debugf("📤 Uploading %s (%d bytes) to %s", file.Name, file.Size, b.baseURL+uploadPath)

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to reach analysis service: %w", errors.Join(errs...))
	}

	if !isSuccess(status) {
		var errResp models.UploadErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			golog.Debugf("upload error body is not JSON: %v", err)
		}
		return nil, &models.BackendError{
			StatusCode: status,
			Message:    strings.TrimSpace(errResp.Error),
		}
	}

	record, err := models.DecodeAnalysisRecord(body)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Login implements AuthService.
func (b *backendClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthProfile, error) {
	return b.authenticate(ctx, loginPath, req)
}

// Signup implements AuthService.
func (b *backendClient) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthProfile, error) {
	return b.authenticate(ctx, signupPath, req)
}

// authenticate normalizes both auth endpoints into one success/failure shape.
func (b *backendClient) authenticate(ctx context.Context, path string, payload any) (*models.AuthProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	agent := b.newAgent(path)
	agent.JSON(payload)

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to reach auth service: %w", errors.Join(errs...))
	}

	var resp models.AuthResponse
	decodeErr := json.Unmarshal(body, &resp)

	if !isSuccess(status) {
		return nil, &models.BackendError{StatusCode: status, Message: messageOf(resp)}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode auth response: %w", decodeErr)
	}

	if !resp.Success {
		return nil, &models.BackendError{StatusCode: status, Message: messageOf(resp)}
	}

	profile := &models.AuthProfile{
		Skills: resp.Skills,
	}
	if resp.Username != nil {
		profile.Username = strings.TrimSpace(*resp.Username)
	}
	if resp.UploadCount != nil {
		profile.UploadCount = *resp.UploadCount
	}

	return profile, nil
}

func (b *backendClient) newAgent(path string) *fiber.Agent {
	agent := fiber.Post(b.baseURL + path)
	if b.timeout > 0 {
		agent.Timeout(b.timeout)
	}
	return agent
}

func isSuccess(status int) bool {
	return status >= fiber.StatusOK && status < fiber.StatusMultipleChoices
}

func messageOf(resp models.AuthResponse) string {
	if resp.Message == nil {
		return ""
	}
	return strings.TrimSpace(*resp.Message)
}

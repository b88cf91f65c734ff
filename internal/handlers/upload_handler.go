package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/kataras/golog"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/render"
	"alfredoptarigan/resume-analyzer/internal/services"
	"alfredoptarigan/resume-analyzer/internal/workflow"
)

var uploadSteps = []string{
	"1️⃣ Upload your resume in PDF or DOCX format.",
	"2️⃣ Our AI extracts skills, experience, projects & education.",
	"3️⃣ ATS (Applicant Tracking System) score is calculated.",
	"4️⃣ Get job-fit suggestions and improvements instantly.",
}

// UploadView is what the upload form and status lines need.
type UploadView struct {
	IsSubmitting bool
	SelectedFile string
	ErrorMessage string
}

type UploadHandler struct {
	storageService services.StorageService
}

func NewUploadHandler(storageService services.StorageService) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
	}
}

// HandleUploadPage handles GET /upload
func (h *UploadHandler) HandleUploadPage(c *fiber.Ctx) error {
	sess := currentSession(c)
	state := sess.Upload.State()
	feedback := sess.Feedback.State()

	err := c.Render("upload", fiber.Map{
		"Title":     "Upload Resume",
		"Steps":     uploadSteps,
		"Upload":    uploadView(state),
		"HasResult": state.Result != nil,
		"Result":    render.Record(state.Result),
		"Feedback":  feedback,
	})
	if err == nil && feedback.Acknowledgement != "" {
		sess.Feedback.Dismiss()
	}
	return err
}

// HandleUpload handles POST /upload. A file part replaces the selection;
// without one the previously selected file is submitted again.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	sess := currentSession(c)

	if fileHeader, err := c.FormFile("file"); err == nil && fileHeader.Filename != "" {
		file, err := h.storageService.ReadSelectedFile(fileHeader)
		if err != nil {
			golog.Warnf("❌ Failed to read upload %q for session %s: %v", fileHeader.Filename, sess.ID, err)
			return fiber.NewError(fiber.StatusBadRequest, "Failed to read the uploaded file.")
		}
		sess.Upload.SelectFile(file)
	}

	err := sess.Upload.Submit(c.UserContext())
	switch {
	case err == nil:
		golog.Infof("✅ Resume analyzed for session %s", sess.ID)
	case errors.Is(err, workflow.ErrNoFileSelected):
		golog.Debugf("Upload submitted without a file for session %s", sess.ID)
	case errors.Is(err, workflow.ErrSubmissionInProgress):
		golog.Debugf("Upload already in flight for session %s", sess.ID)
	default:
		golog.Warnf("❌ Resume analysis failed for session %s: %v", sess.ID, err)
	}

	return c.Redirect("/upload", fiber.StatusSeeOther)
}

// HandleFeedback handles POST /feedback. Feedback never leaves the process.
func (h *UploadHandler) HandleFeedback(c *fiber.Ctx) error {
	sess := currentSession(c)

	if raw := c.FormValue("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "rating must be a number")
		}
		if err := sess.Feedback.SetRating(rating); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	sess.Feedback.SetComment(c.FormValue("comment"))
	sess.Feedback.Submit()

	return c.Redirect("/upload", fiber.StatusSeeOther)
}

func uploadView(state workflow.UploadState) UploadView {
	return UploadView{
		IsSubmitting: state.IsSubmitting,
		SelectedFile: describeFile(state.SelectedFile),
		ErrorMessage: state.ErrorMessage,
	}
}

// describeFile renders e.g. "resume.pdf (10.0 KB, 2 pages, 412 words)".
func describeFile(f *models.SelectedFile) string {
	if f == nil {
		return ""
	}

	details := []string{formatSize(f.Size)}
	if n := f.Summary.Pages; n > 0 {
		details = append(details, plural(n, "page"))
	}
	if n := f.Summary.Words; n > 0 {
		details = append(details, plural(n, "word"))
	}

	return fmt.Sprintf("%s (%s)", f.Name, strings.Join(details, ", "))
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

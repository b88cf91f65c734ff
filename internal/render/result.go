// Package render turns an analysis record into display strings. It has no
// I/O and no state; every missing value becomes a fixed placeholder.
package render

import (
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const (
	NotFound      = "Not Found"
	NotAvailable  = "N/A"
	LoadingText   = "Loading analysis..."
	NoJobFitText  = "No Job Fit Data"
	atsScoreScale = "/100"
)

// strict strips every tag, so backend strings always display as plain text.
var strict = bluemonday.StrictPolicy()

type ListItem struct {
	Key  int
	Text string
}

// ListView is a rendered sequence: Items in received order, or only a
// Placeholder when the sequence is empty.
type ListView struct {
	Items       []ListItem
	Placeholder string
}

type EducationItem struct {
	Key         int
	Degree      string
	Institution string
}

type EducationView struct {
	Items       []EducationItem
	Placeholder string
}

type JobFitRow struct {
	Key   int
	Title string
	Value string
}

type JobFitView struct {
	Rows        []JobFitRow
	Placeholder string
}

type ResultView struct {
	Loading     bool
	LoadingText string

	Status              string
	Name                string
	Email               string
	Phone               string
	LinkedIn            string
	GitHub              string
	Portfolio           string
	ProfessionalSummary string

	Education       EducationView
	TechnicalSkills string
	Projects        ListView
	Internships     ListView
	Certifications  ListView
	Achievements    ListView

	WordCount     string
	PredictedRole string
	ATSScore      string
	JobFit        JobFitView
}

// Result renders an analysis result. A nil result renders the loading view.
func Result(r *models.AnalysisResult) ResultView {
	if r == nil {
		return ResultView{Loading: true, LoadingText: LoadingText}
	}

	return ResultView{
		Status:              orDefault(r.Summary, NotAvailable),
		Name:                orDefault(r.Name, NotFound),
		Email:               orDefault(r.Email, NotFound),
		Phone:               orDefault(r.Phone, NotFound),
		LinkedIn:            orDefault(r.LinkedIn, NotFound),
		GitHub:              orDefault(r.GitHub, NotFound),
		Portfolio:           orDefault(r.Portfolio, NotFound),
		ProfessionalSummary: orDefault(r.ProfessionalSummary, NotFound),

		Education:       education(r.Education),
		TechnicalSkills: joined(r.TechnicalSkills),
		Projects:        list(r.Projects),
		Internships:     list(r.Internships),
		Certifications:  list(r.Certifications),
		Achievements:    list(r.Achievements),

		WordCount:     wordCount(r.WordCount),
		PredictedRole: orDefault(r.PredictedRole, NotAvailable),
		ATSScore:      atsScore(r.ATSScore),
		JobFit:        jobFit(r.JobFit),
	}
}

// Record renders a stored record, or the loading view when there is none.
func Record(rec *models.AnalysisRecord) ResultView {
	if rec == nil {
		return Result(nil)
	}
	return Result(&rec.Result)
}

// PlainText strips markup from a backend string and decodes entities.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

func orDefault(s *string, placeholder string) string {
	if s == nil {
		return placeholder
	}
	if text := PlainText(*s); text != "" {
		return text
	}
	return placeholder
}

func list(items []string) ListView {
	cleaned := plainItems(items)
	if len(cleaned) == 0 {
		return ListView{Placeholder: NotFound}
	}

	view := ListView{Items: make([]ListItem, len(cleaned))}
	for i, text := range cleaned {
		view.Items[i] = ListItem{Key: i, Text: text}
	}
	return view
}

func joined(items []string) string {
	cleaned := plainItems(items)
	if len(cleaned) == 0 {
		return NotFound
	}
	return strings.Join(cleaned, ", ")
}

// plainItems strips markup and drops elements left blank, keeping order.
func plainItems(items []string) []string {
	var cleaned []string
	for _, item := range items {
		if text := PlainText(item); text != "" {
			cleaned = append(cleaned, text)
		}
	}
	return cleaned
}

func education(entries []models.EducationEntry) EducationView {
	if len(entries) == 0 {
		return EducationView{Placeholder: NotFound}
	}

	view := EducationView{Items: make([]EducationItem, len(entries))}
	for i, entry := range entries {
		view.Items[i] = EducationItem{
			Key:         i,
			Degree:      orDefault(entry.Education, NotAvailable),
			Institution: orDefault(entry.Institution, NotAvailable),
		}
	}
	return view
}

func wordCount(n *int) string {
	if n == nil {
		return NotAvailable
	}
	return strconv.Itoa(*n)
}

func atsScore(s *models.Score) string {
	switch {
	case s == nil || s.IsZero():
		return NotAvailable
	case s.Number != nil:
		return s.String() + atsScoreScale
	default:
		if text := PlainText(s.Text); text != "" {
			return text
		}
		return NotAvailable
	}
}

func jobFit(fit models.JobFit) JobFitView {
	if len(fit) == 0 {
		return JobFitView{Placeholder: NoJobFitText}
	}

	view := JobFitView{Rows: make([]JobFitRow, len(fit))}
	for i, entry := range fit {
		value := PlainText(entry.Value.String())
		if value == "" {
			value = NotAvailable
		}
		view.Rows[i] = JobFitRow{
			Key:   i,
			Title: PlainText(entry.Title),
			Value: value,
		}
	}
	return view
}

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// AnalysisResult is the structured output of the backend's resume parse.
// Every field is optional; a missing or null field decodes to nil.
type AnalysisResult struct {
	Name                *string          `json:"name,omitempty"`
	Email               *string          `json:"email,omitempty"`
	Phone               *string          `json:"phone,omitempty"`
	LinkedIn            *string          `json:"linkedin,omitempty"`
	GitHub              *string          `json:"github,omitempty"`
	Portfolio           *string          `json:"portfolio,omitempty"`
	ProfessionalSummary *string          `json:"professional_summary,omitempty"`
	Education           []EducationEntry `json:"education,omitempty"`
	TechnicalSkills     []string         `json:"technical_skills,omitempty"`
	Projects            []string         `json:"projects,omitempty"`
	Internships         []string         `json:"internships,omitempty"`
	Certifications      []string         `json:"certifications,omitempty"`
	Achievements        []string         `json:"achievements,omitempty"`
	WordCount           *int             `json:"word_count,omitempty"`
	PredictedRole       *string          `json:"predicted_role,omitempty"`
	ATSScore            *Score           `json:"ats_score,omitempty"`
	JobFit              JobFit           `json:"job_fit,omitempty"`
	Summary             *string          `json:"summary,omitempty"`
}

type EducationEntry struct {
	Education   *string `json:"education,omitempty"`
	Institution *string `json:"institution,omitempty"`
}

// Score holds a value the backend sends either as a number or as a status
// string such as "N/A".
type Score struct {
	Number *float64
	Text   string
}

func NumberScore(v float64) Score {
	return Score{Number: &v}
}

func TextScore(s string) Score {
	return Score{Text: s}
}

// IsZero reports whether the score carries neither a number nor text.
func (s Score) IsZero() bool {
	return s.Number == nil && s.Text == ""
}

func (s Score) String() string {
	if s.Number != nil {
		return strconv.FormatFloat(*s.Number, 'f', -1, 64)
	}
	return s.Text
}

func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = Score{}
		return nil
	}

	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("invalid score string: %w", err)
		}
		*s = TextScore(text)
		return nil
	}

	var number float64
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("score must be a number or a string: %w", err)
	}
	*s = NumberScore(number)
	return nil
}

func (s Score) MarshalJSON() ([]byte, error) {
	switch {
	case s.Number != nil:
		return json.Marshal(*s.Number)
	case s.Text != "":
		return json.Marshal(s.Text)
	default:
		return []byte("null"), nil
	}
}

type JobFitEntry struct {
	Title string
	Value Score
}

// JobFit is the job-title to fit-score mapping, kept in the order the
// backend sent its keys.
type JobFit []JobFitEntry

func (f *JobFit) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read job_fit: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("job_fit must be an object")
	}

	entries := JobFit{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read job_fit key: %w", err)
		}
		title, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected job_fit key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to read job_fit value for %q: %w", title, err)
		}

		var value Score
		if err := value.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("job_fit %q: %w", title, err)
		}

		entries = append(entries, JobFitEntry{Title: title, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read job_fit: %w", err)
	}

	*f = entries
	return nil
}

func (f JobFit) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Title)
		if err != nil {
			return nil, err
		}
		value, err := entry.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AnalysisRecord pairs a decoded result with the exact response body it was
// decoded from.
type AnalysisRecord struct {
	Raw    json.RawMessage
	Result AnalysisResult
}

func DecodeAnalysisRecord(body []byte) (*AnalysisRecord, error) {
	raw := make([]byte, len(body))
	copy(raw, body)

	var result AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis result: %w", err)
	}

	return &AnalysisRecord{
		Raw:    raw,
		Result: result,
	}, nil
}

package models

// DocumentKind is derived from the file extension only; it is a display
// hint and never used to reject a file.
type DocumentKind string

const (
	KindPDF   DocumentKind = "pdf"
	KindDOCX  DocumentKind = "docx"
	KindOther DocumentKind = "other"
)

// SelectedFile is the resume blob chosen by the user, held in memory until
// it is submitted or replaced.
type SelectedFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
	Summary     FileSummary
}

// FileSummary is what the upload page shows about the selected file.
// Pages and Words are zero when they could not be determined.
type FileSummary struct {
	Kind  DocumentKind
	Pages int
	Words int
}

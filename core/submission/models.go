package submission

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind identifies one of the required artifacts. The declared order of
// Kinds is the batch submission order.
type Kind string

const (
	KindTextProcess Kind = "textprocess"
	KindClassifier  Kind = "classifier"
	KindEmbedding   Kind = "embedding"
)

// Kinds is the fixed, ordered set of required artifacts. KindEmbedding is
// last: its success marks the student's final submission.
var Kinds = []Kind{KindTextProcess, KindClassifier, KindEmbedding}

// FileType returns the backend-mapped file_type form value.
func (k Kind) FileType() string {
	switch k {
	case KindTextProcess:
		return "ipynb_textprocess"
	case KindClassifier:
		return "ipynb_classifier"
	case KindEmbedding:
		return "embeddings"
	}
	return string(k)
}

// Ext returns the required file extension for this kind.
func (k Kind) Ext() string {
	if k == KindEmbedding {
		return ".txt"
	}
	return ".ipynb"
}

// Final reports whether a successful upload of this kind completes the
// student's submission.
func (k Kind) Final() bool {
	return k == KindEmbedding
}

func (k Kind) valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Status is the per-slot upload state: Idle -> Uploading -> Success|Error.
// Selecting a new file returns a slot to Idle.
type Status int

const (
	StatusIdle Status = iota
	StatusUploading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusUploading:
		return "uploading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// File is a selected artifact file held in memory until upload.
type File struct {
	Name string
	Data []byte
}

// Slot holds everything the UI needs about one artifact: the selected file,
// its upload status and the last status message. Keeping the three together
// makes "selecting a file resets status" enforceable in one place.
type Slot struct {
	Kind    Kind
	File    *File
	Status  Status
	Message string
}

// HasSubmittedKey is the local store key for the student's submitted flag.
func HasSubmittedKey(assessmentID int, userID string) string {
	return fmt.Sprintf("has_submitted::%d::%s", assessmentID, userID)
}

// Record is the server-side metadata row for one received artifact.
type Record struct {
	ID               uuid.UUID `db:"id" json:"id"`
	StudentID        uuid.UUID `db:"student_id" json:"student_id"`
	AssessmentID     int       `db:"assessment_id" json:"assessment_id"`
	FileType         string    `db:"file_type" json:"file_type"`
	OriginalFilename string    `db:"original_filename" json:"original_filename"`
	StoredFilename   string    `db:"stored_filename" json:"stored_filename"`
	Path             string    `db:"path" json:"path"`
	SizeBytes        int64     `db:"size_bytes" json:"size_bytes"`
	UploadedAt       time.Time `db:"uploaded_at" json:"uploaded_at"` // UTC
}

// ValidFileType accepts any "ipynb*" type plus "embeddings".
func ValidFileType(fileType string) bool {
	return fileType == "embeddings" || strings.HasPrefix(fileType, "ipynb")
}

// StoredPrefix picks the stored-file prefix for a wire file_type, so files
// of different kinds never overwrite each other.
func StoredPrefix(fileType string) string {
	switch {
	case strings.Contains(fileType, "textprocess"):
		return "textprocess"
	case strings.Contains(fileType, "classifier"):
		return "classifier"
	case fileType == "embeddings":
		return "embeddings"
	case strings.HasPrefix(fileType, "ipynb"):
		return "notebook"
	}
	return "file"
}

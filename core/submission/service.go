package submission

import (
	"context"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/tmugisha/amali/core"
	"github.com/tmugisha/amali/core/student"
)

var (
	// errors
	ErrAlreadySubmitted = errors.New("student has already submitted their final work")
	ErrInvalidFileType  = errors.New("invalid file_type, must be 'ipynb*' or 'embeddings'")
	ErrNotebookExt      = errors.New("file must be a .ipynb notebook")
	ErrEmbeddingExt     = errors.New("embedding file must be a .txt file")
)

type (
	Repository interface {
		CreateRecord(ctx context.Context, rec Record) (Record, error)
		QueryRecordsByAssessment(ctx context.Context, assessmentID int) ([]Record, error)
	}

	// Incoming is one artifact as received by the API.
	Incoming struct {
		AssessmentID int
		StudentID    string
		FileType     string
		Filename     string
		Data         []byte
	}

	// Service receives artifacts on the server side: it enforces the
	// single-submission rule and extension rules, stores the file under the
	// artifacts dir, records metadata, and marks the student submitted when
	// the final artifact arrives.
	Service struct {
		repo     Repository
		students *student.Service
		mailSvc  core.EmailService
		logger   core.Logger
		dir      string
	}
)

func NewService(repo Repository, students *student.Service, mailSvc core.EmailService, logger core.Logger, artifactsDir string) *Service {
	return &Service{
		repo:     repo,
		students: students,
		mailSvc:  mailSvc,
		logger:   logger,
		dir:      artifactsDir,
	}
}

func (s *Service) Receive(ctx context.Context, in Incoming) (Record, error) {
	std, err := s.students.GetByStudentID(ctx, in.StudentID)
	if err != nil {
		return Record{}, err
	}
	if std.HasSubmitted {
		return Record{}, core.NewValidationError(ErrAlreadySubmitted)
	}

	if !ValidFileType(in.FileType) {
		return Record{}, core.NewValidationError(ErrInvalidFileType,
			core.FieldError{Field: "file_type", Error: ErrInvalidFileType.Error()})
	}
	nameLower := strings.ToLower(in.Filename)
	if strings.HasPrefix(in.FileType, "ipynb") && !strings.HasSuffix(nameLower, ".ipynb") {
		return Record{}, core.NewValidationError(ErrNotebookExt,
			core.FieldError{Field: "file", Error: ErrNotebookExt.Error()})
	}
	if in.FileType == "embeddings" && !strings.HasSuffix(nameLower, ".txt") {
		return Record{}, core.NewValidationError(ErrEmbeddingExt,
			core.FieldError{Field: "file", Error: ErrEmbeddingExt.Error()})
	}

	stored, relPath, err := s.storeArtifact(std, in)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		StudentID:        std.ID,
		AssessmentID:     in.AssessmentID,
		FileType:         in.FileType,
		OriginalFilename: in.Filename,
		StoredFilename:   stored,
		Path:             relPath,
		SizeBytes:        int64(len(in.Data)),
		UploadedAt:       time.Now().UTC(),
	}
	rec, err = s.repo.CreateRecord(ctx, rec)
	if err != nil {
		return Record{}, errors.Wrap(err, "recording submission")
	}

	if in.FileType == "embeddings" {
		std, err = s.students.MarkSubmitted(ctx, std)
		if err != nil {
			return Record{}, errors.Wrap(err, "marking student submitted")
		}
		s.sendReceipt(std, in.AssessmentID)
	}
	return rec, nil
}

func (s *Service) QueryByAssessment(ctx context.Context, assessmentID int) ([]Record, error) {
	return s.repo.QueryRecordsByAssessment(ctx, assessmentID)
}

// storeArtifact writes the file under the artifacts dir, prefixed per kind
// so artifacts never overwrite each other:
// {studentID}_{name}/{prefix}_{studentID}_{name}{ext}
func (s *Service) storeArtifact(std student.Student, in Incoming) (stored, relPath string, err error) {
	sanitized := core.SanitizeName(std.FullName)
	prefix := StoredPrefix(in.FileType)
	ext := ".txt"
	if strings.HasPrefix(in.FileType, "ipynb") {
		ext = ".ipynb"
	}
	stored = fmt.Sprintf("%s_%s_%s%s", prefix, std.StudentID, sanitized, ext)
	relPath = filepath.Join(fmt.Sprintf("%s_%s", std.StudentID, sanitized), stored)

	absPath := filepath.Join(s.dir, relPath)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", "", errors.Wrap(err, "creating artifact dir")
	}
	if err := os.WriteFile(absPath, in.Data, 0o644); err != nil {
		return "", "", errors.Wrap(err, "writing artifact")
	}
	return stored, relPath, nil
}

func (s *Service) sendReceipt(std student.Student, assessmentID int) {
	if s.mailSvc == nil || !std.Email.Valid {
		return
	}
	s.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: std.FullName, Address: std.Email.String}},
		Subject: "Submission received",
		BodyStr: fmt.Sprintf(
			"Hello %s,\n\nYour final submission for assessment %d has been received. Good luck!\n",
			std.FullName, assessmentID,
		),
	})
}

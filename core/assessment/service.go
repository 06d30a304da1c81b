package assessment

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
)

var ErrNotFound = errors.New("assessment not found")

type (
	Repository interface {
		CreateAssessment(ctx context.Context, asm Assessment) (Assessment, error)
		GetAssessmentByID(ctx context.Context, id int) (Assessment, error)
		QueryAllAssessments(ctx context.Context) ([]Assessment, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, na NewAssessment) (Assessment, error) {
	asm := Assessment{
		Name:           na.Name,
		StartTime:      na.StartTime.UTC(),
		EndTime:        na.EndTime.UTC(),
		GraceMinutes:   na.GraceMinutes,
		MaxAccessHours: na.MaxAccessHours,
		CreatedAt:      time.Now().UTC(),
	}
	if na.Description != "" {
		asm.Description = null.StringFrom(na.Description)
	}
	return s.repo.CreateAssessment(ctx, asm)
}

func (s *Service) GetByID(ctx context.Context, id int) (Assessment, error) {
	return s.repo.GetAssessmentByID(ctx, id)
}

func (s *Service) QueryAll(ctx context.Context) ([]Assessment, error) {
	return s.repo.QueryAllAssessments(ctx)
}

// EnsureSample creates a ready-to-use assessment when none exists; used in
// DEV so a fresh checkout is immediately testable.
func (s *Service) EnsureSample(ctx context.Context, graceMinutes, maxAccessHours int) (Assessment, error) {
	if asm, err := s.repo.GetAssessmentByID(ctx, 1); err == nil {
		return asm, nil
	} else if err != ErrNotFound {
		return Assessment{}, err
	}

	start := time.Now().UTC().Add(-30 * time.Minute)
	return s.Create(ctx, NewAssessment{
		Name:           "NLP Practical Work",
		Description:    "Text processing, classification and embeddings",
		StartTime:      start,
		EndTime:        start.Add(24 * time.Hour),
		GraceMinutes:   graceMinutes,
		MaxAccessHours: maxAccessHours,
	})
}

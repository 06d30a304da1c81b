package staff

import (
	"context"
	"errors"
	"time"

	"github.com/tmugisha/amali/core"
)

var (
	ErrNotFound             = errors.New("staff user not found")
	ErrAuthenticationFailed = errors.New("authentication failed")
)

type (
	Repository interface {
		CreateStaff(ctx context.Context, stf Staff) (Staff, error)
		GetStaffByUsername(ctx context.Context, username string) (Staff, error)
		UpdateOrCreateStaff(ctx context.Context, stf Staff) (Staff, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, ns NewStaff) (Staff, error) {
	if err := ns.Validate(); err != nil {
		return Staff{}, err
	}
	stf := Staff{
		Username:  ns.Username,
		Email:     ns.Email,
		IsAdmin:   ns.IsAdmin,
		CreatedAt: time.Now().UTC(),
	}
	if err := stf.SetPassword(ns.Password); err != nil {
		return Staff{}, err
	}
	return s.repo.UpdateOrCreateStaff(ctx, stf)
}

// Authenticate checks the username/password pair, returning
// ErrAuthenticationFailed without revealing which part failed.
func (s *Service) Authenticate(ctx context.Context, username, pwd string) (Staff, error) {
	stf, err := s.repo.GetStaffByUsername(ctx, core.CleanString(username, true))
	if err != nil {
		if err == ErrNotFound {
			return Staff{}, ErrAuthenticationFailed
		}
		return Staff{}, err
	}
	if err := stf.CheckPassword(pwd); err != nil {
		return Staff{}, ErrAuthenticationFailed
	}
	return stf, nil
}

package submission

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/tmugisha/amali/core"
)

const (
	// minUploadDisplay is the floor on how long a slot stays visibly
	// Uploading, so near-instant responses do not flicker.
	minUploadDisplay = 700 * time.Millisecond
	// finalLogoutDelay runs after the last required artifact succeeds.
	finalLogoutDelay = 5 * time.Second
	// alreadySubmittedLogoutDelay runs when the server reports the student
	// has already submitted.
	alreadySubmittedLogoutDelay = 1500 * time.Millisecond
)

var (
	errNoFile        = errors.New("no file selected")
	errNotLoggedIn   = errors.New("not logged in")
	errMissingFiles  = errors.New("all artifacts must be selected before submitting")
	errUnknownKind   = errors.New("unknown artifact kind")
	genericUploadMsg = "upload failed, please try again"
)

// Identity is the authenticated student as seen by the orchestrator.
type Identity struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// IdentityProvider exposes the current identity and the logout side effect.
type IdentityProvider interface {
	Current() (Identity, bool)
	Logout()
}

// UploadRequest carries the multipart fields for one artifact.
type UploadRequest struct {
	StudentID    string
	FileType     string
	FileName     string
	Data         []byte
	AssessmentID int
}

// Uploader sends one artifact to the platform. A failed upload returns an
// *UploadError when the server supplied a detail message.
type Uploader interface {
	Upload(ctx context.Context, req UploadRequest) error
}

// UploadError is a server/network failure with a displayable detail.
type UploadError struct {
	Detail string
}

func (e *UploadError) Error() string { return e.Detail }

// IsAlreadySubmitted reports whether the failure means the student's final
// work is already in; detected from the server message.
func IsAlreadySubmitted(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(errors.Cause(err).Error()), "already submitted")
}

// Orchestrator validates and uploads the fixed artifact set for one
// assessment, tracking per-slot status. Uploads run strictly sequentially;
// at most one slot is Uploading at a time.
type Orchestrator struct {
	assessmentID int
	identity     IdentityProvider
	uploader     Uploader
	flags        core.KeyValueStore
	logger       core.Logger

	nowFunc   func() time.Time                           // mockable
	sleepFunc func(ctx context.Context, d time.Duration) // mockable
	afterFunc func(d time.Duration, fn func())           // mockable

	mu         sync.Mutex
	slots      map[Kind]*Slot
	submitting bool
}

func NewOrchestrator(
	assessmentID int,
	identity IdentityProvider,
	uploader Uploader,
	flags core.KeyValueStore,
	logger core.Logger,
) *Orchestrator {
	slots := make(map[Kind]*Slot, len(Kinds))
	for _, kind := range Kinds {
		slots[kind] = &Slot{Kind: kind}
	}
	return &Orchestrator{
		assessmentID: assessmentID,
		identity:     identity,
		uploader:     uploader,
		flags:        flags,
		logger:       logger,
		nowFunc:      time.Now,
		sleepFunc:    sleepCtx,
		afterFunc:    func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
		slots:        slots,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// SelectFile stores the file in the slot and resets its status and message.
// No I/O happens here.
func (o *Orchestrator) SelectFile(kind Kind, f File) error {
	if !kind.valid() {
		return errors.Wrapf(errUnknownKind, "%q", kind)
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	slot := o.slots[kind]
	slot.File = &f
	slot.Status = StatusIdle
	slot.Message = ""
	return nil
}

// Slot returns a copy of the slot for `kind`.
func (o *Orchestrator) Slot(kind Kind) Slot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return *o.slots[kind]
}

// Slots returns copies of all slots in declared order.
func (o *Orchestrator) Slots() []Slot {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]Slot, 0, len(Kinds))
	for _, kind := range Kinds {
		out = append(out, *o.slots[kind])
	}
	return out
}

// Submitting reports whether a batch submit is in flight.
func (o *Orchestrator) Submitting() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.submitting
}

// UploadOne validates and uploads a single artifact. Validation failures
// are local: no network call is made. The slot stays visibly Uploading for
// at least minUploadDisplay on both outcomes. The error is returned after
// slot state is updated so a batch caller can stop on it.
func (o *Orchestrator) UploadOne(ctx context.Context, kind Kind) error {
	if !kind.valid() {
		return errors.Wrapf(errUnknownKind, "%q", kind)
	}

	req, err := o.validate(kind)
	if err != nil {
		return err
	}

	o.setStatus(kind, StatusUploading, "")
	started := o.nowFunc()

	uploadErr := o.uploader.Upload(ctx, req)

	if remaining := minUploadDisplay - o.nowFunc().Sub(started); remaining > 0 {
		o.sleepFunc(ctx, remaining)
	}

	// the session may have been torn down while we were in flight; a late
	// resolution must not resurrect it
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if uploadErr != nil {
		detail := genericUploadMsg
		var ue *UploadError
		if errors.As(uploadErr, &ue) && ue.Detail != "" {
			detail = ue.Detail
		}
		o.setStatus(kind, StatusError, detail)

		if IsAlreadySubmitted(uploadErr) {
			o.afterFunc(alreadySubmittedLogoutDelay, o.identity.Logout)
		}
		return uploadErr
	}

	o.setStatus(kind, StatusSuccess, "")

	if kind.Final() {
		if err := o.flags.Set(HasSubmittedKey(o.assessmentID, req.StudentID), "true"); err != nil && o.logger != nil {
			o.logger.Error("recording local submitted flag", err)
		}
		o.afterFunc(finalLogoutDelay, o.identity.Logout)
	}
	return nil
}

// validate performs the local checks; on failure the slot is marked Error
// and a ValidationError is returned without any network call.
func (o *Orchestrator) validate(kind Kind) (UploadRequest, error) {
	o.mu.Lock()
	slot := o.slots[kind]
	file := slot.File
	o.mu.Unlock()

	fail := func(err error) (UploadRequest, error) {
		o.setStatus(kind, StatusError, err.Error())
		return UploadRequest{}, core.NewValidationError(err)
	}

	if file == nil {
		return fail(errNoFile)
	}
	ident, ok := o.identity.Current()
	if !ok {
		return fail(errNotLoggedIn)
	}
	if !strings.HasSuffix(strings.ToLower(file.Name), kind.Ext()) {
		return fail(errors.Errorf("file must be a %s file", kind.Ext()))
	}

	return UploadRequest{
		StudentID:    ident.UserID,
		FileType:     kind.FileType(),
		FileName:     file.Name,
		Data:         file.Data,
		AssessmentID: o.assessmentID,
	}, nil
}

// SubmitAll uploads every artifact in declared order, strictly one at a
// time, stopping at the first failure. Earlier successes stay recorded, so
// the student only retries what actually failed.
func (o *Orchestrator) SubmitAll(ctx context.Context) error {
	o.mu.Lock()
	for _, kind := range Kinds {
		if o.slots[kind].File == nil {
			o.mu.Unlock()
			return core.NewValidationError(errMissingFiles)
		}
	}
	o.submitting = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.submitting = false
		o.mu.Unlock()
	}()

	for _, kind := range Kinds {
		if err := o.UploadOne(ctx, kind); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) setStatus(kind Kind, status Status, message string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	slot := o.slots[kind]
	slot.Status = status
	slot.Message = message
}

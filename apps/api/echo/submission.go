package echoapi

import (
	"io/ioutil"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmugisha/amali/core"
	"github.com/tmugisha/amali/core/submission"
)

type submissionApi struct {
	svc *submission.Service
}

func registerSubmissionAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *submission.Service) {
	api := submissionApi{svc: svc}

	sg := g.Group("/submissions")
	sg.POST("", api.create)
	sg.GET("", api.query, jwt, staffMiddleware)
}

// create receives one multipart artifact upload.
// Fields: student_id, file_type, assessment_id, file.
func (api *submissionApi) create(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "file", Error: "file is required"})
	}
	assessmentID, err := strconv.Atoi(ctx.FormValue("assessment_id"))
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "assessment_id", Error: "a valid assessment_id is required"})
	}

	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer f.Close()
	data, err := ioutil.ReadAll(f)
	if err != nil {
		return errors.Wrap(err, "reading uploaded file")
	}

	in := submission.Incoming{
		AssessmentID: assessmentID,
		StudentID:    ctx.FormValue("student_id"),
		FileType:     ctx.FormValue("file_type"),
		Filename:     fh.Filename,
		Data:         data,
	}
	rec, err := api.svc.Receive(ctx.Request().Context(), in)
	if err != nil {
		return errors.Wrap(err, "receiving submission")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *submissionApi) query(ctx echo.Context) error {
	assessmentID, err := strconv.Atoi(ctx.QueryParam("assessment_id"))
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "assessment_id", Error: "a valid assessment_id is required"})
	}

	recs, err := api.svc.QueryByAssessment(ctx.Request().Context(), assessmentID)
	if err != nil {
		return errors.Wrap(err, "querying submissions")
	}
	if recs == nil {
		recs = []submission.Record{}
	}
	return ctx.JSON(http.StatusOK, recs)
}

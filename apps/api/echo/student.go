package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmugisha/amali/core/student"
)

type studentApi struct {
	svc *student.Service
}

func registerStudentAPI(g *echo.Group, svc *student.Service) {
	api := studentApi{svc: svc}

	sg := g.Group("/students")
	sg.POST("/login", api.login)
	sg.GET("", api.queryAvailable)
}

// login registers the student on first access and returns their profile.
// A revisit with a name that does not match the registered one is rejected.
func (api *studentApi) login(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	std, err := api.svc.Login(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "logging student in")
	}
	return ctx.JSON(http.StatusOK, std)
}

func (api *studentApi) queryAvailable(ctx echo.Context) error {
	names, err := api.svc.QueryAvailable(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying available students")
	}
	if names == nil {
		names = []string{}
	}
	return ctx.JSON(http.StatusOK, names)
}

package user

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/jorge/userclient/internal/models"
	"github.com/jorge/userclient/internal/services"
	"github.com/jorge/userclient/pkg/app"
	apphttp "github.com/jorge/userclient/pkg/app/http"
	"github.com/jorge/userclient/pkg/app/http/response"
)

type handler struct {
	service services.User
}

// New is factory function for handler layer
//
//nolint:revive // handler should not be used without proper initialization of the required dependency
func New(service services.User) handler {
	return handler{service: service}
}

// Get renders the user identified by the id path param.
func (h handler) Get(ctx *app.Context) (any, error) {
	defer ctx.Trace("user.Get").End()

	param := strings.TrimSpace(ctx.PathParam("id"))
	if param == "" {
		return nil, apphttp.ErrorMissingParam{Params: []string{"id"}}
	}

	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return nil, apphttp.ErrorInvalidParam{Params: []string{"id"}}
	}

	u, err := h.service.Get(ctx, id)
	if err != nil {
		return nil, err // avoiding partial content response
	}

	logUser(ctx, u)

	return response.HTML(fragment(u)), nil
}

// GetAll renders every user, in the order the REST service returned them. No users renders an empty body.
func (h handler) GetAll(ctx *app.Context) (any, error) {
	defer ctx.Trace("user.GetAll").End()

	users, err := h.service.GetAll(ctx)
	if err != nil {
		return nil, err // avoiding partial content response
	}

	for _, u := range users {
		logUser(ctx, u)
	}

	return response.HTML(strings.Join(lo.Map(users, func(u models.User, _ int) string {
		return fragment(u)
	}), "")), nil
}

func fragment(u models.User) string {
	return fmt.Sprintf("Name: <b>%s</b><br/>Age: <b>%d</b><br/><br/>", html.EscapeString(u.Name), u.Age)
}

func logUser(ctx *app.Context, u models.User) {
	ctx.Infof("Name: %s", u.Name)
	ctx.Infof("Age: %d", u.Age)
}

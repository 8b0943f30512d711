package user

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jorge/userclient/internal/models"
	"github.com/jorge/userclient/pkg/app/service"
)

type userService struct {
	svc service.HTTP
}

// New is factory function for service layer
//
//nolint:revive // service should not be used without proper initialization of the required dependency
func New(svc service.HTTP) userService {
	return userService{svc: svc}
}

// Get fetches users/{id} from the REST service.
func (s userService) Get(ctx context.Context, id int64) (models.User, error) {
	var u models.User

	if err := service.GetJSON(ctx, s.svc, "users/"+strconv.FormatInt(id, 10), &u); err != nil {
		return models.User{}, err
	}

	return u, nil
}

// GetAll fetches users from the REST service, in the order it returns them. A null entry in the array is a
// decode failure like a null body: there is no user to render for it.
func (s userService) GetAll(ctx context.Context) ([]models.User, error) {
	var records []*models.User

	if err := service.GetJSON(ctx, s.svc, "users", &records); err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(records))

	for i, r := range records {
		if r == nil {
			return nil, &service.ErrDecode{URL: "users", Err: fmt.Errorf("entry %d: %w", i, service.ErrNullBody)}
		}

		users = append(users, *r)
	}

	return users, nil
}

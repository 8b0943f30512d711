package services

import (
	"context"

	"github.com/jorge/userclient/internal/models"
)

//go:generate go run go.uber.org/mock/mockgen -source=interface.go -destination=mock_interface.go -package=services

type User interface {
	Get(ctx context.Context, id int64) (models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
}

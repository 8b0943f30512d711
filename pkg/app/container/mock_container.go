package container

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/jorge/userclient/pkg/app/config"
	"github.com/jorge/userclient/pkg/app/logging"
	"github.com/jorge/userclient/pkg/app/service"
)

type Mocks struct {
	HTTPService *service.MockHTTP
}

type options func(c *Container, ctrl *gomock.Controller) any

// WithMockHTTPService registers a mocked HTTP service under each of the given names.
func WithMockHTTPService(httpServiceNames ...string) options {
	return func(c *Container, ctrl *gomock.Controller) any {
		mockservice := service.NewMockHTTP(ctrl)

		for _, s := range httpServiceNames {
			c.Services[s] = mockservice
		}

		return mockservice
	}
}

func NewMockContainer(t *testing.T, options ...options) (*Container, *Mocks) {
	t.Helper()

	container := NewContainer(config.NewMockConfig(map[string]string{"APP_NAME": "test-app", "APP_VERSION": "test"}))
	container.Logger = logging.NewLogger(logging.DEBUG)
	container.Services = make(map[string]service.HTTP)

	ctrl := gomock.NewController(t)

	mocks := &Mocks{}

	for _, option := range options {
		if m, ok := option(container, ctrl).(*service.MockHTTP); ok {
			mocks.HTTPService = m
		}
	}

	return container, mocks
}

package httpserver

import (
	"context"
	"mime/multipart"

	"techmobile/internal/domain"
	catalogsvc "techmobile/internal/service/catalog"
)

// Deps carries the services the router depends on. Interfaces are defined
// here, on the consumer side, so handler tests can stub them.
type Deps struct {
	CatalogSvc   catalogService
	AuthSvc      authService
	SubscribeSvc subscribeService
	Uploads      imageSaver
	UploadDir    string
}

type catalogService interface {
	List(ctx context.Context, category string) ([]domain.Product, error)
	Create(ctx context.Context, in catalogsvc.CreateInput) (*domain.Product, error)
}

type authService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
}

type subscribeService interface {
	Subscribe(ctx context.Context, email string) (*domain.Subscriber, error)
}

type imageSaver interface {
	Save(fh *multipart.FileHeader) (string, error)
}

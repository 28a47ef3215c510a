package category

import "context"

type Service interface {
	List(ctx context.Context) ([]CategoryResponse, error)
}

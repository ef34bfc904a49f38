package market

import "context"

type Repository interface {
	Load(ctx context.Context) (*Market, error)
	Save(ctx context.Context, m *Market) error
}

package mock

import (
	"context"

	"github.com/fwojciec/versefill"
)

var _ versefill.ImportService = (*ImportService)(nil)

// ImportService is a mock implementation of versefill.ImportService.
type ImportService struct {
	CreateImportFn func(ctx context.Context, imp *versefill.Import) error
	FindImportsFn  func(ctx context.Context, filter versefill.ImportFilter) ([]*versefill.Import, error)
}

func (s *ImportService) CreateImport(ctx context.Context, imp *versefill.Import) error {
	return s.CreateImportFn(ctx, imp)
}

func (s *ImportService) FindImports(ctx context.Context, filter versefill.ImportFilter) ([]*versefill.Import, error) {
	return s.FindImportsFn(ctx, filter)
}

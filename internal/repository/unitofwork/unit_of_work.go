package unitofwork

import (
	"context"

	"ai-docdraft-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	TemplateRepository() contract.TemplateRepository
	DocumentRepository() contract.DocumentRepository
}

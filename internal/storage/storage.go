package storage

import (
	"context"

	"contractScope/internal/model"
)

// Storage defines a sink for finished audit reports.
type Storage interface {
	PutReport(ctx context.Context, report model.ContractReport) error
}

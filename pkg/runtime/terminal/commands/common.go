package commands

import (
	"fmt"
	"os"

	"github.com/de-tools/tag-atlas/pkg/models/domain"
	"github.com/de-tools/tag-atlas/pkg/services/inventory"
)

// Reporter renders an assembled report to the user.
type Reporter interface {
	Handle(report *domain.Report) error
}

func loadDataset(path string) ([]domain.Resource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	rs, err := inventory.LoadRaw(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	return rs, nil
}

func parseFields(names []string) ([]domain.Field, error) {
	fields := make([]domain.Field, 0, len(names))
	for _, name := range names {
		f, ok := domain.ParseField(name)
		if !ok {
			return nil, fmt.Errorf("unknown field %q", name)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

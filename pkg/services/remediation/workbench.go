package remediation

import (
	"sync"

	"github.com/de-tools/tag-atlas/pkg/models/domain"
	"github.com/de-tools/tag-atlas/pkg/services/compliance"
)

// Source supplies the current state of the editable untagged subset. The
// engine only ever consumes full snapshots; change tracking is the editor's
// problem.
type Source interface {
	Snapshot() []domain.Resource
}

// Workbench holds the immutable baseline and the editable untagged subset for
// one interactive session. The editor is the sole logical writer; the lock
// only keeps the HTTP surface safe.
type Workbench struct {
	mu       sync.RWMutex
	original []domain.Resource
	edited   []domain.Resource
}

// NewWorkbench copies the loaded dataset as the permanent before-baseline and
// seeds the editable subset with its untagged rows.
func NewWorkbench(original []domain.Resource) *Workbench {
	wb := &Workbench{original: domain.Clone(original)}
	wb.edited = untaggedOf(wb.original)
	return wb
}

func untaggedOf(rs []domain.Resource) []domain.Resource {
	var out []domain.Resource
	for _, r := range rs {
		if r.TagStatus() == domain.TagNo {
			out = append(out, r)
		}
	}
	return out
}

// Original returns a copy of the baseline snapshot.
func (w *Workbench) Original() []domain.Resource {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return domain.Clone(w.original)
}

// UntaggedSubset returns a fresh copy of the baseline's untagged rows, the
// starting point for an editing session.
func (w *Workbench) UntaggedSubset() []domain.Resource {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return domain.Clone(untaggedOf(w.original))
}

// Snapshot returns a copy of the edited subset as it currently stands.
func (w *Workbench) Snapshot() []domain.Resource {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return domain.Clone(w.edited)
}

// SetEdited replaces the edited subset wholesale with a new snapshot. Row
// additions and removals are permitted. TagScore is recomputed on the way in,
// never trusted from the editor.
func (w *Workbench) SetEdited(rs []domain.Resource) {
	next := domain.Clone(rs)
	compliance.Rescore(next)
	w.mu.Lock()
	w.edited = next
	w.mu.Unlock()
}

// Compare measures the baseline against the current edited subset.
func (w *Workbench) Compare() Comparison {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return Compare(w.original, w.edited)
}

// RemediatedDataset reconstructs the full after-state dataset for export.
func (w *Workbench) RemediatedDataset() []domain.Resource {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return Remediated(w.original, w.edited)
}

var _ Source = (*Workbench)(nil)

// Package resumeinfra persists enhancement records.
package resumeinfra

import (
	"context"
	"sort"
	"sync"

	"github.com/Abraxas-365/resumeforge/pkg/kernel"
	"github.com/Abraxas-365/resumeforge/pkg/resume"
)

// MemoryRepository keeps history for the life of the process.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[kernel.EnhancementID]resume.Enhancement
}

var _ resume.Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[kernel.EnhancementID]resume.Enhancement)}
}

func (r *MemoryRepository) Save(ctx context.Context, e resume.Enhancement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[e.ID] = e
	return nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id kernel.EnhancementID) (*resume.Enhancement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	if !ok {
		return nil, resume.ErrEnhancementNotFound().WithDetail("id", id.String())
	}
	return &e, nil
}

// List returns newest first.
func (r *MemoryRepository) List(ctx context.Context, opts kernel.PaginationOptions) (kernel.Paginated[resume.Enhancement], error) {
	r.mu.RLock()
	all := make([]resume.Enhancement, 0, len(r.items))
	for _, e := range r.items {
		all = append(all, e)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	start := min(opts.Offset(), len(all))
	end := min(start+opts.PageSize, len(all))
	return kernel.NewPaginated(all[start:end], opts.Page, opts.PageSize, len(all)), nil
}

package sqlite

import (
	"context"

	"github.com/hourbank/overtime/internal/overtime/domain"
	"github.com/hourbank/overtime/internal/overtime/store"
	"github.com/hourbank/overtime/internal/overtime/store/drivers/sqlite/gen"
)

type entriesRepo struct {
	q *gen.Queries
}

func (r *entriesRepo) CreateEntry(ctx context.Context, e domain.Entry) error {
	return mapConstraint(r.q.CreateEntry(ctx, gen.CreateEntryParams{
		ID:          e.ID,
		UserID:      e.UserID,
		EntryDate:   e.Date,
		StartAt:     e.StartAt,
		EndAt:       e.EndAt,
		Description: e.Description,
	}))
}

func (r *entriesRepo) GetEntryByID(ctx context.Context, id string) (domain.Entry, error) {
	row, err := r.q.GetEntryByID(ctx, id)
	if err != nil {
		return domain.Entry{}, mapNotFound(err)
	}
	return mapEntry(row), nil
}

func (r *entriesRepo) DeleteEntry(ctx context.Context, id string) error {
	affected, err := r.q.DeleteEntry(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *entriesRepo) ListEntriesByUser(ctx context.Context, userID string) ([]domain.Entry, error) {
	rows, err := r.q.ListEntriesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, mapEntry(row))
	}
	return entries, nil
}

func (r *entriesRepo) ListEntriesWithOwners(ctx context.Context) ([]domain.EntryWithOwner, error) {
	rows, err := r.q.ListEntriesWithOwners(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.EntryWithOwner, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.EntryWithOwner{
			Entry: domain.Entry{
				ID:          row.ID,
				UserID:      row.UserID,
				Date:        row.EntryDate,
				StartAt:     row.StartAt,
				EndAt:       row.EndAt,
				Description: row.Description,
				CreatedAt:   row.CreatedAt,
			},
			OwnerUsername: row.Username,
			OwnerName:     row.Name,
		})
	}
	return entries, nil
}

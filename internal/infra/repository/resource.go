package repository

import (
	"context"

	"courtside/internal/domain/resource"
	"courtside/internal/infra"
	"courtside/internal/pkg/errs"
	"courtside/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ResourceRepository struct {
	db *pgxpool.Pool
}

func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]queries.ResourceSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, kind, name, capacity
		FROM resources
		WHERE id = ANY($1)
		ORDER BY name`, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find resources by ids", err)
	}
	snapshots, err := scanSnapshots(rows)
	if err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]struct{}, len(snapshots))
	for _, s := range snapshots {
		found[s.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, infra.WrapRepoErr("resource not found", errs.New(id.String()), infra.KindNotFound)
		}
	}
	return snapshots, nil
}

func (r *ResourceRepository) FindAll(ctx context.Context) ([]queries.ResourceSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, kind, name, capacity
		FROM resources
		ORDER BY kind, name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}
	return scanSnapshots(rows)
}

func (r *ResourceRepository) FindByKind(ctx context.Context, kind resource.Kind) ([]queries.ResourceSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, kind, name, capacity
		FROM resources
		WHERE kind = $1
		ORDER BY name`, kind.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources by kind", err)
	}
	return scanSnapshots(rows)
}

func scanSnapshots(rows pgx.Rows) ([]queries.ResourceSnapshot, error) {
	defer rows.Close()
	var out []queries.ResourceSnapshot
	for rows.Next() {
		var s queries.ResourceSnapshot
		var kind string
		if err := rows.Scan(&s.ID, &kind, &s.Name, &s.Capacity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource row", err)
		}
		s.Kind = resource.Kind(kind)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read resource rows", err)
	}
	return out, nil
}

package sqlstore

import (
	"context"
	"fmt"

	"github.com/juho05/crossview/repos"
	"github.com/nullism/bqb"
)

type indexRepository[T repos.Item] struct {
	db     conn
	schema *schema[T]
	tx     func(ctx context.Context, fn func(r indexRepository[T]) error) error
}

func newIndexRepository[T repos.Item](d *DB, s *schema[T]) indexRepository[T] {
	return indexRepository[T]{
		db:     d.conn(),
		schema: s,
		tx: newTransactionFn(d, func(tx conn) indexRepository[T] {
			return indexRepository[T]{
				db:     tx,
				schema: s,
			}
		}),
	}
}

func (r indexRepository[T]) MaterializeIndex(ctx context.Context, modelID int64, predicate repos.Predicate) (int, error) {
	orderBy, err := r.schema.genOrderBy(predicate.Sort)
	if err != nil {
		return 0, err
	}
	var count int
	err = r.tx(ctx, func(r indexRepository[T]) error {
		err := r.PurgeIndex(ctx, modelID)
		if err != nil {
			return fmt.Errorf("purge old index: %w", err)
		}
		q := bqb.New(`INSERT INTO cache_entries (model_id, ordinal, item_id)
			SELECT CAST(? AS BIGINT), ROW_NUMBER() OVER (ORDER BY ?) - 1, ?
			FROM ? WHERE ?`,
			modelID, orderBy, bqb.New(r.schema.id), bqb.New(r.schema.from), r.schema.conditions(predicate.Filter))
		count, err = executeQueryCountAffectedRows(ctx, r.db, q)
		if err != nil {
			return fmt.Errorf("insert index rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("materialize %s index: %w", r.schema.name, err)
	}
	return count, nil
}

func (r indexRepository[T]) CountIndex(ctx context.Context, modelID int64) (int, error) {
	return getQuery[int](ctx, r.db, bqb.New("SELECT COUNT(*) FROM cache_entries WHERE model_id = ?", modelID))
}

func (r indexRepository[T]) FetchWindow(ctx context.Context, modelID int64, offset, limit int) ([]repos.Ranked[T], error) {
	if limit <= 0 {
		return []repos.Ranked[T]{}, nil
	}
	q := bqb.New(`SELECT cache_entries.ordinal, ? FROM cache_entries ?
		WHERE cache_entries.model_id = ? AND cache_entries.ordinal >= ? AND cache_entries.ordinal < ?
		ORDER BY cache_entries.ordinal`,
		bqb.New(r.schema.selectList), bqb.New(r.schema.join), modelID, offset, offset+limit)
	return r.schema.scanWindow(ctx, r.db, q)
}

func (r indexRepository[T]) ComputeAggregates(ctx context.Context, modelID int64) (repos.Aggregates, error) {
	return getQuery[repos.Aggregates](ctx, r.db, r.schema.aggregates(modelID))
}

func (r indexRepository[T]) ResolveIDs(ctx context.Context, modelID int64, ranks []int) (map[int]string, error) {
	type entry struct {
		Ordinal int    `db:"ordinal"`
		ItemID  string `db:"item_id"`
	}
	entries, err := selectBatch(ranks, func(ranks []int) ([]entry, error) {
		q := bqb.New("SELECT ordinal, item_id FROM cache_entries WHERE model_id = ? AND ordinal IN (?)", modelID, ranks)
		return selectQuery[entry](ctx, r.db, q)
	})
	if err != nil {
		return nil, err
	}
	ids := make(map[int]string, len(entries))
	for _, e := range entries {
		ids[e.Ordinal] = e.ItemID
	}
	return ids, nil
}

func (r indexRepository[T]) ResolveRanks(ctx context.Context, modelID int64, ids []string) (map[string]int, error) {
	type entry struct {
		Ordinal int    `db:"ordinal"`
		ItemID  string `db:"item_id"`
	}
	entries, err := selectBatch(ids, func(ids []string) ([]entry, error) {
		q := bqb.New("SELECT ordinal, item_id FROM cache_entries WHERE model_id = ? AND item_id IN (?)", modelID, ids)
		return selectQuery[entry](ctx, r.db, q)
	})
	if err != nil {
		return nil, err
	}
	ranks := make(map[string]int, len(entries))
	for _, e := range entries {
		ranks[e.ItemID] = e.Ordinal
	}
	return ranks, nil
}

func (r indexRepository[T]) PurgeIndex(ctx context.Context, modelID int64) error {
	return executeQuery(ctx, r.db, bqb.New("DELETE FROM cache_entries WHERE model_id = ?", modelID))
}

package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/juho05/crossview/repos"
	"github.com/juho05/crossview/util"
	"github.com/juho05/log"
	"github.com/nullism/bqb"
)

const selectBatchSize = 4096

type executer interface {
	sqlx.ExecerContext
	sqlx.QueryerContext
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

// conn is an executer (db or tx) together with the dialect queries are rendered for.
type conn struct {
	exec    executer
	dialect Dialect
}

func selectBatch[T, U any](data []T, fn func(data []T) ([]U, error)) ([]U, error) {
	if len(data) == 0 {
		return make([]U, 0), nil
	}
	var result []U
	for i := 0; i < len(data); i += selectBatchSize {
		slice, err := fn(data[i:min(i+selectBatchSize, len(data))])
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = slice
		} else {
			result = append(result, slice...)
		}
	}
	return result, nil
}

func exec(ctx context.Context, db conn, query *bqb.Query) (sql.Result, error) {
	sql, args, err := db.dialect.build(query)
	if err != nil {
		return nil, wrapErr("build query", err)
	}
	res, err := db.exec.ExecContext(ctx, sql, args...)
	printQueryOnErr(sql, err)
	return res, err
}

func executeQuery(ctx context.Context, db conn, query *bqb.Query) error {
	_, err := exec(ctx, db, query)
	return wrapErr("execute exec query", err)
}

func executeQueryCountAffectedRows(ctx context.Context, db conn, query *bqb.Query) (int, error) {
	res, err := exec(ctx, db, query)
	var count int64
	if err == nil {
		count, _ = res.RowsAffected()
	}
	return int(count), wrapErr("execute exec query", err)
}

func executeQueryExpectAffectedRows(ctx context.Context, db conn, query *bqb.Query) error {
	res, err := exec(ctx, db, query)
	return wrapResErr("execute exec query (expect affected rows)", res, err)
}

func getQuery[T any](ctx context.Context, db conn, query *bqb.Query) (T, error) {
	var result T
	results, err := selectQuery[T](ctx, db, query)
	if err != nil {
		return result, err
	}
	if len(results) == 0 {
		return result, repos.NewError("", repos.ErrNotFound, nil)
	}
	if len(results) > 1 {
		return result, repos.NewError("", repos.ErrTooMany, nil)
	}
	result = results[0]
	return result, nil
}

func selectQuery[T any](ctx context.Context, db conn, query *bqb.Query) ([]T, error) {
	sql, args, err := db.dialect.build(query)
	if err != nil {
		return nil, wrapErr("build query", err)
	}

	result := make([]T, 0)
	err = db.exec.SelectContext(ctx, &result, sql, args...)
	printQueryOnErr(sql, err)
	return result, wrapErr("execute select query", err)
}

func printQueryOnErr(query string, err error) {
	if err == nil {
		return
	}
	if errors.Is(sqlErrToErrType(err), repos.ErrGeneral) && !errors.Is(err, context.Canceled) {
		log.Errorf("error on query: %s: %s", query, err)
	}
}

// genSearch returns conditions matching every token of query against the
// normalized search column.
func genSearch(query, searchColumn string) *bqb.Query {
	conditions := bqb.New("true")
	searchTokens := strings.Split(util.NormalizeText(query), " ")
	for _, token := range searchTokens {
		if token == "" || token == " " {
			continue
		}
		conditions.And(searchColumn+" LIKE ?", "% "+token+"%")
	}
	return conditions
}

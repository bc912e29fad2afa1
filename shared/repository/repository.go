package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hostmaster/infras/otel"
	"hostmaster/infras/postgres"
	"hostmaster/shared/constant"
	"hostmaster/shared/dto"
	"hostmaster/shared/logger"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("required filter")

type column struct {
	name  string
	table string
	alias string
}

// field is the name the column is scanned into.
func (c column) field() string {
	if c.alias != "" {
		return c.alias
	}

	return c.name
}

func (c column) selectExpr() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return fmt.Sprintf("%s.%s AS %s", c.table, c.name, c.alias)
	default:
		return c.table + "." + c.name
	}
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository implements the common CRUD statements for a table mapped by T.
// Columns come from the db tags on T; fields tagged with table belong to
// the join returned by an optional GetJoinQuery method.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []column
	join          string
	InsertColumns []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	join := ""
	if joiner, ok := any(zero).(interface{ GetJoinQuery() string }); ok {
		join = joiner.GetJoinQuery()
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          join,
		InsertColumns: insertColumns,
	}
}

func (repo *Repository[T]) scope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, operation))
}

// fail records err on the scope and converts constraint violations into failures.
func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	if translated := translateError(repo.entity, err); translated != nil {
		scope.TraceIfError(translated)

		return translated
	}

	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) insertQuery(skipPrimary bool) string {
	columns := make([]string, 0, len(repo.InsertColumns))

	for _, col := range repo.InsertColumns {
		if skipPrimary && col == repo.primaryColumn {
			continue
		}

		columns = append(columns, col)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (:%s)", repo.table, strings.Join(columns, ", "), strings.Join(columns, ", :"))
}

// exec runs a named statement; arg may be a single model, a slice of models or a map.
func (repo *Repository[T]) exec(ctx context.Context, operation string, exec execer, query string, arg any) error {
	ctx, scope := repo.scope(ctx, operation)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, operation, err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.exec(ctx, "insert", repo.db.Write, repo.insertQuery(false), model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.exec(ctx, "insert", sqltx, repo.insertQuery(false), model)
}

// InsertBulkTx writes every model in one multi-row statement. An empty slice is a no-op.
func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, "bulk insert", sqltx, repo.insertQuery(false), models)
}

func (repo *Repository[T]) insertReturningID(ctx context.Context, ext sqlx.ExtContext, model T) (int64, error) {
	ctx, scope := repo.scope(ctx, "insertReturningID")
	defer scope.End()

	query := fmt.Sprintf("%s RETURNING %s", repo.insertQuery(true), repo.primaryColumn)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows, err := sqlx.NamedQueryContext(ctx, ext, query, model)
	if err != nil {
		return 0, repo.fail(scope, "insert", err)
	}
	defer rows.Close()

	var id int64

	if rows.Next() {
		if err = rows.Scan(&id); err != nil {
			return 0, repo.fail(scope, "scan inserted id", err)
		}
	}

	if err = rows.Err(); err != nil {
		return 0, repo.fail(scope, "insert", err)
	}

	return id, nil
}

// InsertReturningID inserts the model without its primary column and returns the generated key.
func (repo *Repository[T]) InsertReturningID(ctx context.Context, model T) (int64, error) {
	return repo.insertReturningID(ctx, repo.db.Write, model)
}

func (repo *Repository[T]) InsertReturningIDTx(ctx context.Context, sqltx *sqlx.Tx, model T) (int64, error) {
	return repo.insertReturningID(ctx, sqltx, model)
}

// query prepares a named statement and hands it to scan.
func (repo *Repository[T]) query(ctx context.Context, operation string, prep preparer, query string, scan func(*sqlx.NamedStmt) error) error {
	ctx, scope := repo.scope(ctx, operation)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := prep.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if err = scan(stmt); err != nil {
		return repo.fail(scope, operation, err)
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	var exist bool

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	err := repo.query(ctx, "check exist", repo.db.Read, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &exist, args) //nolint:wrapcheck
	})

	return exist, err
}

// selectQuery renders a single-row read. A locking read only locks rows of the
// repository table, never the joined ones.
func (repo *Repository[T]) selectQuery(where string, lock bool, columns ...string) string {
	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.selectList(columns...), repo.table, repo.join, where)
	if lock {
		query += " FOR UPDATE OF " + repo.table
	}

	return query
}

// get returns the zero T when no row matches.
func (repo *Repository[T]) get(ctx context.Context, prep preparer, filter dto.FilterGroup, lock bool, columns ...string) (T, error) {
	where, args := repo.BuildWhereClause(filter)
	query := repo.selectQuery(where, lock, columns...)

	var model T

	err := repo.query(ctx, "get", prep, query, func(stmt *sqlx.NamedStmt) error {
		if err := stmt.GetContext(ctx, &model, args); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err //nolint:wrapcheck
		}

		return nil
	})

	return model, err
}

func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, repo.db.Read, filter, false, columns...)
}

// GetForUpdateTx reads a single row and holds its row lock until the transaction ends.
func (repo *Repository[T]) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, sqltx, filter, true, columns...)
}

func (repo *Repository[T]) getAll(ctx context.Context, prep preparer, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	where, args := repo.BuildWhereClause(filter)

	pagination := ""
	if params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = params.Offset()
		pagination = "LIMIT :limit OFFSET :offset"
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s %s", repo.selectList(columns...), repo.table, repo.join, where, repo.orderBy(params), pagination)

	models := []T{}
	err := repo.query(ctx, "get all", prep, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args) //nolint:wrapcheck
	})

	return models, err
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, repo.db.Read, params, filter, columns...)
}

func (repo *Repository[T]) GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, sqltx, params, filter, columns...)
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	where, args := repo.BuildWhereClause(filter)

	var count int

	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primaryColumn, repo.table, repo.join, where)
	err := repo.query(ctx, "count", repo.db.Read, query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args) //nolint:wrapcheck
	})

	return count, err
}

func (repo *Repository[T]) delete(ctx context.Context, exec execer, filter dto.FilterGroup) error {
	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	return repo.exec(ctx, "delete", exec, fmt.Sprintf("DELETE FROM %s %s", repo.table, where), args)
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.delete(ctx, repo.db.Write, filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	return repo.delete(ctx, sqltx, filter)
}

// update sets the given columns on every matching row. Filter argument names
// must not collide with column names.
func (repo *Repository[T]) update(ctx context.Context, exec execer, fields map[string]any, filter dto.FilterGroup) error {
	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	assignments := make([]string, 0, len(fields))
	for _, col := range slices.Sorted(maps.Keys(fields)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
	}

	maps.Copy(args, fields)

	return repo.exec(ctx, "update", exec, fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments, ", "), where), args)
}

func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, repo.db.Write, fields, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, fields map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, sqltx, fields, filter)
}

// selectList renders the requested columns, or every mapped column when none are given.
func (repo *Repository[T]) selectList(only ...string) string {
	exprs := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		exprs = append(exprs, col.selectExpr())
	}

	return strings.Join(exprs, ", ")
}

// orderBy qualifies the sort column with its table so joins stay unambiguous.
// Unknown sort columns fall back to the primary key.
func (repo *Repository[T]) orderBy(params dto.QueryParams) string {
	dir := dto.SortDirAsc
	if strings.EqualFold(params.SortDir, dto.SortDirDesc) {
		dir = dto.SortDirDesc
	}

	if params.SortBy != "" {
		idx := slices.IndexFunc(repo.columns, func(c column) bool { return c.field() == params.SortBy })
		if idx >= 0 && repo.columns[idx].table != "" {
			return fmt.Sprintf("ORDER BY %s.%s %s", repo.columns[idx].table, repo.columns[idx].name, dir)
		}
	}

	return fmt.Sprintf("ORDER BY %s.%s %s", repo.table, repo.primaryColumn, dir)
}

func (repo *Repository[T]) BuildWhereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

// getColumns walks the db tags of t, descending into embedded structs such as Metadata.
func getColumns(table string, t reflect.Type) (columns []column, insertColumns []string) {
	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			nested, nestedInsert := getColumns(table, field.Type)
			columns = append(columns, nested...)
			insertColumns = append(insertColumns, nestedInsert...)

			continue
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" {
			owner = table
		}

		if owner == table {
			insertColumns = append(insertColumns, dbTag)
		}

		if name := field.Tag.Get("column"); name != "" {
			columns = append(columns, column{name: name, table: owner, alias: dbTag})
		} else {
			columns = append(columns, column{name: dbTag, table: owner})
		}
	}

	return columns, insertColumns
}

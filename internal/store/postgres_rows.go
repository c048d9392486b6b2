package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/hrconsole/internal/core"
	"github.com/JonMunkholm/hrconsole/internal/grid"
)

// PostgresRows reads table rows from PostgreSQL. Each catalog table maps to
// a database table of the same name whose columns are the catalog fields.
type PostgresRows struct {
	pool *pgxpool.Pool
}

// NewPostgresRows returns a row source on pool.
func NewPostgresRows(pool *pgxpool.Pool) *PostgresRows {
	return &PostgresRows{pool: pool}
}

// Page fetches one page of rows, optionally filtered by a case-insensitive
// search over req.SearchFields.
func (s *PostgresRows) Page(ctx context.Context, table string, req core.PageRequest) (*core.Page, error) {
	if len(req.Fields) == 0 {
		return nil, fmt.Errorf("page %q: no fields requested", table)
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	wb := NewWhereBuilder()
	wb.AddSearch(req.Search, req.SearchFields)
	whereClause, queryArgs := wb.Build()

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", quoteIdentifier(table), whereClause)
	var totalRows int64
	if err := s.pool.QueryRow(ctx, countQuery, queryArgs...).Scan(&totalRows); err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}

	page, totalPages, offset := paginate(totalRows, req.Page, pageSize)

	orderBy := quoteIdentifier(req.Fields[0]) + " asc"
	if req.SortField != "" && containsField(req.Fields, req.SortField) {
		dir := "asc"
		if req.SortDesc {
			dir = "desc"
		}
		orderBy = quoteIdentifier(req.SortField) + " " + dir
	}

	argIndex := wb.NextArgIndex()
	query := fmt.Sprintf(
		"SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		strings.Join(quoteColumns(req.Fields), ", "),
		quoteIdentifier(table),
		whereClause,
		orderBy,
		argIndex,
		argIndex+1,
	)
	queryArgs = append(queryArgs, pageSize, offset)

	rows, err := s.pool.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var result []grid.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}
		row := make(grid.Row, len(req.Fields))
		for i, f := range req.Fields {
			row[f] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return &core.Page{
		Rows:       result,
		Total:      totalRows,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Search:     req.Search,
	}, nil
}

func containsField(fields []string, f string) bool {
	for _, x := range fields {
		if x == f {
			return true
		}
	}
	return false
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"staffpanel/internal/apperror"
)

// DefaultLimit is the fixed page size of every collection view.
const DefaultLimit = 10

type ListParams struct {
	Page   int
	Search string
}

type Page[T any] struct {
	Items      []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type rowScanner interface {
	Scan(dest ...any) error
}

// pager is the paginated, searchable query shape shared by both entities,
// parameterized by select list, FROM clause (joins included), searchable
// columns and ordering. Search matches case-insensitively across all
// searchable columns at once.
type pager[T any] struct {
	db         *sql.DB
	name       string // lowercase entity name, used in wrapped errors
	label      string // capitalized name for client-facing messages
	table      string // bare table, for counts and deletes
	selectList string
	from       string
	idColumn   string
	searchCols []string
	orderBy    string
	scan       func(rowScanner) (T, error)
}

func (p pager[T]) List(ctx context.Context, params ListParams) (Page[T], error) {
	page := normalizePage(params.Page)
	limit := DefaultLimit

	where, args := searchClause(p.searchCols, params.Search)

	var total int
	if err := p.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+p.from+where, args...).Scan(&total); err != nil {
		return Page[T]{}, fmt.Errorf("count %ss: %w", p.name, err)
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		p.selectList, p.from, where, p.orderBy, len(args)+1, len(args)+2)

	rows, err := p.db.QueryContext(ctx, query, append(args, limit, (page-1)*limit)...)
	if err != nil {
		return Page[T]{}, fmt.Errorf("list %ss: %w", p.name, err)
	}
	defer rows.Close()

	items := make([]T, 0, limit)
	for rows.Next() {
		item, err := p.scan(rows)
		if err != nil {
			return Page[T]{}, fmt.Errorf("scan %s: %w", p.name, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return Page[T]{}, fmt.Errorf("list %ss: %w", p.name, err)
	}

	return buildPage(items, total, page), nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func buildPage[T any](items []T, total, page int) Page[T] {
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      DefaultLimit,
		TotalPages: (total + DefaultLimit - 1) / DefaultLimit,
	}
}

func (p pager[T]) Get(ctx context.Context, id int) (T, error) {
	row := p.db.QueryRowContext(ctx,
		"SELECT "+p.selectList+" FROM "+p.from+" WHERE "+p.idColumn+" = $1", id)

	item, err := p.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, apperror.New(apperror.CodeNotFound, p.label+" not found")
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("get %s: %w", p.name, err)
	}
	return item, nil
}

func (p pager[T]) Delete(ctx context.Context, id int) error {
	result, err := p.db.ExecContext(ctx, "DELETE FROM "+p.table+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", p.name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", p.name, err)
	}
	if affected == 0 {
		return apperror.New(apperror.CodeNotFound, p.label+" not found")
	}
	return nil
}

func (p pager[T]) CountAll(ctx context.Context) (int, error) {
	var total int
	if err := p.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+p.table).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %ss: %w", p.name, err)
	}
	return total, nil
}

func searchClause(cols []string, search string) (string, []any) {
	search = strings.TrimSpace(search)
	if search == "" {
		return "", nil
	}

	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = col + " ILIKE $1"
	}
	return " WHERE (" + strings.Join(parts, " OR ") + ")", []any{"%" + search + "%"}
}

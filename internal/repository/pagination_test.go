package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, 1, normalizePage(0))
	assert.Equal(t, 1, normalizePage(-3))
	assert.Equal(t, 1, normalizePage(1))
	assert.Equal(t, 7, normalizePage(7))
}

func TestBuildPageTotalPages(t *testing.T) {
	page := buildPage([]int{1, 2, 3}, 25, 1)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 3, page.TotalPages)

	assert.Equal(t, 0, buildPage([]int{}, 0, 1).TotalPages)
	assert.Equal(t, 1, buildPage([]int{}, 10, 1).TotalPages)
	assert.Equal(t, 2, buildPage([]int{}, 11, 1).TotalPages)
}

func TestBuildPageOutOfRangeIsEmptyNotError(t *testing.T) {
	page := buildPage([]int{}, 25, 4)
	assert.Empty(t, page.Items)
	assert.Equal(t, 4, page.Page)
	assert.Equal(t, 3, page.TotalPages)
}

func TestSearchClause(t *testing.T) {
	where, args := searchClause([]string{"e.name", "e.email", "d.name"}, "engin")
	assert.Equal(t, " WHERE (e.name ILIKE $1 OR e.email ILIKE $1 OR d.name ILIKE $1)", where)
	assert.Equal(t, []any{"%engin%"}, args)
}

func TestSearchClauseEmpty(t *testing.T) {
	where, args := searchClause([]string{"d.name"}, "   ")
	assert.Empty(t, where)
	assert.Nil(t, args)
}

func TestEmployeeSearchIncludesDepartmentName(t *testing.T) {
	repo := NewEmployeeRepository(nil)
	assert.Contains(t, repo.pager.searchCols, "d.name")
}

package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func parseParams(t *testing.T, target string, opt Options) Params {
	t.Helper()
	var p Params
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		p = ParseFiber(c, "created_at", "desc", opt)
		return c.SendStatus(fiber.StatusOK)
	})
	_, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	return p
}

func TestParseFiberDefaults(t *testing.T) {
	p := parseParams(t, "/", SearchOpts)
	require.Equal(t, 1, p.Page)
	require.Equal(t, SearchOpts.DefaultPerPage, p.PerPage)
	require.Equal(t, "created_at", p.SortBy)
	require.Equal(t, "desc", p.SortOrder)
}

func TestParseFiberClampsPerPage(t *testing.T) {
	p := parseParams(t, "/?per_page=9999&page=3", SearchOpts)
	require.Equal(t, SearchOpts.MaxPerPage, p.PerPage)
	require.Equal(t, 3, p.Page)
	require.Equal(t, (3-1)*SearchOpts.MaxPerPage, p.Offset())
}

func TestParseFiberIgnoresJunk(t *testing.T) {
	p := parseParams(t, "/?page=-4&per_page=zero&order=sideways", DefaultOpts)
	require.Equal(t, 1, p.Page)
	require.Equal(t, DefaultOpts.DefaultPerPage, p.PerPage)
	require.Equal(t, "desc", p.SortOrder)
}

func TestSafeOrderClauseWhitelist(t *testing.T) {
	allowed := map[string]string{
		"created_at": "course_created_at",
		"title":      "course_title",
	}

	p := Params{SortBy: "title", SortOrder: "asc"}
	clause, err := p.SafeOrderClause(allowed, "created_at")
	require.NoError(t, err)
	require.Equal(t, "course_title ASC", clause)

	// unknown keys fall back to the default instead of reaching the SQL
	p = Params{SortBy: "password; DROP TABLE users", SortOrder: "desc"}
	clause, err = p.SafeOrderClause(allowed, "created_at")
	require.NoError(t, err)
	require.Equal(t, "course_created_at DESC", clause)
}

func TestBuildMeta(t *testing.T) {
	m := BuildMeta(101, Params{Page: 2, PerPage: 25})
	require.EqualValues(t, 101, m.Total)
	require.Equal(t, 5, m.TotalPages)
	require.True(t, m.HasNext)
	require.True(t, m.HasPrev)

	m = BuildMeta(0, Params{Page: 1, PerPage: 25})
	require.Equal(t, 0, m.TotalPages)
	require.False(t, m.HasNext)
	require.False(t, m.HasPrev)
}

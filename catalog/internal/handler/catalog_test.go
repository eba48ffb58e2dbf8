package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/Astemirdum/catalog-service/catalog/internal/model"
	"github.com/Astemirdum/catalog-service/catalog/internal/repository"
	"github.com/Astemirdum/catalog-service/catalog/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type catalog struct {
	svc *service.Service
	e   *echo.Echo
}

func newCatalog(t *testing.T) *catalog {
	t.Helper()
	log := zap.NewNop()
	svc := service.NewService(repository.NewMemRepository(log), nil, log)
	return &catalog{svc: svc, e: newRouter(t, svc)}
}

func (c *catalog) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c.e.ServeHTTP(w, newRequest(method, target, form))
	return w
}

func (c *catalog) all(t *testing.T) []model.Book {
	t.Helper()
	books, err := c.svc.SearchBooks(context.Background(), "")
	require.NoError(t, err)
	return books
}

func (c *catalog) create(t *testing.T, title, author string) model.Book {
	t.Helper()
	b, err := c.svc.CreateBook(context.Background(), model.BookInput{Title: title, Author: author})
	require.NoError(t, err)
	return b
}

func TestCatalog_CreateThenList(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)

	w := c.do(http.MethodPost, "/books/new", url.Values{"title": {"Dune"}, "author": {"Herbert"}, "genre": {""}, "year": {""}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/books", w.Header().Get(echo.HeaderLocation))

	books := c.all(t)
	require.Len(t, books, 1)
	require.Equal(t, "Dune", books[0].Title)
	require.Equal(t, "Herbert", books[0].Author)
	require.Empty(t, books[0].Genre)
	require.Nil(t, books[0].Year)

	w = c.do(http.MethodGet, "/books?page=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Dune")
	require.Contains(t, w.Body.String(), "Herbert")
}

func TestCatalog_CreateRejected(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)

	w := c.do(http.MethodPost, "/books/new", url.Values{"title": {""}, "author": {""}, "genre": {"SF"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `action="/books/new"`)
	require.Contains(t, w.Body.String(), "&#34;title&#34;")
	require.Contains(t, w.Body.String(), "&#34;author&#34;")
	require.Contains(t, w.Body.String(), `value="SF"`)
	require.Empty(t, c.all(t))
}

func TestCatalog_UpdateOnlyTarget(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)
	dune := c.create(t, "Dune", "Herbert")
	emma := c.create(t, "Emma", "Austen")

	target := "/books/" + strconv.Itoa(dune.ID)
	w := c.do(http.MethodPost, target, url.Values{"title": {"Dune Messiah"}, "author": {"Frank Herbert"}, "year": {"1969"}})
	require.Equal(t, http.StatusFound, w.Code)

	got, err := c.svc.GetBook(context.Background(), dune.ID)
	require.NoError(t, err)
	require.Equal(t, "Dune Messiah", got.Title)
	require.Equal(t, "1969", got.YearString())

	other, err := c.svc.GetBook(context.Background(), emma.ID)
	require.NoError(t, err)
	require.Equal(t, emma, other)

	w = c.do(http.MethodPost, target, url.Values{"title": {""}, "author": {"Frank Herbert"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `action="`+target+`"`)
	got, err = c.svc.GetBook(context.Background(), dune.ID)
	require.NoError(t, err)
	require.Equal(t, "Dune Messiah", got.Title)
}

func TestCatalog_UnknownID(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)
	c.create(t, "Dune", "Herbert")
	before := c.all(t)

	for _, req := range []struct {
		method, target string
		form           url.Values
	}{
		{method: http.MethodGet, target: "/books/99999"},
		{method: http.MethodPost, target: "/books/99999", form: url.Values{"title": {"x"}, "author": {"y"}}},
		{method: http.MethodPost, target: "/books/99999/delete"},
	} {
		w := c.do(req.method, req.target, req.form)
		require.Equal(t, http.StatusNotFound, w.Code, req.target)
		require.Empty(t, w.Header().Get(echo.HeaderLocation))
		require.Contains(t, w.Body.String(), "Page Not Found")
	}
	require.Equal(t, before, c.all(t))
}

func TestCatalog_Delete(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)
	dune := c.create(t, "Dune", "Herbert")
	c.create(t, "Emma", "Austen")

	w := c.do(http.MethodPost, "/books/"+strconv.Itoa(dune.ID)+"/delete", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/books", w.Header().Get(echo.HeaderLocation))

	books := c.all(t)
	require.Len(t, books, 1)
	require.Equal(t, "Emma", books[0].Title)
}

func TestCatalog_Pagination(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)
	for i := 1; i <= 10; i++ {
		c.create(t, "Book "+strconv.Itoa(i), "Author")
	}

	w := c.do(http.MethodGet, "/books?page=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, `<a href="/books/10">Book 10</a>`)
	require.Contains(t, body, `<a href="/books/2">Book 2</a>`)
	require.NotContains(t, body, `<a href="/books/1">`)
	require.Contains(t, body, "Page 1 of 2")

	w = c.do(http.MethodGet, "/books?page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `<a href="/books/1">Book 1</a>`)

	w = c.do(http.MethodGet, "/books?page=3", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/books?page=1", w.Header().Get(echo.HeaderLocation))

	for _, page := range []string{"100000000000000000", "1100000000000000000", "9223372036854775807"} {
		w = c.do(http.MethodGet, "/books?page="+page, nil)
		require.Equal(t, http.StatusFound, w.Code, page)
		require.Equal(t, "/books?page=1", w.Header().Get(echo.HeaderLocation), page)
	}
}

func TestCatalog_Search(t *testing.T) {
	t.Parallel()
	c := newCatalog(t)
	c.create(t, "Dune", "Herbert")
	c.create(t, "Emma", "Austen")

	w := c.do(http.MethodGet, "/books/search?query=herb", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Dune")
	require.NotContains(t, w.Body.String(), "Emma")

	w = c.do(http.MethodGet, "/books/search?query=tolkien", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "No results found")
}

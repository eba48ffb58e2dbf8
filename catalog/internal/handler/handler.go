package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Astemirdum/catalog-service/catalog/internal/errs"
	"github.com/Astemirdum/catalog-service/catalog/internal/model"
	"github.com/Astemirdum/catalog-service/catalog/internal/views"
	md "github.com/Astemirdum/catalog-service/pkg/middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	booksURL     = "/books"
	firstPageURL = "/books?page=1"

	titleBooks     = "Books"
	titleNoResults = "No results found"
	titleNewBook   = "New Book"
	titleUpdate    = "Update Book"
	titleNotFound  = "Page Not Found"
	titleError     = "Server Error"

	// maxPage keeps the page offset within int.
	maxPage = math.MaxInt / model.PageSize
)

type Handler struct {
	catalogSvc CatalogService
	renderer   echo.Renderer
	log        *zap.Logger
}

func New(catalogSvc CatalogService, renderer echo.Renderer, log *zap.Logger) *Handler {
	return &Handler{
		catalogSvc: catalogSvc,
		renderer:   renderer,
		log:        log.Named("handler"),
	}
}

type Route struct {
	Method  string
	Path    string
	Handler echo.HandlerFunc
}

// Routes returns a fresh route table. Every handler is already wrapped so
// that unexpected failures reach the central error handler.
func (h *Handler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/", Handler: h.wrap(h.Root)},
		{Method: http.MethodGet, Path: "/books", Handler: h.wrap(h.ListBooks)},
		{Method: http.MethodGet, Path: "/books/search", Handler: h.wrap(h.SearchBooks)},
		{Method: http.MethodGet, Path: "/books/new", Handler: h.wrap(h.NewBookForm)},
		{Method: http.MethodPost, Path: "/books/new", Handler: h.wrap(h.CreateBook)},
		{Method: http.MethodGet, Path: "/books/:id", Handler: h.wrap(h.EditBookForm)},
		{Method: http.MethodPost, Path: "/books/:id", Handler: h.wrap(h.UpdateBook)},
		{Method: http.MethodPost, Path: "/books/:id/delete", Handler: h.wrap(h.DeleteBook)},
	}
}

// NewRouter registers routes once on a new echo instance. A zero rps
// disables rate limiting.
func (h *Handler) NewRouter(routes []Route, rps rate.Limit) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = h.renderer
	e.HTTPErrorHandler = h.ErrorHandler

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.RequestIDWithConfig(md.RequestIDConfig()))
	e.Use(middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)))
	if rps > 0 {
		e.Use(md.NewRateLimiter(rps))
	}

	e.StaticFS("/static", views.Static())
	e.GET("/manage/health", h.Health)
	for _, r := range routes {
		e.Add(r.Method, r.Path, r.Handler)
	}
	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Root(c echo.Context) error {
	return c.Redirect(http.StatusFound, booksURL)
}

func (h *Handler) ListBooks(c echo.Context) error {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 || page > maxPage {
		return c.Redirect(http.StatusFound, firstPageURL)
	}

	books, err := h.catalogSvc.ListBooks(c.Request().Context(), page)
	if err != nil {
		return err
	}
	// past the last page; an empty first page is simply an empty catalog
	if len(books.Items) == 0 && page > 1 {
		return c.Redirect(http.StatusFound, firstPageURL)
	}

	return c.Render(http.StatusOK, views.Index, echo.Map{
		"books":    books.Items,
		"page":     page,
		"lastPage": books.LastPage(),
		"title":    titleBooks,
	})
}

func (h *Handler) SearchBooks(c echo.Context) error {
	query := c.QueryParam("query")
	books, err := h.catalogSvc.SearchBooks(c.Request().Context(), query)
	if err != nil {
		return err
	}

	title := `Search results for "` + query + `"`
	if len(books) == 0 {
		title = titleNoResults
	}
	return c.Render(http.StatusOK, views.Index, echo.Map{
		"books": books,
		"query": query,
		"title": title,
	})
}

func (h *Handler) NewBookForm(c echo.Context) error {
	return c.Render(http.StatusOK, views.NewBook, echo.Map{
		"book":  model.Book{},
		"title": titleNewBook,
	})
}

func (h *Handler) CreateBook(c echo.Context) error {
	var in model.BookInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	if _, err := h.catalogSvc.CreateBook(c.Request().Context(), in); err != nil {
		vErr, ok := errs.AsValidation(err)
		if !ok {
			return err
		}
		return c.Render(http.StatusOK, views.NewBook, echo.Map{
			"book":   in.Normalize().Draft(0),
			"errors": vErr.Fields,
			"title":  titleNewBook,
		})
	}
	return c.Redirect(http.StatusFound, booksURL)
}

func (h *Handler) EditBookForm(c echo.Context) error {
	id, err := readID(c)
	if err != nil {
		return err
	}
	book, err := h.catalogSvc.GetBook(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.UpdateBook, echo.Map{
		"book":  book,
		"title": titleUpdate,
	})
}

func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := readID(c)
	if err != nil {
		return err
	}
	var in model.BookInput
	if err := c.Bind(&in); err != nil {
		return err
	}

	if _, err := h.catalogSvc.UpdateBook(c.Request().Context(), id, in); err != nil {
		vErr, ok := errs.AsValidation(err)
		if !ok {
			return err
		}
		return c.Render(http.StatusOK, views.UpdateBook, echo.Map{
			"book":   in.Normalize().Draft(id),
			"errors": vErr.Fields,
			"title":  titleUpdate,
		})
	}
	return c.Redirect(http.StatusFound, booksURL)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := readID(c)
	if err != nil {
		return err
	}
	if err := h.catalogSvc.DeleteBook(c.Request().Context(), id); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, booksURL)
}

// readID parses the :id path parameter. No record can match a malformed
// id, so it reports ErrNotFound.
func readID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, errs.ErrNotFound
	}
	return id, nil
}

package repository

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Astemirdum/catalog-service/catalog/internal/errs"
	"github.com/Astemirdum/catalog-service/catalog/internal/model"
	"go.uber.org/zap"
)

// memRepository keeps books in process memory. It enforces the same
// required-field constraints as the books table.
type memRepository struct {
	mu     sync.RWMutex
	books  map[int]model.Book
	lastID int
	log    *zap.Logger
}

func NewMemRepository(log *zap.Logger) *memRepository {
	return &memRepository{
		books: make(map[int]model.Book),
		log:   log.Named("memrepo"),
	}
}

// sorted returns a copy of all books ordered by id descending. Callers hold mu.
func (r *memRepository) sorted() []model.Book {
	out := make([]model.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, copyBook(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *memRepository) ListBooks(_ context.Context, offset, limit int) ([]model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sorted()
	if offset < 0 || offset >= len(all) {
		return []model.Book{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memRepository) CountBooks(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.books), nil
}

func (r *memRepository) SearchBooks(_ context.Context, query string) ([]model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Book
	for _, b := range r.sorted() {
		if matches(b, query) {
			out = append(out, b)
		}
	}
	return out, nil
}

func matches(b model.Book, q string) bool {
	lq := strings.ToLower(q)
	for _, s := range []string{b.Title, b.Author, b.Genre} {
		if strings.Contains(strings.ToLower(s), lq) {
			return true
		}
	}
	return b.Year != nil && strings.Contains(strconv.Itoa(*b.Year), q)
}

func (r *memRepository) GetBook(_ context.Context, id int) (model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return model.Book{}, errs.ErrNotFound
	}
	return copyBook(b), nil
}

func (r *memRepository) CreateBook(_ context.Context, book model.Book) (model.Book, error) {
	if err := checkRequired(book); err != nil {
		return model.Book{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	book.ID = r.lastID
	r.books[book.ID] = copyBook(book)
	r.log.Debug("book created", zap.Int("id", book.ID))
	return copyBook(book), nil
}

func (r *memRepository) UpdateBook(_ context.Context, book model.Book) error {
	if err := checkRequired(book); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[book.ID]; !ok {
		return errs.ErrNotFound
	}
	r.books[book.ID] = copyBook(book)
	return nil
}

func (r *memRepository) DeleteBook(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.books, id)
	r.log.Debug("book deleted", zap.Int("id", id))
	return nil
}

func checkRequired(b model.Book) error {
	var fields []errs.FieldError
	if b.Title == "" {
		fields = append(fields, errs.FieldError{Field: "title", Message: RequiredMessage("title")})
	}
	if b.Author == "" {
		fields = append(fields, errs.FieldError{Field: "author", Message: RequiredMessage("author")})
	}
	if len(fields) > 0 {
		return errs.NewValidationError(fields...)
	}
	return nil
}

// copyBook detaches the Year pointer from the stored record.
func copyBook(b model.Book) model.Book {
	if b.Year != nil {
		y := *b.Year
		b.Year = &y
	}
	return b
}

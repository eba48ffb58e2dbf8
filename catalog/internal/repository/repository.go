package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Astemirdum/catalog-service/catalog/internal/errs"
	"github.com/Astemirdum/catalog-service/catalog/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Repository interface {
	ListBooks(ctx context.Context, offset, limit int) ([]model.Book, error)
	CountBooks(ctx context.Context) (int, error)
	SearchBooks(ctx context.Context, query string) ([]model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	UpdateBook(ctx context.Context, book model.Book) error
	DeleteBook(ctx context.Context, id int) error
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	booksTableName = `books`
)

var (
	qb          = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	bookColumns = []string{"id", "title", "author", "genre", "year"}
)

func listBooksQuery(offset, limit int) (string, []interface{}, error) {
	return qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
}

// likeEscaper quotes LIKE metacharacters; backslash is the default
// escape character in postgres.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func searchBooksQuery(query string) (string, []interface{}, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"
	return qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"author": pattern},
			sq.ILike{"genre": pattern},
			sq.Expr("CAST(year AS TEXT) LIKE ?", pattern),
		}).
		OrderBy("id DESC").
		ToSql()
}

func (r *repository) ListBooks(ctx context.Context, offset, limit int) ([]model.Book, error) {
	query, args, err := listBooksQuery(offset, limit)
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	books := make([]model.Book, 0, limit)
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, errors.Wrap(err, "ListBooks")
	}
	return books, nil
}

func (r *repository) CountBooks(ctx context.Context) (int, error) {
	query, args, err := qb.Select("count(*)").From(booksTableName).ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, errors.Wrap(err, "CountBooks")
	}
	return count, nil
}

func (r *repository) SearchBooks(ctx context.Context, q string) ([]model.Book, error) {
	query, args, err := searchBooksQuery(q)
	if err != nil {
		return nil, err
	}
	r.log.Debug("SearchBooks", zap.String("query", query), zap.Any("args", args))

	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, errors.Wrap(err, "SearchBooks")
	}
	return books, nil
}

func (r *repository) GetBook(ctx context.Context, id int) (model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		r.log.Error("GetBook", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return model.Book{}, errors.Wrap(err, "GetBook")
	}
	return book, nil
}

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	query, args, err := qb.Insert(booksTableName).
		Columns("title", "author", "genre", "year").
		Values(book.Title, book.Author, book.Genre, book.Year).
		Suffix("RETURNING " + strings.Join(bookColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var created model.Book
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		if vErr := constraintError(err); vErr != nil {
			return model.Book{}, vErr
		}
		r.log.Error("CreateBook", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return model.Book{}, errors.Wrap(err, "CreateBook")
	}
	return created, nil
}

func (r *repository) UpdateBook(ctx context.Context, book model.Book) error {
	query, args, err := qb.Update(booksTableName).
		SetMap(map[string]interface{}{
			"title":  book.Title,
			"author": book.Author,
			"genre":  book.Genre,
			"year":   book.Year,
		}).
		Where(sq.Eq{"id": book.ID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if vErr := constraintError(err); vErr != nil {
			return vErr
		}
		r.log.Error("UpdateBook", zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return errors.Wrap(err, "UpdateBook")
	}
	return affected(res)
}

func (r *repository) DeleteBook(ctx context.Context, id int) error {
	query, args, err := qb.Delete(booksTableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "DeleteBook")
	}
	return affected(res)
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// constraintError turns a not-null or check violation on a required column
// into a validation failure. Any other error yields nil.
func constraintError(err error) *errs.ValidationError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	var field string
	switch pgErr.Code {
	case pgerrcode.NotNullViolation:
		field = pgErr.ColumnName
	case pgerrcode.CheckViolation:
		switch pgErr.ConstraintName {
		case "books_title_not_empty":
			field = "title"
		case "books_author_not_empty":
			field = "author"
		}
	}
	if field == "" {
		return nil
	}
	return errs.NewValidationError(errs.FieldError{
		Field:   field,
		Message: RequiredMessage(field),
	})
}

// RequiredMessage is the user-facing text for a missing required field.
func RequiredMessage(field string) string {
	return `Please provide a value for "` + field + `"`
}

package repository

import (
	"testing"

	"github.com/Astemirdum/catalog-service/catalog/internal/errs"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestListBooksQuery(t *testing.T) {
	t.Parallel()
	query, args, err := listBooksQuery(18, 9)
	require.NoError(t, err)
	require.Equal(t, "SELECT id, title, author, genre, year FROM books ORDER BY id DESC LIMIT 9 OFFSET 18", query)
	require.Empty(t, args)
}

func TestSearchBooksQuery(t *testing.T) {
	t.Parallel()
	query, args, err := searchBooksQuery("Dune")
	require.NoError(t, err)
	require.Equal(t,
		"SELECT id, title, author, genre, year FROM books "+
			"WHERE (title ILIKE $1 OR author ILIKE $2 OR genre ILIKE $3 OR CAST(year AS TEXT) LIKE $4) "+
			"ORDER BY id DESC",
		query)
	require.Equal(t, []interface{}{"%Dune%", "%Dune%", "%Dune%", "%Dune%"}, args)
}

func TestSearchBooksQuery_Escape(t *testing.T) {
	t.Parallel()
	tests := []struct {
		query string
		want  string
	}{
		{query: "50%_", want: `%50\%\_%`},
		{query: "_", want: `%\_%`},
		{query: `a\b`, want: `%a\\b%`},
		{query: "", want: "%%"},
	}
	for _, tt := range tests {
		_, args, err := searchBooksQuery(tt.query)
		require.NoError(t, err)
		require.Equal(t, []interface{}{tt.want, tt.want, tt.want, tt.want}, args, tt.query)
	}
}

func TestConstraintError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		err       error
		wantField string
	}{
		{
			name:      "not null title",
			err:       &pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "title"},
			wantField: "title",
		},
		{
			name:      "empty author check",
			err:       errors.Wrap(&pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "books_author_not_empty"}, "exec"),
			wantField: "author",
		},
		{
			name: "unknown check",
			err:  &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "other"},
		},
		{
			name: "unique violation",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation},
		},
		{
			name: "plain error",
			err:  errors.New("conn reset"),
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vErr := constraintError(tt.err)
			if tt.wantField == "" {
				require.Nil(t, vErr)
				return
			}
			require.NotNil(t, vErr)
			require.True(t, vErr.Has(tt.wantField))
			require.Equal(t, errs.KindValidation, errs.Classify(vErr))
			require.Equal(t, RequiredMessage(tt.wantField), vErr.Fields[0].Message)
		})
	}
}

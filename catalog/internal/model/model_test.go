package model_test

import (
	"testing"

	"github.com/Astemirdum/catalog-service/catalog/internal/model"
	"github.com/stretchr/testify/require"
)

func TestPaging_LastPage(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		paging model.Paging
		want   int
	}{
		{name: "empty", paging: model.Paging{PageSize: 9}, want: 1},
		{name: "one page", paging: model.Paging{PageSize: 9, TotalElements: 9}, want: 1},
		{name: "spill", paging: model.Paging{PageSize: 9, TotalElements: 10}, want: 2},
		{name: "exact", paging: model.Paging{PageSize: 9, TotalElements: 27}, want: 3},
		{name: "no size", paging: model.Paging{TotalElements: 27}, want: 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.paging.LastPage())
		})
	}
}

func TestBookInput_Draft(t *testing.T) {
	t.Parallel()
	in := model.BookInput{Title: " Dune ", Author: "Herbert ", Genre: " SF", Year: " 1965 "}.Normalize()
	draft := in.Draft(7)
	require.Equal(t, 7, draft.ID)
	require.Equal(t, "Dune", draft.Title)
	require.Equal(t, "Herbert", draft.Author)
	require.Equal(t, "SF", draft.Genre)
	require.Equal(t, "1965", draft.YearString())

	bad := model.BookInput{Title: "x", Year: "nineteen"}.Draft(0)
	require.Nil(t, bad.Year)
	require.Equal(t, "nineteen", bad.YearString())
}

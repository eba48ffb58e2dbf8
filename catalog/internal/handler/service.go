package handler

import (
	"context"

	"github.com/Astemirdum/catalog-service/catalog/internal/model"
	"github.com/Astemirdum/catalog-service/catalog/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type CatalogService interface {
	ListBooks(ctx context.Context, page int) (model.ListBooks, error)
	SearchBooks(ctx context.Context, query string) ([]model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	CreateBook(ctx context.Context, in model.BookInput) (model.Book, error)
	UpdateBook(ctx context.Context, id int, in model.BookInput) (model.Book, error)
	DeleteBook(ctx context.Context, id int) error
}

var _ CatalogService = (*service.Service)(nil)

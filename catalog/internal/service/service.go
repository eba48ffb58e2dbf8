package service

import (
	"context"

	"github.com/Astemirdum/catalog-service/catalog/internal/errs"
	"github.com/Astemirdum/catalog-service/catalog/internal/model"
	catalogRepo "github.com/Astemirdum/catalog-service/catalog/internal/repository"
	"github.com/Astemirdum/catalog-service/pkg/validate"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Service struct {
	log      *zap.Logger
	repo     catalogRepo.Repository
	enqueuer Enqueuer
	valid    *validate.CustomValidator
}

func NewService(repo catalogRepo.Repository, enqueuer Enqueuer, log *zap.Logger) *Service {
	if enqueuer == nil {
		enqueuer = NewNopEnqueuer()
	}
	return &Service{
		log:      log.Named("service"),
		repo:     repo,
		enqueuer: enqueuer,
		valid:    validate.NewCustomValidator(),
	}
}

// ListBooks returns one page of books, newest first. page is 1-based.
func (s *Service) ListBooks(ctx context.Context, page int) (model.ListBooks, error) {
	if page < 1 {
		page = 1
	}
	items, err := s.repo.ListBooks(ctx, (page-1)*model.PageSize, model.PageSize)
	if err != nil {
		return model.ListBooks{}, err
	}
	total, err := s.repo.CountBooks(ctx)
	if err != nil {
		return model.ListBooks{}, err
	}
	return model.ListBooks{
		Paging: model.Paging{
			Page:          page,
			PageSize:      model.PageSize,
			TotalElements: total,
		},
		Items: items,
	}, nil
}

func (s *Service) SearchBooks(ctx context.Context, query string) ([]model.Book, error) {
	return s.repo.SearchBooks(ctx, query)
}

func (s *Service) GetBook(ctx context.Context, id int) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) CreateBook(ctx context.Context, in model.BookInput) (model.Book, error) {
	in = in.Normalize()
	if err := s.validate(in); err != nil {
		return model.Book{}, err
	}
	book, err := s.repo.CreateBook(ctx, in.Draft(0))
	if err != nil {
		return model.Book{}, err
	}
	s.publish(ctx, model.EventCreated, book)
	return book, nil
}

// UpdateBook overwrites every field of the book with id. The lookup comes
// first so an unknown id reports ErrNotFound even for invalid input.
func (s *Service) UpdateBook(ctx context.Context, id int, in model.BookInput) (model.Book, error) {
	if _, err := s.repo.GetBook(ctx, id); err != nil {
		return model.Book{}, err
	}
	in = in.Normalize()
	if err := s.validate(in); err != nil {
		return model.Book{}, err
	}
	book := in.Draft(id)
	if err := s.repo.UpdateBook(ctx, book); err != nil {
		return model.Book{}, err
	}
	s.publish(ctx, model.EventUpdated, book)
	return book, nil
}

func (s *Service) DeleteBook(ctx context.Context, id int) error {
	book, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, model.EventDeleted, book)
	return nil
}

// publish never fails the caller: the mutation is already committed.
func (s *Service) publish(ctx context.Context, typ model.EventType, b model.Book) {
	if err := s.enqueuer.Enqueue(ctx, newEvent(typ, b)); err != nil {
		s.log.Warn("enqueue book event", zap.String("type", string(typ)), zap.Int("id", b.ID), zap.Error(err))
	}
}

func (s *Service) validate(in model.BookInput) error {
	err := s.valid.Validate(in)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return errors.Wrap(err, "validate")
	}
	fields := make([]errs.FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		fields = append(fields, errs.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return errs.NewValidationError(fields...)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return catalogRepo.RequiredMessage(fe.Field())
	case "year":
		return `"` + fe.Field() + `" must be a whole number between 0 and 9999`
	default:
		return `"` + fe.Field() + `" is invalid`
	}
}

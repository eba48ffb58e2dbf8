package model

import (
	"strconv"
	"strings"
	"time"
)

const PageSize = 9

type ListBooks struct {
	Paging `json:",inline"`
	Items  []Book `json:"items"`
}

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

// LastPage is the highest page number holding at least one record, never below 1.
func (p Paging) LastPage() int {
	if p.PageSize <= 0 || p.TotalElements <= p.PageSize {
		return 1
	}
	return (p.TotalElements + p.PageSize - 1) / p.PageSize
}

type Book struct {
	ID     int    `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Author string `json:"author" db:"author"`
	Genre  string `json:"genre" db:"genre"`
	Year   *int   `json:"year,omitempty" db:"year"`

	// rawYear keeps an unparsable year typed into a draft.
	rawYear string
}

// YearString renders Year for forms and lists, empty when unset.
func (b Book) YearString() string {
	if b.Year == nil {
		return b.rawYear
	}
	return strconv.Itoa(*b.Year)
}

// BookInput is the submitted form of a book record.
type BookInput struct {
	Title  string `form:"title" json:"title" validate:"required"`
	Author string `form:"author" json:"author" validate:"required"`
	Genre  string `form:"genre" json:"genre"`
	Year   string `form:"year" json:"year" validate:"omitempty,year"`
}

// Normalize trims surrounding whitespace from every field.
func (in BookInput) Normalize() BookInput {
	return BookInput{
		Title:  strings.TrimSpace(in.Title),
		Author: strings.TrimSpace(in.Author),
		Genre:  strings.TrimSpace(in.Genre),
		Year:   strings.TrimSpace(in.Year),
	}
}

// Draft builds an unpersisted record from the input, keeping what the user
// typed. An unparsable year is kept only for display.
func (in BookInput) Draft(id int) Book {
	b := Book{
		ID:     id,
		Title:  in.Title,
		Author: in.Author,
		Genre:  in.Genre,
	}
	if y, err := strconv.Atoi(in.Year); err == nil {
		b.Year = &y
	} else {
		b.rawYear = in.Year
	}
	return b
}

type EventType string

const (
	EventCreated EventType = "CREATED"
	EventUpdated EventType = "UPDATED"
	EventDeleted EventType = "DELETED"
)

// BookEvent is published on every successful catalog mutation.
type BookEvent struct {
	EventID    string    `json:"eventId"`
	Type       EventType `json:"type"`
	BookID     int       `json:"bookId"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	OccurredAt time.Time `json:"occurredAt"`
}

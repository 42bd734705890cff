// Package model holds the domain entities, request payloads and the
// uniform response envelope returned by every endpoint.
package model

// PaginationMetadata describes where a page sits in the full result set.
type PaginationMetadata struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	PageCount   int   `json:"pageCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// Response is the envelope every list and detail endpoint returns.
type Response[T any] struct {
	Data    T                   `json:"data"`
	Meta    *PaginationMetadata `json:"meta,omitempty"`
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
}

// Paginate wraps one page of items with its pagination metadata.
// A limit below 1 is treated as 1 and a nil items slice is returned as
// an empty list.
func Paginate[T any](items []T, total int64, page, limit int, message string) Response[[]T] {
	if limit < 1 {
		limit = 1
	}
	if page < 1 {
		page = 1
	}
	if items == nil {
		items = []T{}
	}

	pageCount := int((total + int64(limit) - 1) / int64(limit))
	if total <= 0 {
		pageCount = 0
	}

	return Response[[]T]{
		Data: items,
		Meta: &PaginationMetadata{
			Total:       total,
			Page:        page,
			Limit:       limit,
			PageCount:   pageCount,
			HasNext:     page < pageCount,
			HasPrevious: page > 1,
		},
		Success: true,
		Message: message,
	}
}

// Success wraps a single, non-paginated result.
func Success[T any](data T, message string) Response[T] {
	return Response[T]{
		Data:    data,
		Success: true,
		Message: message,
	}
}

// Pagination returns the page metadata, nil for non-paginated responses.
func (r Response[T]) Pagination() *PaginationMetadata {
	return r.Meta
}

package crm

import (
	"context"
)

// PageFetcher loads the page described by request.
type PageFetcher[T any] func(ctx context.Context, request *PageRequest) (*ItemPage[T], error)

// PageIterator walks a paginated list one item at a time, advancing with
// NextPageRequest until the envelope total is reached or a page comes back
// empty.
type PageIterator[T any] struct {
	ctx     context.Context
	fetch   PageFetcher[T]
	request *PageRequest
	items   []T
	index   int
	seen    int
	done    bool
	err     error
}

// NewPageIterator creates an iterator starting at first. A nil first request
// starts at the server's default page.
func NewPageIterator[T any](ctx context.Context, fetch PageFetcher[T], first *PageRequest) *PageIterator[T] {
	if first == nil {
		first = &PageRequest{}
	}

	return &PageIterator[T]{
		ctx:     ctx,
		fetch:   fetch,
		request: first,
	}
}

// HasNext reports whether another item is available, fetching the next page
// when the current one is exhausted.
func (it *PageIterator[T]) HasNext() bool {
	if it.index < len(it.items) {
		return true
	}

	if it.done || it.err != nil {
		return false
	}

	it.loadPage()

	return it.index < len(it.items)
}

// Next returns the next item.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	if !it.HasNext() {
		if it.err != nil {
			return zero, it.err
		}

		return zero, ErrNoMoreItems
	}

	item := it.items[it.index]
	it.index++

	return item, nil
}

// Err returns the error that stopped iteration, if any.
func (it *PageIterator[T]) Err() error {
	return it.err
}

// All collects the remaining items.
func (it *PageIterator[T]) All() ([]T, error) {
	var all []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return all, err
		}

		all = append(all, item)
	}

	return all, it.err
}

// ForEach calls fn for every remaining item, stopping at the first error.
func (it *PageIterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return it.err
}

func (it *PageIterator[T]) loadPage() {
	page, err := it.fetch(it.ctx, it.request)
	if err != nil {
		it.err = err

		return
	}

	it.items = page.Items()
	it.index = 0
	it.seen += len(it.items)

	if len(it.items) == 0 || it.seen >= page.Total() {
		it.done = true

		return
	}

	it.request = it.request.NextPageRequest()
}

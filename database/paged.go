package database

import "iter"

// PageSize is how many rows a paged sequence reads per query.
const PageSize = 100

// Pages yields rows a page at a time. fetch gets the key of the last row
// already yielded (0 on the first call) and returns at most n rows in
// ascending key order. Each page is read fully before it is yielded, so
// the loop body never holds the store's connection and may call back into it.
func Pages[T any](n int, key func(T) uint, fetch func(after uint, n int) ([]T, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var after uint
		for {
			page, err := fetch(after, n)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, v := range page {
				if !yield(v, nil) {
					return
				}
			}
			if len(page) < n {
				return
			}
			after = key(page[len(page)-1])
		}
	}
}

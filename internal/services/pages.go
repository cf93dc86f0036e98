package services

import (
	"context"
	"iter"
)

// PageFunc fetches the page addressed by pageToken. An empty token requests the first page.
type PageFunc[T any] func(ctx context.Context, pageToken string) (Page[T], error)

// Pages returns a lazy sequence over every item of a paginated endpoint.
//
// It follows NextPageToken until the upstream stops returning one or maxPages pages have been fetched (maxPages <= 0 is unlimited).
// Each page costs one call to fetch. A fetch error is yielded once with a zero item and ends the sequence; nothing is retried.
// Ranging over the sequence again starts from the first page.
func Pages[T any](ctx context.Context, fetch PageFunc[T], maxPages int) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		token := ""

		for page := 1; maxPages <= 0 || page <= maxPages; page++ {
			resp, err := fetch(ctx, token)
			if err != nil {
				yield(zero, err)
				return
			}

			for _, item := range resp.Items {
				if !yield(item, nil) {
					return
				}
			}

			if resp.NextPageToken == "" {
				return
			}
			token = resp.NextPageToken
		}
	}
}

// Collect drains seq into a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for item, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, item)
	}
	return out, nil
}

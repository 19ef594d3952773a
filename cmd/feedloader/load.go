package main

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/KonishchevDmitry/feedloader/pkg/feed"
	"github.com/KonishchevDmitry/feedloader/pkg/loader"
	"github.com/KonishchevDmitry/feedloader/pkg/transport"
	logging "github.com/KonishchevDmitry/go-easy-logging"
)

func load(ctx context.Context, output io.Writer, url *url.URL, client transport.Client) error {
	logging.L(ctx).Debugf("Loading %s...", url)

	results := make(chan feed.LoadResult, 1)
	loader.New(url, client).Load(func(result feed.LoadResult) {
		results <- result
	})

	var result feed.LoadResult
	select {
	case result = <-results:
	case <-ctx.Done():
		return ctx.Err()
	}

	items, err := result.Get()
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", url, err)
	}

	logging.L(ctx).Debugf("Loaded %d items from %s.", len(items), url)

	for _, item := range items {
		if _, err := fmt.Fprintf(output, "%s\t%s\t%s\t%s\n",
			item.ID, item.ImageURL, item.Description.OrElse("-"), item.Location.OrElse("-"),
		); err != nil {
			return err
		}
	}

	return nil
}

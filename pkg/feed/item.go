package feed

import (
	"net/url"

	"github.com/google/uuid"
	"github.com/samber/mo"
)

// Item is a single feed entry. Items are created by Decode and aren't modified afterwards.
type Item struct {
	ID          uuid.UUID
	Description mo.Option[string]
	Location    mo.Option[string]
	ImageURL    *url.URL
}

func NewItem(id uuid.UUID, imageURL *url.URL) Item {
	return Item{
		ID:       id,
		ImageURL: imageURL,
	}
}

func (i Item) WithDescription(description string) Item {
	i.Description = mo.Some(description)
	return i
}

func (i Item) WithLocation(location string) Item {
	i.Location = mo.Some(location)
	return i
}

package feed

import (
	"errors"
	"fmt"

	"github.com/KonishchevDmitry/feedloader/pkg/url"
	"github.com/go-json-experiment/json"
	"github.com/google/uuid"
	"github.com/samber/mo"
)

type document struct {
	Items *[]item `json:"items"`
}

type item struct {
	ID          *string `json:"id"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	ImageURL    *string `json:"imageURL"`
}

// Decode parses a feed document. Member names are matched case-sensitively and a single invalid item makes the whole
// document invalid.
func Decode(data []byte) ([]Item, error) {
	var document document
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to parse the feed: %w", err)
	}

	if document.Items == nil {
		return nil, errors.New("the feed has no items list")
	}

	items := make([]Item, 0, len(*document.Items))
	for index, rawItem := range *document.Items {
		item, err := rawItem.decode()
		if err != nil {
			return nil, fmt.Errorf("invalid item #%d: %w", index, err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (i *item) decode() (Item, error) {
	if i.ID == nil {
		return Item{}, errors.New("id is missing")
	}

	id, err := parseID(*i.ID)
	if err != nil {
		return Item{}, err
	}

	if i.ImageURL == nil {
		return Item{}, errors.New("imageURL is missing")
	}

	imageURL, err := url.ParseAbsolute(*i.ImageURL)
	if err != nil {
		return Item{}, fmt.Errorf("invalid imageURL: %w", err)
	}

	return Item{
		ID:          id,
		Description: optional(i.Description),
		Location:    optional(i.Location),
		ImageURL:    imageURL,
	}, nil
}

// parseID accepts only the canonical xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form: uuid.Parse also allows URN, braced
// and dashless spellings.
func parseID(value string) (uuid.UUID, error) {
	if len(value) != 36 {
		return uuid.Nil, fmt.Errorf("invalid id: %q", value)
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id: %q", value)
	}

	return id, nil
}

func optional(value *string) mo.Option[string] {
	if value == nil {
		return mo.None[string]()
	}
	return mo.Some(*value)
}

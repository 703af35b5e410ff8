package api

import "context"

// CreateListingInput is the create payload. Optional fields are omitted when
// empty rather than sent as empty strings. Images accepts pre-uploaded URLs;
// the usual flow uploads through /images/upload after creation instead.
type CreateListingInput struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Condition   ListingCondition `json:"condition,omitempty"`
	CategoryID  string           `json:"categoryId,omitempty"`
	Location    string           `json:"location,omitempty"`
	Images      []string         `json:"images,omitempty"`
}

// ContactMessage is the seller contact form payload.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

func (c *Client) Listings(ctx context.Context, filters ListingFilters) ([]Listing, error) {
	var out []Listing
	if err := c.get(ctx, "/listings", filters.Values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Listing(ctx context.Context, id string) (*Listing, error) {
	var out Listing
	if err := c.get(ctx, "/listings/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyListings(ctx context.Context) ([]Listing, error) {
	var out []Listing
	if err := c.get(ctx, "/listings/my-listings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyListingIDs returns the ids of the session user's listings. List pages use
// it only to annotate ownership, never as the source of truth.
func (c *Client) MyListingIDs(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.get(ctx, "/listings/my-listing-ids", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateListing(ctx context.Context, input CreateListingInput) (*Listing, error) {
	var out Listing
	if err := c.post(ctx, "/listings", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateListing patches only the given fields (minimal diff, PATCH semantics).
func (c *Client) UpdateListing(ctx context.Context, id string, fields map[string]any) (*Listing, error) {
	var out Listing
	if err := c.patch(ctx, "/listings/"+id, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteListing(ctx context.Context, id string) error {
	return c.delete(ctx, "/listings/"+id)
}

func (c *Client) ContactSeller(ctx context.Context, listingID string, msg ContactMessage) error {
	return c.post(ctx, "/listings/"+listingID+"/contact", msg, nil)
}

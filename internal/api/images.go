package api

import "context"

// UploadImageInput carries the image as a self-describing base64 data URI;
// there is no multipart or binary streaming path.
type UploadImageInput struct {
	Source       string `json:"source"`
	ListingID    string `json:"listingId"`
	DisplayOrder int    `json:"displayOrder"`
}

func (c *Client) UploadImage(ctx context.Context, input UploadImageInput) (*Image, error) {
	var out Image
	if err := c.post(ctx, "/images/upload", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListingImages(ctx context.Context, listingID string) ([]Image, error) {
	var out []Image
	if err := c.get(ctx, "/images/listing/"+listingID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteImage(ctx context.Context, id string) error {
	return c.delete(ctx, "/images/"+id)
}

package api

import (
	"net/url"
	"strconv"
	"time"
)

type ListingStatus string

const (
	StatusActive   ListingStatus = "active"
	StatusSold     ListingStatus = "sold"
	StatusInactive ListingStatus = "inactive"
)

type ListingCondition string

const (
	ConditionNew     ListingCondition = "new"
	ConditionLikeNew ListingCondition = "like_new"
	ConditionGood    ListingCondition = "good"
	ConditionFair    ListingCondition = "fair"
	ConditionPoor    ListingCondition = "poor"
)

type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Phone      string    `json:"phone,omitempty"`
	IsActive   bool      `json:"isActive"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Image is an attachment bound to exactly one listing. The server assigns the
// id and the derived URLs on upload; images are never updated in place.
type Image struct {
	ID               string    `json:"id"`
	URL              string    `json:"url"`
	ThumbURL         string    `json:"thumbUrl,omitempty"`
	MediumURL        string    `json:"mediumUrl,omitempty"`
	OriginalFilename string    `json:"originalFilename,omitempty"`
	Size             int64     `json:"size,omitempty"`
	Width            int       `json:"width,omitempty"`
	Height           int       `json:"height,omitempty"`
	DisplayOrder     int       `json:"displayOrder"`
	ListingID        string    `json:"listingId"`
	CreatedAt        time.Time `json:"createdAt"`
}

type Listing struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Condition   ListingCondition `json:"condition"`
	Category    *Category        `json:"category"`
	CategoryID  string           `json:"categoryId"`
	Images      []Image          `json:"images"`
	Location    string           `json:"location"`
	Status      ListingStatus    `json:"status"`
	Views       int              `json:"views"`
	User        *User            `json:"user"`
	UserID      string           `json:"userId"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ListingFilters is the criteria of a list query. A zero field means
// unconstrained; empty strings are never sent as sentinels. Price bounds are
// pointers so a zero bound can still be expressed.
type ListingFilters struct {
	Status     string
	CategoryID string
	UserID     string
	Search     string
	Condition  string
	MinPrice   *float64
	MaxPrice   *float64
}

// Values encodes the criteria as query parameters. MinPrice/MaxPrice are sent
// verbatim even when inverted; whether the backend rejects an inverted range
// is its own concern.
func (f ListingFilters) Values() url.Values {
	params := url.Values{}
	if f.Status != "" {
		params.Set("status", f.Status)
	}
	if f.CategoryID != "" {
		params.Set("categoryId", f.CategoryID)
	}
	if f.UserID != "" {
		params.Set("userId", f.UserID)
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Condition != "" {
		params.Set("condition", f.Condition)
	}
	if f.MinPrice != nil {
		params.Set("minPrice", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		params.Set("maxPrice", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	return params
}

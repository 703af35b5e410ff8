package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonDecode(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestBearerHeaderInjection(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticToken("tok-123")))
	_, err := c.Listings(context.Background(), ListingFilters{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestAnonymousRequestOmitsAuthHeader(t *testing.T) {
	var hadAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithTokenSource(staticToken("")))
	_, err := c.Listings(context.Background(), ListingFilters{})
	require.NoError(t, err)
	assert.False(t, hadAuth)
}

func TestRequestIDAttached(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Listings(context.Background(), ListingFilters{})
	require.NoError(t, err)
	assert.NotEmpty(t, gotID)
}

func TestFilterQueryComposition(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	min, max := 10.5, 200.0
	c := New(srv.URL)
	_, err := c.Listings(context.Background(), ListingFilters{
		Status:    "active",
		Condition: "good",
		Search:    "phone",
		MinPrice:  &min,
		MaxPrice:  &max,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"active"}, gotQuery["status"])
	assert.Equal(t, []string{"good"}, gotQuery["condition"])
	assert.Equal(t, []string{"phone"}, gotQuery["search"])
	assert.Equal(t, []string{"10.5"}, gotQuery["minPrice"])
	assert.Equal(t, []string{"200"}, gotQuery["maxPrice"])
	// Unset axes must not appear at all, not even as empty strings.
	assert.NotContains(t, gotQuery, "categoryId")
	assert.NotContains(t, gotQuery, "userId")
}

func TestUnauthorizedHookFires(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer srv.Close()

	fired := false
	c := New(srv.URL, WithUnauthorizedHook(func() { fired = true }))
	_, err := c.Profile(context.Background())
	require.Error(t, err)
	assert.True(t, fired)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, "token expired", ErrorMessage(err, "fallback"))
}

func TestErrorMessageFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Profile(context.Background())
	require.Error(t, err)
	assert.Equal(t, "something went wrong", ErrorMessage(err, "something went wrong"))
}

func TestValidationMessageListJoined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":["title must not be empty","price must be positive"]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateListing(context.Background(), CreateListingInput{})
	require.Error(t, err)
	assert.Equal(t, "title must not be empty; price must be positive", ErrorMessage(err, ""))
}

func TestPatchSendsOnlyGivenFields(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, jsonDecode(r, &gotBody))
		_, _ = w.Write([]byte(`{"id":"l1","title":"new title"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.UpdateListing(context.Background(), "l1", map[string]any{"title": "new title"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "new title"}, gotBody)
}

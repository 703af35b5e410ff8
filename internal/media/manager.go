// Package media manages the ordered image attachments of one listing:
// max-count enforcement, concurrent all-or-nothing batch upload, and
// individual deletion.
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"

	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/api"
	"github.com/mariovojnichajduk/SP-KP-Frontend/internal/notify"
)

type imageAPI interface {
	UploadImage(ctx context.Context, input api.UploadImageInput) (*api.Image, error)
	ListingImages(ctx context.Context, listingID string) ([]api.Image, error)
	DeleteImage(ctx context.Context, id string) error
}

// File is a to-be-uploaded image read from disk.
type File struct {
	Name string
	Data []byte
}

type Manager struct {
	api       imageAPI
	notify    notify.Notifier
	log       *slog.Logger
	listingID string
	maxCount  int

	// mu also serializes AddFiles batches, so displayOrder snapshots from two
	// batches of this manager cannot interleave.
	mu     sync.Mutex
	images []api.Image
}

func NewManager(a imageAPI, n notify.Notifier, logger *slog.Logger, listingID string, maxCount int) *Manager {
	return &Manager{api: a, notify: n, log: logger, listingID: listingID, maxCount: maxCount}
}

// Load replaces local state with the listing's server-side images, ordered by
// displayOrder.
func (m *Manager) Load(ctx context.Context) error {
	images, err := m.api.ListingImages(ctx, m.listingID)
	if err != nil {
		m.notify.Error(api.ErrorMessage(err, "Failed to load images"))
		return err
	}
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].DisplayOrder < images[j].DisplayOrder
	})

	m.mu.Lock()
	m.images = images
	m.mu.Unlock()
	return nil
}

// Images returns a copy of the current attachment list.
func (m *Manager) Images() []api.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]api.Image, len(m.images))
	copy(out, m.images)
	return out
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.images)
}

// AddFiles uploads the batch concurrently. The whole batch is rejected before
// any network call when it would exceed maxCount. Each file's displayOrder is
// its position appended after the pre-dispatch count. The batch is
// all-or-nothing: every request is dispatched before any is awaited, and one
// failure means nothing is appended.
func (m *Manager) AddFiles(ctx context.Context, files []File) error {
	if len(files) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.images)+len(files) > m.maxCount {
		m.notify.Error(fmt.Sprintf("You can only upload up to %d images", m.maxCount))
		return fmt.Errorf("upload would exceed the %d image limit", m.maxCount)
	}

	base := len(m.images)
	uploaded := make([]*api.Image, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file File) {
			defer wg.Done()
			uploaded[i], errs[i] = m.api.UploadImage(ctx, api.UploadImageInput{
				Source:       DataURI(file.Data),
				ListingID:    m.listingID,
				DisplayOrder: base + i,
			})
		}(i, file)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			m.log.Error("batch upload failed", "file", files[i].Name, "error", err)
			m.notify.Error(api.ErrorMessage(err, "Failed to upload images"))
			return err
		}
	}

	for _, img := range uploaded {
		m.images = append(m.images, *img)
	}
	m.notify.Success(fmt.Sprintf("%d image(s) uploaded successfully!", len(uploaded)))
	return nil
}

// Remove deletes one image on the server, then drops exactly that image from
// local state. Remaining displayOrder values are not renumbered. Asking the
// user to confirm is the caller's concern.
func (m *Manager) Remove(ctx context.Context, id string) error {
	if err := m.api.DeleteImage(ctx, id); err != nil {
		m.notify.Error(api.ErrorMessage(err, "Failed to delete image"))
		return err
	}

	m.mu.Lock()
	kept := m.images[:0]
	for _, img := range m.images {
		if img.ID != id {
			kept = append(kept, img)
		}
	}
	m.images = kept
	m.mu.Unlock()

	m.notify.Success("Image deleted successfully")
	return nil
}

// DataURI transcodes raw image bytes into a self-describing base64 data URI,
// sniffing the MIME type from the content.
func DataURI(data []byte) string {
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

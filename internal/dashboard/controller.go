package dashboard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/DarboeDev/UTGSSA-HUB/internal/assets"
	"golang.org/x/sync/errgroup"
)

// State is the controller's load lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

// API is the slice of Client the controller uses. Tests substitute a
// stub.
type API interface {
	List(ctx context.Context, kind Kind) ([]Record, error)
	Create(ctx context.Context, kind Kind, payload map[string]any) (Record, error)
	Update(ctx context.Context, kind Kind, id string, payload map[string]any) (Record, error)
	Delete(ctx context.Context, kind Kind, id string) error
}

// Uploader stages form attachments on the asset host before save.
type Uploader interface {
	Upload(ctx context.Context, fileName string, content io.Reader, subfolder string) (assets.Asset, error)
}

// Stats is the dashboard's overview card numbers.
type Stats struct {
	Leaders        int
	UpcomingEvents int
	PublishedBlogs int
	PublishedNews  int
	Resources      int
}

// Controller holds the admin dashboard state: the per-collection record
// cache, load state, per-tab search terms, and in-flight delete
// markers. All methods are safe for concurrent use.
type Controller struct {
	api      API
	uploader Uploader
	now      func() time.Time

	mu       sync.Mutex
	state    State
	err      error
	records  map[Kind][]Record
	search   map[Kind]string
	notice   string
	deleting map[string]bool
}

func NewController(api API, uploader Uploader) *Controller {
	return &Controller{
		api:      api,
		uploader: uploader,
		now:      time.Now,
		records:  map[Kind][]Record{},
		search:   map[Kind]string{},
		deleting: map[string]bool{},
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Notice returns and clears the transient success message.
func (c *Controller) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	notice := c.notice
	c.notice = ""
	return notice
}

// Refresh reloads all five collections in parallel. One failed fetch
// aborts the load and moves the controller to StateError; the records
// from the last successful load stay visible.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.state = StateLoading
	c.err = nil
	c.mu.Unlock()

	fresh := make(map[Kind][]Record, len(Kinds))
	var freshMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range Kinds {
		kind := kind
		g.Go(func() error {
			records, err := c.api.List(gctx, kind)
			if err != nil {
				return err
			}
			freshMu.Lock()
			fresh[kind] = records
			freshMu.Unlock()
			return nil
		})
	}

	err := g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateError
		c.err = err
		return err
	}
	c.records = fresh
	c.state = StateReady
	return nil
}

// Records returns the cached records for the kind, unfiltered.
func (c *Controller) Records(kind Kind) []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.records[kind]
}

// SetSearch sets the tab's filter term.
func (c *Controller) SetSearch(kind Kind, term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search[kind] = term
}

// Visible returns the kind's records matching the tab's search term,
// comparing case-insensitively against every string field.
func (c *Controller) Visible(kind Kind) []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(c.search[kind]))
	if term == "" {
		return c.records[kind]
	}

	var matched []Record
	for _, record := range c.records[kind] {
		if recordMatches(record, term) {
			matched = append(matched, record)
		}
	}
	return matched
}

func recordMatches(record Record, term string) bool {
	for _, value := range record {
		if s, ok := value.(string); ok && strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

// Stats computes the overview numbers from the cached records.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	stats := Stats{
		Leaders:   len(c.records[KindLeaders]),
		Resources: len(c.records[KindResources]),
	}
	for _, event := range c.records[KindEvents] {
		if date, err := time.Parse(time.RFC3339, event.Str("date")); err == nil && date.After(now) {
			stats.UpcomingEvents++
		}
	}
	for _, blog := range c.records[KindBlogs] {
		if blog.Bool("isPublished") {
			stats.PublishedBlogs++
		}
	}
	for _, item := range c.records[KindNews] {
		if item.Bool("isPublished") {
			stats.PublishedNews++
		}
	}
	return stats
}

// Save submits the form. A staged attachment is uploaded first and its
// URL merged into the payload; leaders and resources also keep the
// asset's public id so a later delete can release the file. The return
// reports whether the form should close: true on success, false when
// the save failed and the user should keep editing.
func (c *Controller) Save(ctx context.Context, form *Form) (bool, error) {
	payload, err := form.Payload()
	if err != nil {
		return false, err
	}

	if form.File != nil {
		if c.uploader == nil {
			return false, errors.New("file uploads are not configured")
		}
		asset, err := c.uploader.Upload(ctx, form.File.FileName, bytes.NewReader(form.File.Content), form.Kind.Path())
		if err != nil {
			return false, err
		}
		mergeAsset(form.Kind, payload, asset)
	}

	if form.ID == "" {
		_, err = c.api.Create(ctx, form.Kind, payload)
	} else {
		_, err = c.api.Update(ctx, form.Kind, form.ID, payload)
	}
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	if form.ID == "" {
		c.notice = form.Kind.Label() + " entry created"
	} else {
		c.notice = form.Kind.Label() + " entry updated"
	}
	c.mu.Unlock()

	// A failed refresh leaves stale rows, but the save itself went
	// through, so the form still closes.
	_ = c.Refresh(ctx)
	return true, nil
}

func mergeAsset(kind Kind, payload map[string]any, asset assets.Asset) {
	switch kind {
	case KindLeaders:
		payload["image"] = asset.URL
		payload["imagePublicId"] = asset.PublicID
	case KindResources:
		payload["fileUrl"] = asset.URL
		payload["filePublicId"] = asset.PublicID
	default:
		payload["image"] = asset.URL
	}
}

// Delete removes the record. A second call for the same row while the
// first is in flight is rejected.
func (c *Controller) Delete(ctx context.Context, kind Kind, id string) error {
	key := kind.Path() + "/" + id

	c.mu.Lock()
	if c.deleting[key] {
		c.mu.Unlock()
		return errors.New("delete already in progress")
	}
	c.deleting[key] = true
	c.mu.Unlock()

	err := c.api.Delete(ctx, kind, id)

	c.mu.Lock()
	delete(c.deleting, key)
	if err == nil {
		c.notice = kind.Label() + " entry deleted"
	}
	c.mu.Unlock()

	if err != nil {
		return err
	}
	_ = c.Refresh(ctx)
	return nil
}

// Deleting reports whether the row's delete is still in flight.
func (c *Controller) Deleting(kind Kind, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleting[kind.Path()+"/"+id]
}

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"cratedig-hq/cratedig/pkg/client"
	"cratedig-hq/cratedig/pkg/ratelimit"
	"cratedig-hq/cratedig/pkg/request"
	"cratedig-hq/cratedig/pkg/retry"
)

// Dispatcher is the slice of the client the service needs.
type Dispatcher interface {
	Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error)
	Post(ctx context.Context, endpoint string, body any) (json.RawMessage, error)
}

// Service exposes typed catalog operations. Every call goes through the
// retry strategy; pass a strategy with MaxRetries 0 to disable retries.
type Service struct {
	client   Dispatcher
	strategy *retry.Strategy
}

// NewService creates a Service. A nil strategy gets the standard defaults.
func NewService(c Dispatcher, strategy *retry.Strategy) *Service {
	if strategy == nil {
		strategy = retry.New()
	}
	return &Service{client: c, strategy: strategy}
}

// PageOptions selects a page of a listing. Zero values fall back to the
// API defaults (page 1, 50 per page).
type PageOptions struct {
	Page    int
	PerPage int
	Sort    string
	Order   string
}

func (p PageOptions) apply(b *request.Builder) {
	page, perPage := p.Page, p.PerPage
	if page == 0 {
		page = 1
	}
	if perPage == 0 {
		perPage = 50
	}
	b.Paginate(page, perPage)
	if p.Sort != "" {
		b.Sort(p.Sort, p.Order)
	}
}

// SearchOptions narrows a database search.
type SearchOptions struct {
	Query   string
	Type    string
	Title   string
	Artist  string
	Label   string
	Genre   string
	Style   string
	Country string
	Year    string
	Format  string
	Barcode string
	CatNo   string
	Page    PageOptions
}

// Search queries the database search endpoint.
func (s *Service) Search(ctx context.Context, opts SearchOptions) (*SearchResponse, error) {
	b := request.NewBuilder().
		Search(opts.Query, opts.Type).
		Param("title", opts.Title).
		Param("artist", opts.Artist).
		Param("label", opts.Label).
		Param("genre", opts.Genre).
		Param("style", opts.Style).
		Param("country", opts.Country).
		Param("year", opts.Year).
		Param("format", opts.Format).
		Param("barcode", opts.Barcode).
		Param("catno", opts.CatNo)
	opts.Page.apply(b)

	var out SearchResponse
	raw, err := s.get(ctx, b)
	if err != nil {
		return nil, err
	}
	return &out, decode(raw, &out, &out.Raw)
}

// Artist fetches an artist profile.
func (s *Service) Artist(ctx context.Context, artistID int) (*Artist, error) {
	var out Artist
	raw, err := s.get(ctx, request.NewBuilder().Artist(artistID))
	if err != nil {
		return nil, err
	}
	return &out, decode(raw, &out, &out.Raw)
}

// ArtistReleases lists an artist's releases.
func (s *Service) ArtistReleases(ctx context.Context, artistID int, page PageOptions) (*ReleaseList, error) {
	b := request.NewBuilder().ArtistReleases(artistID)
	page.apply(b)

	var out ReleaseList
	raw, err := s.get(ctx, b)
	if err != nil {
		return nil, err
	}
	return &out, decode(raw, &out, &out.Raw)
}

// Release fetches a full release record.
func (s *Service) Release(ctx context.Context, releaseID int) (*Release, error) {
	var out Release
	raw, err := s.get(ctx, request.NewBuilder().Release(releaseID))
	if err != nil {
		return nil, err
	}
	return &out, decode(raw, &out, &out.Raw)
}

// Master fetches a master release.
func (s *Service) Master(ctx context.Context, masterID int) (*Master, error) {
	var out Master
	raw, err := s.get(ctx, request.NewBuilder().Master(masterID))
	if err != nil {
		return nil, err
	}
	return &out, decode(raw, &out, &out.Raw)
}

// MasterVersions lists the pressings of a master release.
func (s *Service) MasterVersions(ctx context.Context, masterID int, page PageOptions) (*MasterVersionList, error) {
	b := request.NewBuilder().MasterVersions(masterID)
	page.apply(b)

	var out MasterVersionList
	raw, err := s.get(ctx, b)
	if err != nil {
		return nil, err
	}
	return &out, decode(raw, &out, &out.Raw)
}

// Label fetches a label profile.
func (s *Service) Label(ctx context.Context, labelID int) (*Label, error) {
	var out Label
	raw, err := s.get(ctx, request.NewBuilder().Label(labelID))
	if err != nil {
		return nil, err
	}
	return &out, decode(raw, &out, &out.Raw)
}

// LabelReleases lists a label's releases.
func (s *Service) LabelReleases(ctx context.Context, labelID int, page PageOptions) (*ReleaseList, error) {
	b := request.NewBuilder().LabelReleases(labelID)
	page.apply(b)

	var out ReleaseList
	raw, err := s.get(ctx, b)
	if err != nil {
		return nil, err
	}
	return &out, decode(raw, &out, &out.Raw)
}

// User fetches a user profile.
func (s *Service) User(ctx context.Context, username string) (*User, error) {
	var out User
	raw, err := s.get(ctx, request.NewBuilder().User(username))
	if err != nil {
		return nil, err
	}
	return &out, decode(raw, &out, &out.Raw)
}

// CollectionReleases lists a page of a user's collection folder. Folder 0
// spans all folders.
func (s *Service) CollectionReleases(ctx context.Context, username string, folderID int, page PageOptions) (*CollectionPage, error) {
	b := request.NewBuilder().Collection(username, folderID)
	page.apply(b)

	var out CollectionPage
	raw, err := s.get(ctx, b)
	if err != nil {
		return nil, err
	}
	return &out, decode(raw, &out, &out.Raw)
}

// Wantlist lists a page of a user's wantlist.
func (s *Service) Wantlist(ctx context.Context, username string, page PageOptions) (*WantlistPage, error) {
	b := request.NewBuilder().Wantlist(username)
	page.apply(b)

	var out WantlistPage
	raw, err := s.get(ctx, b)
	if err != nil {
		return nil, err
	}
	return &out, decode(raw, &out, &out.Raw)
}

// AddToCollection adds a release to a user's collection folder.
func (s *Service) AddToCollection(ctx context.Context, username string, folderID, releaseID int) (*CollectionAdd, error) {
	endpoint := request.NewBuilder().CollectionFolder(username, folderID, releaseID).Endpoint()

	var out CollectionAdd
	raw, err := s.post(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return &out, decode(raw, &out, &out.Raw)
}

// CreateList creates a user list.
func (s *Service) CreateList(ctx context.Context, username, name, description string, public bool) (*List, error) {
	endpoint := request.NewBuilder().Lists(username).Endpoint()
	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      public,
	}

	var out List
	raw, err := s.post(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}
	return &out, decode(raw, &out, &out.Raw)
}

// RateLimit reports the admission window snapshot when the underlying
// dispatcher is a *client.Client.
func (s *Service) RateLimit() (ratelimit.Status, bool) {
	if c, ok := s.client.(*client.Client); ok {
		return c.RateLimitStatus(), true
	}
	return ratelimit.Status{}, false
}

func (s *Service) get(ctx context.Context, b *request.Builder) (json.RawMessage, error) {
	endpoint, params, err := b.Build()
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	doErr := s.strategy.Do(ctx, func() error {
		var opErr error
		raw, opErr = s.client.Get(ctx, endpoint, params)
		return opErr
	})
	return raw, doErr
}

func (s *Service) post(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	var raw json.RawMessage
	doErr := s.strategy.Do(ctx, func() error {
		var opErr error
		raw, opErr = s.client.Post(ctx, endpoint, body)
		return opErr
	})
	return raw, doErr
}

// decode unmarshals raw into out and stashes the original payload.
func decode(raw json.RawMessage, out any, keep *json.RawMessage) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	*keep = raw
	return nil
}

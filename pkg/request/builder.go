// Package request assembles catalog API endpoints and query parameters.
//
// The Builder is pure string assembly with no I/O: it produces an endpoint
// path plus url.Values that the dispatch engine turns into a real request.
//
//	endpoint, params, err := request.NewBuilder().
//	    Search("nevermind", "release").
//	    Paginate(1, 50).
//	    Build()
package request

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrNoEndpoint is returned by Build when no endpoint method was called.
var ErrNoEndpoint = errors.New("request: no endpoint set")

// maxPerPage is the API's pagination ceiling.
const maxPerPage = 100

// Builder constructs catalog API requests through method chaining. The zero
// value is not usable; create one with NewBuilder. A Builder is not safe
// for concurrent use.
type Builder struct {
	endpoint string
	params   url.Values
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{params: url.Values{}}
}

// Search targets the database search endpoint. Empty query or kind are
// omitted from the parameters.
func (b *Builder) Search(query, kind string) *Builder {
	b.endpoint = "/database/search"
	if query != "" {
		b.params.Set("q", query)
	}
	if kind != "" {
		b.params.Set("type", kind)
	}
	return b
}

// Artist targets an artist by id.
func (b *Builder) Artist(artistID int) *Builder {
	b.endpoint = fmt.Sprintf("/artists/%d", artistID)
	return b
}

// ArtistReleases targets an artist's releases.
func (b *Builder) ArtistReleases(artistID int) *Builder {
	b.endpoint = fmt.Sprintf("/artists/%d/releases", artistID)
	return b
}

// Release targets a release by id.
func (b *Builder) Release(releaseID int) *Builder {
	b.endpoint = fmt.Sprintf("/releases/%d", releaseID)
	return b
}

// Master targets a master release by id.
func (b *Builder) Master(masterID int) *Builder {
	b.endpoint = fmt.Sprintf("/masters/%d", masterID)
	return b
}

// MasterVersions targets the versions of a master release.
func (b *Builder) MasterVersions(masterID int) *Builder {
	b.endpoint = fmt.Sprintf("/masters/%d/versions", masterID)
	return b
}

// Label targets a label by id.
func (b *Builder) Label(labelID int) *Builder {
	b.endpoint = fmt.Sprintf("/labels/%d", labelID)
	return b
}

// LabelReleases targets a label's releases.
func (b *Builder) LabelReleases(labelID int) *Builder {
	b.endpoint = fmt.Sprintf("/labels/%d/releases", labelID)
	return b
}

// User targets a user profile.
func (b *Builder) User(username string) *Builder {
	b.endpoint = "/users/" + url.PathEscape(username)
	return b
}

// Collection targets a user's collection folder. Folder 0 means all
// folders.
func (b *Builder) Collection(username string, folderID int) *Builder {
	b.endpoint = fmt.Sprintf("/users/%s/collection/folders/%d/releases",
		url.PathEscape(username), folderID)
	return b
}

// Wantlist targets a user's wantlist.
func (b *Builder) Wantlist(username string) *Builder {
	b.endpoint = fmt.Sprintf("/users/%s/wants", url.PathEscape(username))
	return b
}

// CollectionFolder targets a collection folder itself, for adding releases.
func (b *Builder) CollectionFolder(username string, folderID, releaseID int) *Builder {
	b.endpoint = fmt.Sprintf("/users/%s/collection/folders/%d/releases/%d",
		url.PathEscape(username), folderID, releaseID)
	return b
}

// Lists targets a user's lists, for list creation.
func (b *Builder) Lists(username string) *Builder {
	b.endpoint = fmt.Sprintf("/users/%s/lists", url.PathEscape(username))
	return b
}

// Paginate adds pagination parameters. Page is clamped to at least 1 and
// perPage to the API ceiling of 100.
func (b *Builder) Paginate(page, perPage int) *Builder {
	if page < 1 {
		page = 1
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	if perPage < 1 {
		perPage = 1
	}
	b.params.Set("page", strconv.Itoa(page))
	b.params.Set("per_page", strconv.Itoa(perPage))
	return b
}

// Sort adds sorting parameters. Order is lowercased; anything other than
// "desc" sorts ascending.
func (b *Builder) Sort(field, order string) *Builder {
	b.params.Set("sort", field)
	order = strings.ToLower(order)
	if order != "desc" {
		order = "asc"
	}
	b.params.Set("sort_order", order)
	return b
}

// Param sets an arbitrary query parameter. Empty values are dropped so
// optional filters can be passed through unconditionally.
func (b *Builder) Param(key, value string) *Builder {
	if value != "" {
		b.params.Set(key, value)
	}
	return b
}

// Endpoint returns the endpoint path set so far.
func (b *Builder) Endpoint() string {
	return b.endpoint
}

// Params returns a copy of the accumulated query parameters.
func (b *Builder) Params() url.Values {
	out := url.Values{}
	for k, vs := range b.params {
		for _, v := range vs {
			out.Add(k, v)
		}
	}
	return out
}

// Build returns the endpoint and parameters, or ErrNoEndpoint when no
// endpoint method was called.
func (b *Builder) Build() (string, url.Values, error) {
	if b.endpoint == "" {
		return "", nil, ErrNoEndpoint
	}
	return b.endpoint, b.Params(), nil
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() *Builder {
	b.endpoint = ""
	b.params = url.Values{}
	return b
}

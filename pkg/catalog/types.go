package catalog

import "encoding/json"

// Pagination describes the paging block returned on list responses.
type Pagination struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
	Items   int `json:"items"`
}

// SearchResult is a single hit from the database search endpoint.
type SearchResult struct {
	ID      int      `json:"id"`
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Year    string   `json:"year"`
	Country string   `json:"country"`
	Genre   []string `json:"genre"`
	Style   []string `json:"style"`
	Label   []string `json:"label"`
	Format  []string `json:"format"`
	Thumb   string   `json:"thumb"`
	URI     string   `json:"uri"`
}

// SearchResponse is the database search payload.
type SearchResponse struct {
	Pagination Pagination      `json:"pagination"`
	Results    []SearchResult  `json:"results"`
	Raw        json.RawMessage `json:"-"`
}

// Artist is an artist profile.
type Artist struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	RealName       string   `json:"realname"`
	Profile        string   `json:"profile"`
	URLs           []string `json:"urls"`
	NameVariations []string `json:"namevariations"`
	Members        []struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Active bool   `json:"active"`
	} `json:"members"`
	Raw json.RawMessage `json:"-"`
}

// ReleaseSummary is one entry in an artist's or label's release listing.
type ReleaseSummary struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Year        int    `json:"year"`
	Role        string `json:"role"`
	Artist      string `json:"artist"`
	Format      string `json:"format"`
	Label       string `json:"label"`
	Status      string `json:"status"`
	Thumb       string `json:"thumb"`
	MainRelease int    `json:"main_release"`
}

// ReleaseList is a paginated release listing.
type ReleaseList struct {
	Pagination Pagination       `json:"pagination"`
	Releases   []ReleaseSummary `json:"releases"`
	Raw        json.RawMessage  `json:"-"`
}

// Track is one tracklist entry on a release.
type Track struct {
	Position string `json:"position"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
}

// Release is a full release record.
type Release struct {
	ID      int      `json:"id"`
	Title   string   `json:"title"`
	Year    int      `json:"year"`
	Country string   `json:"country"`
	Genres  []string `json:"genres"`
	Styles  []string `json:"styles"`
	Artists []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"artists"`
	Labels []struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		CatNo string `json:"catno"`
	} `json:"labels"`
	Formats []struct {
		Name         string   `json:"name"`
		Qty          string   `json:"qty"`
		Descriptions []string `json:"descriptions"`
	} `json:"formats"`
	Tracklist []Track         `json:"tracklist"`
	MasterID  int             `json:"master_id"`
	Notes     string          `json:"notes"`
	Raw       json.RawMessage `json:"-"`
}

// Master is a master release record.
type Master struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Year        int             `json:"year"`
	Genres      []string        `json:"genres"`
	Styles      []string        `json:"styles"`
	Tracklist   []Track         `json:"tracklist"`
	MainRelease int             `json:"main_release"`
	Raw         json.RawMessage `json:"-"`
}

// MasterVersion is one pressing of a master release.
type MasterVersion struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Format   string `json:"format"`
	Label    string `json:"label"`
	Country  string `json:"country"`
	Released string `json:"released"`
	CatNo    string `json:"catno"`
}

// MasterVersionList is a paginated master version listing.
type MasterVersionList struct {
	Pagination Pagination      `json:"pagination"`
	Versions   []MasterVersion `json:"versions"`
	Raw        json.RawMessage `json:"-"`
}

// Label is a record label profile.
type Label struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Profile     string   `json:"profile"`
	ContactInfo string   `json:"contact_info"`
	URLs        []string `json:"urls"`
	Sublabels   []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"sublabels"`
	Raw json.RawMessage `json:"-"`
}

// User is a user profile.
type User struct {
	ID            int             `json:"id"`
	Username      string          `json:"username"`
	Name          string          `json:"name"`
	Location      string          `json:"location"`
	NumCollection int             `json:"num_collection"`
	NumWantlist   int             `json:"num_wantlist"`
	Registered    string          `json:"registered"`
	Raw           json.RawMessage `json:"-"`
}

// CollectionItem is one release instance inside a collection folder.
type CollectionItem struct {
	ID               int    `json:"id"`
	InstanceID       int    `json:"instance_id"`
	FolderID         int    `json:"folder_id"`
	Rating           int    `json:"rating"`
	DateAdded        string `json:"date_added"`
	BasicInformation struct {
		ID     int    `json:"id"`
		Title  string `json:"title"`
		Year   int    `json:"year"`
		Thumb  string `json:"thumb"`
		Labels []struct {
			Name  string `json:"name"`
			CatNo string `json:"catno"`
		} `json:"labels"`
		Artists []struct {
			Name string `json:"name"`
		} `json:"artists"`
	} `json:"basic_information"`
}

// CollectionPage is a paginated collection folder listing.
type CollectionPage struct {
	Pagination Pagination       `json:"pagination"`
	Releases   []CollectionItem `json:"releases"`
	Raw        json.RawMessage  `json:"-"`
}

// Want is one wantlist entry.
type Want struct {
	ID               int    `json:"id"`
	Rating           int    `json:"rating"`
	Notes            string `json:"notes"`
	DateAdded        string `json:"date_added"`
	BasicInformation struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
		Year  int    `json:"year"`
	} `json:"basic_information"`
}

// WantlistPage is a paginated wantlist listing.
type WantlistPage struct {
	Pagination Pagination      `json:"pagination"`
	Wants      []Want          `json:"wants"`
	Raw        json.RawMessage `json:"-"`
}

// CollectionAdd confirms a release added to a collection folder.
type CollectionAdd struct {
	InstanceID  int             `json:"instance_id"`
	ResourceURL string          `json:"resource_url"`
	Raw         json.RawMessage `json:"-"`
}

// List is a user-created list.
type List struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Public      bool            `json:"public"`
	URI         string          `json:"uri"`
	Raw         json.RawMessage `json:"-"`
}

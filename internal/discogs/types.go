package discogs

// Folder is one collection folder.
type Folder struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CollectionRelease is one release row from a collection folder,
// flattened from the API's basic_information envelope.
type CollectionRelease struct {
	ID         int
	Title      string
	Artist     string
	Year       int
	Country    string
	Label      string
	CatNo      string
	Format     string
	CoverImage string
	Thumb      string
}

// PageStats counts the paging outcome of a folder fetch.
type PageStats struct {
	Pages      int
	Rows       int
	HTTPErrors int
}

// PriceResult is the outcome of one market lookup. OK is false when
// the API had no usable value; Status carries the HTTP status of a
// failed lookup for diagnostics.
type PriceResult struct {
	Value  float64
	OK     bool
	Status int
}

// Image is one release image.
type Image struct {
	Type        string `json:"type"`
	URI         string `json:"uri"`
	ResourceURL string `json:"resource_url"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// URL returns the full-size image URL, whichever field carries it.
func (i Image) URL() string {
	if i.URI != "" {
		return i.URI
	}
	return i.ResourceURL
}

// Release is the detail record used by the cover hunt.
type Release struct {
	ID      int     `json:"id"`
	Title   string  `json:"title"`
	Artist  string  `json:"-"`
	Year    int     `json:"year"`
	PageURL string  `json:"uri"`
	Images  []Image `json:"images"`
}

// folderListResponse mirrors /users/{u}/collection/folders.
type folderListResponse struct {
	Folders []Folder `json:"folders"`
}

// collectionPage mirrors one page of folder releases.
type collectionPage struct {
	Pagination struct {
		Page  int `json:"page"`
		Pages int `json:"pages"`
	} `json:"pagination"`
	Releases []struct {
		BasicInformation struct {
			ID      int    `json:"id"`
			Title   string `json:"title"`
			Year    int    `json:"year"`
			Country string `json:"country"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Labels []struct {
				Name  string `json:"name"`
				CatNo string `json:"catno"`
			} `json:"labels"`
			Formats []struct {
				Name         string   `json:"name"`
				Descriptions []string `json:"descriptions"`
			} `json:"formats"`
			CoverImage string `json:"cover_image"`
			Thumb      string `json:"thumb"`
		} `json:"basic_information"`
	} `json:"releases"`
}

// releaseDetail mirrors /releases/{id}.
type releaseDetail struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Year    int    `json:"year"`
	URI     string `json:"uri"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Images []Image `json:"images"`
}

// priceSuggestionsResponse mirrors /marketplace/price_suggestions/{id}:
// a map of condition name to value.
type priceSuggestionsResponse map[string]struct {
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
}

// marketplaceStats mirrors /marketplace/stats/{id}.
type marketplaceStats struct {
	Median *struct {
		Currency string  `json:"currency"`
		Value    float64 `json:"value"`
	} `json:"median"`
}

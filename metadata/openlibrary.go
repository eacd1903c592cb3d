package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/soundbound/soundbound-server/util"
)

const userAgent = "SoundBound/1.0"

// OpenLibraryClient fetches work, edition and author records from the Open
// Library API and normalizes them into BookMetadata.
type OpenLibraryClient struct {
	baseURL string
	client  *http.Client
}

func NewOpenLibraryClient(baseURL string) *OpenLibraryClient {
	return &OpenLibraryClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type workDocument struct {
	Title string `json:"title"`
	// Description can be a plain string or {"type": ..., "value": ...}.
	Description json.RawMessage `json:"description"`
	Subjects    []string        `json:"subjects"`
	Covers      []int64         `json:"covers"`
	Authors     []struct {
		Author struct {
			Key string `json:"key"`
		} `json:"author"`
	} `json:"authors"`
}

type editionsDocument struct {
	Entries []struct {
		PublishDate string   `json:"publish_date"`
		ISBN13      []string `json:"isbn_13"`
		ISBN10      []string `json:"isbn_10"`
	} `json:"entries"`
}

type authorDocument struct {
	Name string `json:"name"`
}

// FetchWork returns the normalized record for a work key such as "OL45883W".
// When several editions exist, the first publish year is the earliest year
// found across them and the ISBN list comes from the most recent edition.
func (c *OpenLibraryClient) FetchWork(ctx context.Context, workKey string) (*BookMetadata, error) {
	var work workDocument
	if err := c.getJSON(ctx, fmt.Sprintf("%s/works/%s.json", c.baseURL, workKey), &work); err != nil {
		return nil, err
	}
	if work.Title == "" {
		return nil, errors.Wrapf(ErrNotAvailable, "work %s has no title", workKey)
	}

	meta := &BookMetadata{
		Title:       work.Title,
		Description: decodeDescription(work.Description),
		Subjects:    work.Subjects,
	}
	if meta.Subjects == nil {
		meta.Subjects = []string{}
	}
	if len(work.Covers) > 0 {
		meta.CoverURL = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", work.Covers[0])
	}

	for _, entry := range work.Authors {
		key := trimAuthorKey(entry.Author.Key)
		if key == "" {
			continue
		}
		meta.AuthorKeys = append(meta.AuthorKeys, key)
		var author authorDocument
		if err := c.getJSON(ctx, fmt.Sprintf("%s/authors/%s.json", c.baseURL, key), &author); err != nil {
			return nil, err
		}
		meta.AuthorNames = append(meta.AuthorNames, author.Name)
	}

	var editions editionsDocument
	if err := c.getJSON(ctx, fmt.Sprintf("%s/works/%s/editions.json", c.baseURL, workKey), &editions); err != nil {
		return nil, err
	}

	var earliest, latest int32
	for _, entry := range editions.Entries {
		year := util.ExtractYear(entry.PublishDate)
		if year == 0 {
			continue
		}
		if earliest == 0 || year < earliest {
			earliest = year
		}
		// The ISBN list follows the most recent edition.
		if year > latest {
			latest = year
			isbns := append([]string{}, entry.ISBN13...)
			isbns = append(isbns, entry.ISBN10...)
			meta.ISBNList = isbns
		}
	}
	meta.FirstPublishYear = earliest
	if meta.ISBNList == nil {
		meta.ISBNList = []string{}
	}

	return meta, nil
}

func (c *OpenLibraryClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(ErrNotAvailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Wrapf(ErrNotAvailable, "unexpected status %d for %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(ErrNotAvailable, err.Error())
	}
	return nil
}

// decodeDescription handles the two shapes Open Library uses: a bare string
// or an object carrying the text in "value".
func decodeDescription(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	var asObject struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &asObject); err == nil {
		return asObject.Value
	}
	return ""
}

func trimAuthorKey(key string) string {
	const prefix = "/authors/"
	if len(key) > len(prefix) && key[:len(prefix)] == prefix {
		return key[len(prefix):]
	}
	return key
}

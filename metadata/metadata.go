package metadata

import "context"
import "github.com/pkg/errors"

// ErrNotAvailable is returned when the upstream catalog is unreachable or has
// no record for the requested identifier. Callers map it to a gateway error
// and must not persist anything.
var ErrNotAvailable = errors.New("metadata not available")

// BookMetadata is the normalized shape of an external bibliographic record.
type BookMetadata struct {
	Title            string
	Description      string
	Subjects         []string
	AuthorNames      []string
	AuthorKeys       []string
	ISBNList         []string
	FirstPublishYear int32
	CoverURL         string
}

// TrackMetadata is the normalized shape of an external track record.
type TrackMetadata struct {
	Title      string
	Artists    []string
	Album      string
	PreviewURL string
	ArtistIDs  []string
}

// BookFetcher retrieves bibliographic metadata by work key.
type BookFetcher interface {
	FetchWork(ctx context.Context, workKey string) (*BookMetadata, error)
}

// TrackFetcher retrieves track metadata, audio features and artist genres.
type TrackFetcher interface {
	FetchTrack(ctx context.Context, trackID string) (*TrackMetadata, error)
	FetchAudioFeatures(ctx context.Context, trackID string) (string, error)
	FetchGenres(ctx context.Context, artistIDs []string) ([]string, error)
}

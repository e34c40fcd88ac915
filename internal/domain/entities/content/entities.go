// Package content defines the application's core content-related domain entities.
package content

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Section is a named bucket of content fields saved and loaded as one unit.
// Values are strings or arrays of objects; anything JSON-safe round-trips.
type Section map[string]any

// Fixed section names. No other section can be created through the API.
const (
	SectionHomeHeader    = "homeHeader"
	SectionHomeAbout     = "homeAbout"
	SectionAboutHeader   = "aboutHeader"
	SectionAboutStory    = "aboutStory"
	SectionStats         = "stats"
	SectionGamesHeader   = "gamesHeader"
	SectionMatchesData   = "matchesData"
	SectionContactHeader = "contactHeader"
	SectionContactInfo   = "contactInfo"
	SectionFooter        = "footer"
)

var sectionNames = []string{
	SectionHomeHeader,
	SectionHomeAbout,
	SectionAboutHeader,
	SectionAboutStory,
	SectionStats,
	SectionGamesHeader,
	SectionMatchesData,
	SectionContactHeader,
	SectionContactInfo,
	SectionFooter,
}

// SectionNames returns the known section names in display order.
func SectionNames() []string {
	return slices.Clone(sectionNames)
}

// IsKnownSection reports whether name belongs to the fixed section set.
func IsKnownSection(name string) bool {
	return slices.Contains(sectionNames, name)
}

// StringValue returns the display string stored under key, and false when the
// key is missing, blank, or holds a non-scalar value.
func (s Section) StringValue(key string) (string, bool) {
	raw, ok := s[key]
	if !ok || raw == nil {
		return "", false
	}

	var value string
	switch v := raw.(type) {
	case string:
		value = v
	case float64:
		value = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		value = strconv.Itoa(v)
	case int64:
		value = strconv.FormatInt(v, 10)
	case bool:
		value = strconv.FormatBool(v)
	case json.Number:
		value = v.String()
	default:
		return "", false
	}

	if strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// Clone returns a deep copy of the section via a JSON round trip.
func (s Section) Clone() (Section, error) {
	if s == nil {
		return nil, nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal section: %w", err)
	}
	var out Section
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal section: %w", err)
	}
	return out, nil
}

// SectionRecord is a persisted section with its bookkeeping columns.
type SectionRecord struct {
	Name      string    `json:"name"`
	Data      Section   `json:"data"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MediaKind is the kind of a media reference or asset.
type MediaKind string

const (
	KindImage      MediaKind = "image"
	KindVideo      MediaKind = "video"
	KindBackground MediaKind = "background"
)

// ParseMediaKind validates a kind string.
func ParseMediaKind(s string) (MediaKind, error) {
	switch MediaKind(s) {
	case KindImage, KindVideo, KindBackground:
		return MediaKind(s), nil
	}
	return "", fmt.Errorf("unknown media kind %q", s)
}

// MediaCategory is the heuristic category assigned to a media path.
type MediaCategory string

const (
	CategoryRemote     MediaCategory = "remote"
	CategoryBackground MediaCategory = "background"
	CategoryPeople     MediaCategory = "people"
	CategoryLogo       MediaCategory = "logo"
	CategoryGames      MediaCategory = "games"
	CategoryOther      MediaCategory = "other"
)

// ParseMediaCategory validates a category string.
func ParseMediaCategory(s string) (MediaCategory, error) {
	switch c := MediaCategory(s); c {
	case CategoryRemote, CategoryBackground, CategoryPeople, CategoryLogo, CategoryGames, CategoryOther:
		return c, nil
	}
	return "", fmt.Errorf("unknown media category %q", s)
}

// MediaReference is a media path discovered by scanning site documents.
type MediaReference struct {
	Path     string        `json:"path"`
	Kind     MediaKind     `json:"kind"`
	Category MediaCategory `json:"category"`
	Sources  []string      `json:"sources"`
}

// MediaAsset is an uploaded file kept inline as a data URI.
type MediaAsset struct {
	ID         string        `json:"id"`
	Kind       MediaKind     `json:"kind"`
	Title      string        `json:"title"`
	Category   MediaCategory `json:"category"`
	Data       string        `json:"data"`
	Thumbnail  string        `json:"thumbnail,omitempty"`
	UploadDate time.Time     `json:"uploadDate"`
}

// ReplacementRecord maps an original media path to inline replacement data.
type ReplacementRecord struct {
	OriginalPath    string    `json:"originalPath"`
	ReplacementData string    `json:"replacementData"`
	Timestamp       time.Time `json:"timestamp"`
}

package musicbrainz

import "strings"

// searchResponse represents the top-level recording search payload.
type searchResponse struct {
	Recordings []Recording `json:"recordings"`
}

// Recording represents one recording candidate returned by a search.
type Recording struct {
	ID               string         `json:"id"`
	Score            int            `json:"score"`
	Title            string         `json:"title"`
	ArtistCredit     []ArtistCredit `json:"artist-credit"`
	Releases         []Release      `json:"releases"`
	FirstReleaseDate string         `json:"first-release-date"`
}

// ArtistCredit is one entry of a recording's artist credit. Multi-artist
// recordings chain entries together with join phrases ("feat. ", " & ").
type ArtistCredit struct {
	Name       string `json:"name"`
	JoinPhrase string `json:"joinphrase"`
}

// Release is a release (album, single, compilation) the recording
// appears on.
type Release struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ArtistName renders the full artist credit as a display string,
// including join phrases between entries.
func (r Recording) ArtistName() string {
	var b strings.Builder
	for _, credit := range r.ArtistCredit {
		b.WriteString(credit.Name)
		b.WriteString(credit.JoinPhrase)
	}
	return strings.TrimSpace(b.String())
}

// ReleaseTitle returns the title of the first release the recording
// appears on, or "" when the recording has no releases.
func (r Recording) ReleaseTitle() string {
	if len(r.Releases) == 0 {
		return ""
	}
	return strings.TrimSpace(r.Releases[0].Title)
}

// ReleaseYear extracts the four digit year from the first release date,
// which MusicBrainz reports as "2006", "2006-01" or "2006-01-02".
func (r Recording) ReleaseYear() string {
	date := strings.TrimSpace(r.FirstReleaseDate)
	if len(date) < 4 {
		return date
	}
	year := date[:4]
	for _, c := range year {
		if c < '0' || c > '9' {
			return date
		}
	}
	return year
}

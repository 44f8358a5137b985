package musicbrainz

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tunetidy/internal/model"
)

// fakeServer returns a Client pointed at an httptest server that serves
// the given recordings for every search.
func fakeServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient("tunetidy", "test", "https://example.com/contact", 0)
	client.baseURL = srv.URL
	return client
}

func recordingsHandler(t *testing.T, recs []Recording) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got == "" {
			t.Error("request is missing a User-Agent header")
		}
		if got := r.URL.Query().Get("fmt"); got != "json" {
			t.Errorf("fmt=%q, want json", got)
		}
		json.NewEncoder(w).Encode(searchResponse{Recordings: recs})
	}
}

func TestSearchRecordings(t *testing.T) {
	client := fakeServer(t, recordingsHandler(t, []Recording{
		{ID: "abc", Score: 100, Title: "Time"},
	}))

	recs, err := client.SearchRecordings(context.Background(), "Time", "Pink Floyd")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Title != "Time" {
		t.Fatalf("unexpected result %+v", recs)
	}
}

func TestSearchRecordings_ServerError(t *testing.T) {
	client := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusServiceUnavailable)
	})

	if _, err := client.SearchRecordings(context.Background(), "Time", ""); err == nil {
		t.Error("expected an error for a 503 response")
	}
}

func TestRecordingAccessors(t *testing.T) {
	rec := Recording{
		Title: "Time",
		ArtistCredit: []ArtistCredit{
			{Name: "Pink Floyd", JoinPhrase: " feat. "},
			{Name: "Someone"},
		},
		Releases:         []Release{{Title: "The Dark Side of the Moon"}},
		FirstReleaseDate: "1973-03-01",
	}

	if got := rec.ArtistName(); got != "Pink Floyd feat. Someone" {
		t.Errorf("ArtistName() = %q", got)
	}
	if got := rec.ReleaseTitle(); got != "The Dark Side of the Moon" {
		t.Errorf("ReleaseTitle() = %q", got)
	}
	if got := rec.ReleaseYear(); got != "1973" {
		t.Errorf("ReleaseYear() = %q", got)
	}

	if got := (Recording{}).ReleaseYear(); got != "" {
		t.Errorf("empty date should stay empty, got %q", got)
	}
	if got := (Recording{FirstReleaseDate: "????"}).ReleaseYear(); got != "????" {
		t.Errorf("non-numeric date should pass through, got %q", got)
	}
}

func TestNeedsEnrichment(t *testing.T) {
	full := model.TrackRecord{Artist: "Pink Floyd", Album: "The Wall"}
	missing := model.TrackRecord{Artist: model.UnknownArtist, Album: "The Wall"}

	if needsEnrichment(full, true) {
		t.Error("complete record should not be eligible in missing-only mode")
	}
	if !needsEnrichment(missing, true) {
		t.Error("fallback artist should be eligible")
	}
	if !needsEnrichment(full, false) {
		t.Error("every record is eligible when missing-only is off")
	}
}

func TestEnrich_UpdatesMissingRecords(t *testing.T) {
	client := fakeServer(t, recordingsHandler(t, []Recording{
		{Score: 70, Title: "Wrong"},
		{
			Score:            95,
			Title:            "Time",
			ArtistCredit:     []ArtistCredit{{Name: "Pink Floyd"}},
			Releases:         []Release{{Title: "The Dark Side of the Moon"}},
			FirstReleaseDate: "1973-03-01",
		},
	}))

	records := []model.TrackRecord{
		{
			FilePath:       "/music/unknown/04 Time.mp3",
			RelativePath:   "unknown/04 Time.mp3",
			Artist:         model.UnknownArtist,
			Album:          model.UnknownAlbum,
			Title:          "Time",
			MetadataSource: model.SourceNone,
		},
		{
			FilePath:       "/music/tagged/song.mp3",
			RelativePath:   "tagged/song.mp3",
			Artist:         "Tagged Artist",
			Album:          "Tagged Album",
			Title:          "Song",
			MetadataSource: model.SourceTags,
		},
	}

	enricher := NewEnricher(client, Options{MissingOnly: true, MinScore: 85})
	res, out, err := enricher.Enrich(context.Background(), records)
	if err != nil {
		t.Fatal(err)
	}

	if res.Checked != 1 || res.Updated != 1 || res.Unmatched != 0 {
		t.Errorf("unexpected result %+v", res)
	}

	got := out[0]
	if got.Artist != "Pink Floyd" || got.Album != "The Dark Side of the Moon" || got.Year != "1973" {
		t.Errorf("record not enriched: %+v", got)
	}
	if got.MetadataSource != model.SourceMusicBrainz {
		t.Errorf("metadata source = %q", got.MetadataSource)
	}

	// The input slice stays untouched.
	if records[0].Artist != model.UnknownArtist {
		t.Error("input records must not be modified")
	}
	// The already tagged record was not looked up.
	if out[1] != records[1] {
		t.Errorf("tagged record changed: %+v", out[1])
	}
}

func TestEnrich_LowScoreStaysUnmatched(t *testing.T) {
	client := fakeServer(t, recordingsHandler(t, []Recording{
		{Score: 40, Title: "Time", ArtistCredit: []ArtistCredit{{Name: "Nobody"}}},
	}))

	records := []model.TrackRecord{
		{FilePath: "/m/a.mp3", RelativePath: "a.mp3", Artist: model.UnknownArtist, Album: model.UnknownAlbum, Title: "Time"},
	}

	enricher := NewEnricher(client, Options{MissingOnly: true, MinScore: 85})
	res, out, err := enricher.Enrich(context.Background(), records)
	if err != nil {
		t.Fatal(err)
	}
	if res.Unmatched != 1 || res.Updated != 0 {
		t.Errorf("unexpected result %+v", res)
	}
	if out[0].Artist != model.UnknownArtist {
		t.Errorf("low score candidate must not be applied: %+v", out[0])
	}
}

func TestEnrich_TitleFallsBackToStem(t *testing.T) {
	var gotQuery string
	client := fakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		json.NewEncoder(w).Encode(searchResponse{})
	})

	records := []model.TrackRecord{
		{FilePath: "/m/04 Time.mp3", RelativePath: "04 Time.mp3", Artist: model.UnknownArtist, Album: model.UnknownAlbum},
	}

	enricher := NewEnricher(client, Options{MissingOnly: true, MinScore: 85})
	res, _, err := enricher.Enrich(context.Background(), records)
	if err != nil {
		t.Fatal(err)
	}
	if res.Unmatched != 1 {
		t.Errorf("no candidates should count as unmatched, got %+v", res)
	}
	if gotQuery != `recording:"04 Time"` {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestEnrich_WritesTags(t *testing.T) {
	client := fakeServer(t, recordingsHandler(t, []Recording{
		{Score: 95, Title: "Time", ArtistCredit: []ArtistCredit{{Name: "Pink Floyd"}}},
	}))

	var written []string
	enricher := NewEnricher(client, Options{
		MissingOnly: true,
		MinScore:    85,
		WriteTags:   true,
		TagWriter: func(rec model.TrackRecord) error {
			written = append(written, rec.RelativePath)
			return nil
		},
	})

	records := []model.TrackRecord{
		{FilePath: "/m/a.mp3", RelativePath: "a.mp3", Artist: model.UnknownArtist, Album: model.UnknownAlbum, Title: "Time"},
	}
	res, _, err := enricher.Enrich(context.Background(), records)
	if err != nil {
		t.Fatal(err)
	}
	if res.TagsWritten != 1 || len(written) != 1 || written[0] != "a.mp3" {
		t.Errorf("tag writer not invoked as expected: %+v %v", res, written)
	}
}

func TestEnrich_ProgressCoversCandidatesOnly(t *testing.T) {
	client := fakeServer(t, recordingsHandler(t, nil))

	var last, total int
	enricher := NewEnricher(client, Options{
		MissingOnly: true,
		MinScore:    85,
		OnProgress:  func(done, tot int) { last, total = done, tot },
	})

	records := []model.TrackRecord{
		{FilePath: "/m/a.mp3", RelativePath: "a.mp3", Artist: model.UnknownArtist, Album: model.UnknownAlbum, Title: "A"},
		{FilePath: "/m/b.mp3", RelativePath: "b.mp3", Artist: "Known", Album: "Known", Title: "B"},
	}
	if _, _, err := enricher.Enrich(context.Background(), records); err != nil {
		t.Fatal(err)
	}
	if total != 1 || last != 1 {
		t.Errorf("progress %d/%d, want 1/1", last, total)
	}
}

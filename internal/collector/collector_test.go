package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"plexextras/internal/config"
	"plexextras/internal/prompt"
	"plexextras/internal/services/plex"
)

type recordedPut struct {
	id   string
	tags []string
}

// newPlexStub serves a one-section movie library with four items:
//
//	10 "Alien"   - local extras, not in the collection (should be added)
//	11 "Brazil"  - local extras, already in the collection
//	12 "Casino"  - no extras, not in the collection
//	13 "Dune"    - no extras, in the collection (should be removed)
func newPlexStub(t *testing.T, puts *[]recordedPut) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/library/sections", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"MediaContainer":{"size":2,"Directory":[
			{"key":"1","type":"movie","title":"Movies"},
			{"key":"3","type":"artist","title":"Music"}]}}`))
	})
	mux.HandleFunc("/library/sections/1/all", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"MediaContainer":{"size":4,"Metadata":[
				{"ratingKey":"10","type":"movie","title":"Alien"},
				{"ratingKey":"11","type":"movie","title":"Brazil"},
				{"ratingKey":"12","type":"movie","title":"Casino"},
				{"ratingKey":"13","type":"movie","title":"Dune"}]}}`))
		case http.MethodPut:
			query := r.URL.Query()
			put := recordedPut{id: query.Get("id")}
			for i := 0; ; i++ {
				tag := query.Get(fmt.Sprintf("collection[%d].tag.tag", i))
				if tag == "" {
					break
				}
				put.tags = append(put.tags, tag)
			}
			*puts = append(*puts, put)
			w.WriteHeader(http.StatusOK)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	})
	mux.HandleFunc("/library/metadata/", func(w http.ResponseWriter, r *http.Request) {
		if got := strings.TrimPrefix(r.URL.Path, "/library/metadata/"); got != "10,11,12,13" {
			t.Fatalf("unexpected metadata ids: %s", got)
		}
		if r.URL.Query().Get("includeExtras") != "1" {
			t.Fatal("includeExtras missing")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"MediaContainer":{"size":4,"Metadata":[
			{"ratingKey":"10","type":"movie","title":"Alien",
			 "Extras":{"size":1,"Metadata":[{"guid":"file:///media/Alien-deleted.mkv"}]}},
			{"ratingKey":"11","type":"movie","title":"Brazil",
			 "Extras":{"size":1,"Metadata":[{"guid":"file:///media/Brazil-featurette.mkv"}]},
			 "Collection":[{"tag":"Movies with Extras"}]},
			{"ratingKey":"12","type":"movie","title":"Casino",
			 "Extras":{"size":1,"Metadata":[{"guid":"iva://trailer"}]}},
			{"ratingKey":"13","type":"movie","title":"Dune",
			 "Collection":[{"tag":"Movies with Extras"},{"tag":"Sci-Fi"}]}]}}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testConfig(host string) *config.Config {
	cfg := config.Default()
	cfg.Plex.Host = host
	cfg.Plex.Token = "token"
	cfg.Plex.Section = "1"
	return &cfg
}

func TestRunReconcilesCollection(t *testing.T) {
	var puts []recordedPut
	server := newPlexStub(t, &puts)

	cfg := testConfig(server.URL)
	client := plex.NewClient(server.URL, cfg.Plex.Token, "test-client", nil)
	c := New(client, nil, cfg, nil)

	summary, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.ItemCount != 4 || summary.ExtrasCount != 2 {
		t.Fatalf("counts = %d items, %d with extras", summary.ItemCount, summary.ExtrasCount)
	}
	if !reflect.DeepEqual(summary.Added, []string{"Alien"}) {
		t.Fatalf("added = %v", summary.Added)
	}
	if !reflect.DeepEqual(summary.Removed, []string{"Dune"}) {
		t.Fatalf("removed = %v", summary.Removed)
	}
	if !reflect.DeepEqual(summary.AlreadyIn, []string{"Brazil"}) {
		t.Fatalf("already in = %v", summary.AlreadyIn)
	}
	if summary.Failed != 0 {
		t.Fatalf("failed = %d", summary.Failed)
	}

	if len(puts) != 2 {
		t.Fatalf("expected 2 tag updates, got %d: %+v", len(puts), puts)
	}
	byID := map[string][]string{}
	for _, put := range puts {
		byID[put.id] = put.tags
	}
	if !reflect.DeepEqual(byID["10"], []string{"Movies with Extras"}) {
		t.Fatalf("add rewrote tags = %v", byID["10"])
	}
	// Removal keeps the item's other tags.
	if !reflect.DeepEqual(byID["13"], []string{"Sci-Fi"}) {
		t.Fatalf("remove rewrote tags = %v", byID["13"])
	}
}

func TestRunNoDeleteKeepsMembers(t *testing.T) {
	var puts []recordedPut
	server := newPlexStub(t, &puts)

	cfg := testConfig(server.URL)
	cfg.Collection.NoDelete = true
	client := plex.NewClient(server.URL, cfg.Plex.Token, "test-client", nil)
	c := New(client, nil, cfg, nil)

	summary, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(summary.Removed) != 0 {
		t.Fatalf("removed = %v, want none", summary.Removed)
	}
	if !reflect.DeepEqual(summary.Kept, []string{"Dune"}) {
		t.Fatalf("kept = %v", summary.Kept)
	}
	if len(puts) != 1 || puts[0].id != "10" {
		t.Fatalf("expected only the addition PUT, got %+v", puts)
	}
}

func TestRunPromptsForUnknownSection(t *testing.T) {
	var puts []recordedPut
	server := newPlexStub(t, &puts)

	cfg := testConfig(server.URL)
	cfg.Plex.Section = "9"

	var out bytes.Buffer
	prompter := prompt.NewWithStreams(strings.NewReader("1\n"), &out, true)
	client := plex.NewClient(server.URL, cfg.Plex.Token, "test-client", nil)
	c := New(client, prompter, cfg, nil)

	summary, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Section.Key != "1" {
		t.Fatalf("section = %+v", summary.Section)
	}
	if !strings.Contains(out.String(), "[1] Movies") {
		t.Fatalf("chooser should list only video libraries: %q", out.String())
	}
	if strings.Contains(out.String(), "Music") {
		t.Fatalf("music section should be excluded: %q", out.String())
	}
}

func TestRunFailsWithoutTerminalForUnknownSection(t *testing.T) {
	var puts []recordedPut
	server := newPlexStub(t, &puts)

	cfg := testConfig(server.URL)
	cfg.Plex.Section = "9"
	client := plex.NewClient(server.URL, cfg.Plex.Token, "test-client", nil)
	c := New(client, prompt.NewWithStreams(strings.NewReader(""), &bytes.Buffer{}, false), cfg, nil)

	if _, err := c.Run(context.Background()); err == nil {
		t.Fatal("expected configuration error when section cannot be resolved")
	}
}

func TestRunSurfacesConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	cfg := testConfig(server.URL)
	client := plex.NewClient(server.URL, "bad-token", "test-client", nil)
	c := New(client, nil, cfg, nil)

	if _, err := c.Run(context.Background()); err == nil {
		t.Fatal("expected error for rejected token")
	}
}

func TestRunBatchesMetadataRequests(t *testing.T) {
	const itemCount = 51

	ids := make([]string, itemCount)
	items := make([]plex.Metadata, itemCount)
	for i := range items {
		ids[i] = strconv.Itoa(100 + i)
		items[i] = plex.Metadata{RatingKey: ids[i], Type: "movie", Title: "Movie " + ids[i]}
	}

	type envelope struct {
		MediaContainer plex.MediaContainer `json:"MediaContainer"`
	}

	var batches [][]string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/library/sections", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"MediaContainer":{"size":1,"Directory":[{"key":"1","type":"movie","title":"Movies"}]}}`))
	})
	mux.HandleFunc("/library/sections/1/all", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(envelope{MediaContainer: plex.MediaContainer{
			Size:     itemCount,
			Metadata: items,
		}})
	})
	mux.HandleFunc("/library/metadata/", func(w http.ResponseWriter, r *http.Request) {
		batch := strings.Split(strings.TrimPrefix(r.URL.Path, "/library/metadata/"), ",")
		batches = append(batches, batch)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"MediaContainer":{"size":0}}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	cfg := testConfig(server.URL)
	client := plex.NewClient(server.URL, cfg.Plex.Token, "test-client", nil)
	c := New(client, nil, cfg, nil)

	if _, err := c.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(batches) != 2 {
		t.Fatalf("expected 2 metadata requests, got %d", len(batches))
	}
	if len(batches[0]) != 50 || len(batches[1]) != 1 {
		t.Fatalf("batch sizes = %d and %d, want 50 and 1", len(batches[0]), len(batches[1]))
	}
	requested := append(append([]string{}, batches[0]...), batches[1]...)
	if !reflect.DeepEqual(requested, ids) {
		t.Fatalf("batches did not cover all ids in order: %v", requested)
	}
}

// Guard against url.Values round-trip surprises in the stub.
func TestRecordedPutQueryParsing(t *testing.T) {
	query := url.Values{}
	query.Set("collection[0].tag.tag", "A")
	parsed, err := url.ParseQuery(query.Encode())
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	if parsed.Get("collection[0].tag.tag") != "A" {
		t.Fatalf("bracketed key did not round-trip: %v", parsed)
	}
}

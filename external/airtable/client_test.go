package airtable

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/mystixxx/altersport/internal/domain/league"
	"github.com/mystixxx/altersport/internal/platform/resilience"
	"github.com/mystixxx/altersport/internal/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "key-test",
		BaseID:  "appTest",
	})
	return client, server
}

func TestLeagueRepositoryListPaginatesAndMapsFields(t *testing.T) {
	var pages atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key-test" {
			t.Errorf("unexpected auth header %q", got)
		}
		if r.URL.Path != "/appTest/Kategorija" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("pageSize") != "100" {
			t.Errorf("missing pageSize, query=%q", r.URL.RawQuery)
		}

		switch pages.Add(1) {
		case 1:
			io.WriteString(w, `{"records":[{"id":"rec1","fields":{
				"Name":"Zagrebačka liga",
				"Sport":["recSport1"],
				"Status":"In progress",
				"LeagueType":"Liga",
				"Momčadi":["recTeam1","recTeam2"],
				"Assignee":{"id":"usr1","email":"ivana@altersport.hr","name":"Ivana"},
				"StartDate":"2025-09-01",
				"EndDate":"2025-12-15"
			}}],"offset":"page2"}`)
		default:
			if r.URL.Query().Get("offset") != "page2" {
				t.Errorf("second page should carry offset, query=%q", r.URL.RawQuery)
			}
			io.WriteString(w, `{"records":[{"id":"rec2","fields":{"Name":"Splitska liga","Status":"Todo"}}]}`)
		}
	})

	leagues, err := NewLeagueRepository(client).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(leagues) != 2 {
		t.Fatalf("expected 2 leagues across pages, got %d", len(leagues))
	}

	first := leagues[0]
	if first.ID != "rec1" || first.Name != "Zagrebačka liga" {
		t.Fatalf("unexpected first league: %+v", first)
	}
	if first.StartDate != "01.09.2025." || first.EndDate != "15.12.2025." {
		t.Fatalf("dates should be rendered for display: %q / %q", first.StartDate, first.EndDate)
	}
	if first.Assignee.Email != "ivana@altersport.hr" {
		t.Fatalf("collaborator not mapped: %+v", first.Assignee)
	}
	if len(first.Teams) != 2 {
		t.Fatalf("linked teams not mapped: %+v", first.Teams)
	}
}

func TestGetByIDMissingRecordReportsAbsence(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":{"type":"NOT_FOUND"}}`)
	})

	_, found, err := NewTeamRepository(client).GetByID(context.Background(), "recMissing")
	if err != nil {
		t.Fatalf("a missing record is not an error: %v", err)
	}
	if found {
		t.Fatal("expected found=false for 404")
	}
}

func TestMatchScoresDistinguishAbsentFromZero(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"id":"recM1","fields":{
			"Match Time":"19:00",
			"Match Date":"2025-09-07",
			"Home Team":["recT1"],
			"Away Team":["recT2"],
			"Home Team Score":0
		}}`)
	})

	m, found, err := NewMatchRepository(client).GetByID(context.Background(), "recM1")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if m.HomeScore == nil || *m.HomeScore != 0 {
		t.Fatalf("recorded zero score must survive mapping: %v", m.HomeScore)
	}
	if m.AwayScore != nil {
		t.Fatalf("absent score column must map to nil, got %d", *m.AwayScore)
	}
	if m.MatchDate != "07.09.2025." {
		t.Fatalf("match date not rendered: %q", m.MatchDate)
	}
	if m.IsPast() {
		t.Fatal("match with one missing score is not finished")
	}
}

func TestCreateLeagueSendsISODatesAndReadsBackDisplayDates(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("create must POST, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Fields map[string]any `json:"fields"`
		}
		if err := sonic.Unmarshal(body, &payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.Fields["StartDate"] != "2025-11-01" {
			t.Errorf("writes must keep ISO dates, got %v", payload.Fields["StartDate"])
		}
		io.WriteString(w, `{"id":"recNew","fields":{"Name":"Riječka liga","Status":"Todo","StartDate":"2025-11-01"}}`)
	})

	created, err := NewLeagueRepository(client).Create(context.Background(), league.Draft{
		Name:      "Riječka liga",
		Sport:     []string{"recSport1"},
		Status:    "Todo",
		StartDate: "2025-11-01",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "recNew" {
		t.Fatalf("unexpected id %q", created.ID)
	}
	if created.StartDate != "01.11.2025." {
		t.Fatalf("read boundary must render display dates, got %q", created.StartDate)
	}
}

func TestNonRetryableStatusFailsWithoutRetry(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"error":{"type":"INVALID_REQUEST"}}`)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		APIKey:     "key-test",
		BaseID:     "appTest",
		MaxRetries: 3,
	})

	if _, err := NewSportRepository(client).List(context.Background()); err == nil {
		t.Fatal("expected error for 422")
	}
	if got := attempts.Load(); got != 1 {
		t.Fatalf("422 must not be retried, got %d attempts", got)
	}
}

func TestCircuitBreakerOpensAfterRepeatedTransientFailures(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "key-test",
		BaseID:  "appTest",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
		},
	})
	repo := NewSportRepository(client)

	for i := 0; i < 2; i++ {
		if _, err := repo.List(context.Background()); err == nil {
			t.Fatalf("call %d should fail", i)
		}
	}
	before := attempts.Load()

	_, err := repo.List(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("open circuit should reject with dependency error, got %v", err)
	}
	if attempts.Load() != before {
		t.Fatal("rejected call must not reach the backend")
	}
}

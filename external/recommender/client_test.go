package recommender

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/mystixxx/altersport/internal/domain/recommendation"
)

func TestFetchHomepageMapsWirePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recommend/user_abc/homepage" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		io.WriteString(w, `{
			"user_id":"user_abc",
			"favorite_sports":["recSport1"],
			"upcoming_events":[{
				"event_id":"ev1",
				"event_type":"match",
				"event_date":"2025-10-05T18:30:00",
				"sport_id":"recSport1",
				"home_team_id":"recT1",
				"home_team_logo":"https://img/home.png",
				"away_team_id":"recT2",
				"location_id":"recL1",
				"league":["recliga1"],
				"from_api":true
			}],
			"recommended_teams":["recT1"]
		}`)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL}, nil)

	payload, err := client.FetchHomepage(context.Background(), "user_abc")
	if err != nil {
		t.Fatalf("fetch homepage: %v", err)
	}
	if payload.UserID != "user_abc" {
		t.Fatalf("unexpected user id %q", payload.UserID)
	}
	if len(payload.UpcomingEvents) != 1 {
		t.Fatalf("expected 1 event, got %d", len(payload.UpcomingEvents))
	}
	event := payload.UpcomingEvents[0]
	if event.EventID != "ev1" || event.HomeTeamID != "recT1" || event.HomeTeamLogo != "https://img/home.png" {
		t.Fatalf("event not mapped: %+v", event)
	}
	if len(event.LeagueIDs) != 1 || event.LeagueIDs[0] != "recliga1" || !event.FromAPI {
		t.Fatalf("league refs and origin flag not mapped: %+v", event)
	}
	if len(payload.RecommendedTeams) != 1 || payload.RecommendedTeams[0] != "recT1" {
		t.Fatalf("recommended teams not mapped: %+v", payload.RecommendedTeams)
	}
}

func TestFetchHomepageRequiresUserID(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "http://localhost:1"}, nil)
	if _, err := client.FetchHomepage(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank user id")
	}
}

func TestUpdateUserSendsQuizAnswersAndDecodesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("update must POST, got %s", r.Method)
		}
		if r.URL.Path != "/users/update/user_abc" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		var req map[string]any
		if err := sonic.Unmarshal(body, &req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["user_name"] != "Ana" || req["group_style"] != "team" {
			t.Errorf("quiz answers not forwarded: %v", req)
		}
		if _, ok := req["sport_interests"]; !ok {
			t.Errorf("sport_interests missing from payload: %v", req)
		}
		io.WriteString(w, `{"recommended_sport":"recSport1","recommended_teams":["recT1","recT2"]}`)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL}, nil)

	result, err := client.UpdateUser(context.Background(), "user_abc", recommendation.QuizAnswers{
		UserName:       "Ana",
		Age:            "18-25",
		GroupStyle:     "team",
		Activities:     []string{"running"},
		SportInterests: []string{},
	})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if result.RecommendedSport != "recSport1" {
		t.Fatalf("unexpected sport %q", result.RecommendedSport)
	}
	if len(result.RecommendedTeams) != 2 {
		t.Fatalf("unexpected teams %+v", result.RecommendedTeams)
	}
}

func TestInitializeUserHitsInitializeEndpoint(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/users/initialize/user_abc" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL}, nil)
	if err := client.InitializeUser(context.Background(), "user_abc"); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected exactly one call, got %d", calls.Load())
	}
}

func TestFetchHomepageRetriesTransientStatus(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, `{"user_id":"user_abc"}`)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, MaxRetries: 1}, nil)

	payload, err := client.FetchHomepage(context.Background(), "user_abc")
	if err != nil {
		t.Fatalf("fetch should succeed on retry: %v", err)
	}
	if payload.UserID != "user_abc" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if attempts.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts.Load())
	}
}

func TestUpdateUserClientErrorIsNotRetried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"detail":"invalid payload"}`)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, MaxRetries: 3}, nil)

	_, err := client.UpdateUser(context.Background(), "user_abc", recommendation.QuizAnswers{
		Age: "18-25", GroupStyle: "team", Activities: []string{"running"},
	})
	if err == nil {
		t.Fatal("expected error for 400")
	}
	if attempts.Load() != 1 {
		t.Fatalf("writes go out once, got %d attempts", attempts.Load())
	}
}

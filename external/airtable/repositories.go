package airtable

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"

	"github.com/mystixxx/altersport/internal/domain/league"
	"github.com/mystixxx/altersport/internal/domain/location"
	"github.com/mystixxx/altersport/internal/domain/match"
	"github.com/mystixxx/altersport/internal/domain/sport"
	"github.com/mystixxx/altersport/internal/domain/team"
)

// listRecords walks a table page by page. Airtable hands back at most 100
// rows per response and signals continuation with a non-empty offset.
func (c *Client) listRecords(ctx context.Context, table string) ([]recordEnvelope, error) {
	out := make([]recordEnvelope, 0, 64)
	offset := ""
	for page := 0; page < maxListPages; page++ {
		values := url.Values{}
		values.Set("pageSize", listPageSize)
		if offset != "" {
			values.Set("offset", offset)
		}

		var envelope listEnvelope
		if err := c.getJSON(ctx, c.tableURL(table, "")+"?"+values.Encode(), &envelope); err != nil {
			return nil, fmt.Errorf("list %s: %w", table, err)
		}
		out = append(out, envelope.Records...)
		if envelope.Offset == "" {
			return out, nil
		}
		offset = envelope.Offset
	}
	return nil, fmt.Errorf("list %s: pagination did not terminate after %d pages", table, maxListPages)
}

func (c *Client) getRecord(ctx context.Context, table, id string) (recordEnvelope, bool, error) {
	var rec recordEnvelope
	err := c.getJSON(ctx, c.tableURL(table, id), &rec)
	if err != nil {
		if stderrors.Is(err, errRecordNotFound) {
			return recordEnvelope{}, false, nil
		}
		return recordEnvelope{}, false, fmt.Errorf("get %s record %s: %w", table, id, err)
	}
	return rec, true, nil
}

func (c *Client) createRecord(ctx context.Context, table string, fields map[string]any) (recordEnvelope, error) {
	var rec recordEnvelope
	err := c.mutateJSON(ctx, "POST", c.tableURL(table, ""), fieldsEnvelope{Fields: fields}, &rec)
	if err != nil {
		return recordEnvelope{}, fmt.Errorf("create %s record: %w", table, err)
	}
	return rec, nil
}

func (c *Client) updateRecord(ctx context.Context, table, id string, fields map[string]any) (recordEnvelope, error) {
	var rec recordEnvelope
	err := c.mutateJSON(ctx, "PATCH", c.tableURL(table, id), fieldsEnvelope{Fields: fields}, &rec)
	if err != nil {
		return recordEnvelope{}, fmt.Errorf("update %s record %s: %w", table, id, err)
	}
	return rec, nil
}

type LeagueRepository struct {
	client *Client
}

func NewLeagueRepository(client *Client) *LeagueRepository {
	return &LeagueRepository{client: client}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	records, err := r.client.listRecords(ctx, tableLeagues)
	if err != nil {
		return nil, err
	}
	out := make([]league.League, 0, len(records))
	for _, rec := range records {
		out = append(out, mapLeagueRecord(rec))
	}
	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, id string) (league.League, bool, error) {
	rec, found, err := r.client.getRecord(ctx, tableLeagues, id)
	if err != nil || !found {
		return league.League{}, false, err
	}
	return mapLeagueRecord(rec), true, nil
}

func (r *LeagueRepository) Create(ctx context.Context, draft league.Draft) (league.League, error) {
	rec, err := r.client.createRecord(ctx, tableLeagues, buildLeagueFields(draft))
	if err != nil {
		return league.League{}, err
	}
	return mapLeagueRecord(rec), nil
}

func (r *LeagueRepository) Update(ctx context.Context, id string, draft league.Draft) (league.League, error) {
	rec, err := r.client.updateRecord(ctx, tableLeagues, id, buildLeagueFields(draft))
	if err != nil {
		return league.League{}, err
	}
	return mapLeagueRecord(rec), nil
}

type SportRepository struct {
	client *Client
}

func NewSportRepository(client *Client) *SportRepository {
	return &SportRepository{client: client}
}

func (r *SportRepository) List(ctx context.Context) ([]sport.Sport, error) {
	records, err := r.client.listRecords(ctx, tableSports)
	if err != nil {
		return nil, err
	}
	out := make([]sport.Sport, 0, len(records))
	for _, rec := range records {
		out = append(out, mapSportRecord(rec))
	}
	return out, nil
}

func (r *SportRepository) GetByID(ctx context.Context, id string) (sport.Sport, bool, error) {
	rec, found, err := r.client.getRecord(ctx, tableSports, id)
	if err != nil || !found {
		return sport.Sport{}, false, err
	}
	return mapSportRecord(rec), true, nil
}

type TeamRepository struct {
	client *Client
}

func NewTeamRepository(client *Client) *TeamRepository {
	return &TeamRepository{client: client}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	records, err := r.client.listRecords(ctx, tableTeams)
	if err != nil {
		return nil, err
	}
	out := make([]team.Team, 0, len(records))
	for _, rec := range records {
		out = append(out, mapTeamRecord(rec))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (team.Team, bool, error) {
	rec, found, err := r.client.getRecord(ctx, tableTeams, id)
	if err != nil || !found {
		return team.Team{}, false, err
	}
	return mapTeamRecord(rec), true, nil
}

type MatchRepository struct {
	client *Client
}

func NewMatchRepository(client *Client) *MatchRepository {
	return &MatchRepository{client: client}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	records, err := r.client.listRecords(ctx, tableMatches)
	if err != nil {
		return nil, err
	}
	out := make([]match.Match, 0, len(records))
	for _, rec := range records {
		out = append(out, mapMatchRecord(rec))
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Match, bool, error) {
	rec, found, err := r.client.getRecord(ctx, tableMatches, id)
	if err != nil || !found {
		return match.Match{}, false, err
	}
	return mapMatchRecord(rec), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, draft match.Draft) (match.Match, error) {
	rec, err := r.client.createRecord(ctx, tableMatches, buildMatchFields(draft))
	if err != nil {
		return match.Match{}, err
	}
	return mapMatchRecord(rec), nil
}

type LocationRepository struct {
	client *Client
}

func NewLocationRepository(client *Client) *LocationRepository {
	return &LocationRepository{client: client}
}

func (r *LocationRepository) List(ctx context.Context) ([]location.Location, error) {
	records, err := r.client.listRecords(ctx, tableLocations)
	if err != nil {
		return nil, err
	}
	out := make([]location.Location, 0, len(records))
	for _, rec := range records {
		out = append(out, mapLocationRecord(rec))
	}
	return out, nil
}

func (r *LocationRepository) GetByID(ctx context.Context, id string) (location.Location, bool, error) {
	rec, found, err := r.client.getRecord(ctx, tableLocations, id)
	if err != nil || !found {
		return location.Location{}, false, err
	}
	return mapLocationRecord(rec), true, nil
}

func (r *LocationRepository) Create(ctx context.Context, draft location.Draft) (location.Location, error) {
	rec, err := r.client.createRecord(ctx, tableLocations, buildLocationFields(draft))
	if err != nil {
		return location.Location{}, err
	}
	return mapLocationRecord(rec), nil
}

func (r *LocationRepository) Update(ctx context.Context, id string, draft location.Draft) (location.Location, error) {
	rec, err := r.client.updateRecord(ctx, tableLocations, id, buildLocationFields(draft))
	if err != nil {
		return location.Location{}, err
	}
	return mapLocationRecord(rec), nil
}

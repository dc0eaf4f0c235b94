package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"hauldeck/cmd/hauldeck/ui"
	"hauldeck/internal/geocode"
	"hauldeck/internal/trip"
)

// tripAPI is the slice of the API client the dashboard uses.
type tripAPI interface {
	Create(ctx context.Context, d trip.Draft) (*trip.Trip, error)
	Get(ctx context.Context, id string) (*trip.Trip, error)
	List(ctx context.Context) ([]trip.Trip, error)
}

// geocoder is the autocomplete lookup.
type geocoder interface {
	Search(ctx context.Context, query string) []geocode.Candidate
}

// tripsLoadedMsg delivers the trip listing. The token ties the response to
// the request that asked for it; a reload in between makes it stale.
type tripsLoadedMsg struct {
	token uuid.UUID
	trips []trip.Trip
	err   error
}

// tripLoadedMsg delivers one trip fetch. restore marks the startup
// last-viewed load, which fails silently.
type tripLoadedMsg struct {
	token   uuid.UUID
	id      string
	trip    *trip.Trip
	err     error
	restore bool
}

// tripCreatedMsg delivers the outcome of a form submission. Like the load
// messages it carries the token of the request that started it; leaving
// the form supersedes it.
type tripCreatedMsg struct {
	token uuid.UUID
	trip  *trip.Trip
	err   error
}

func loadTripsCmd(client tripAPI, token uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		trips, err := client.List(context.Background())
		return tripsLoadedMsg{token: token, trips: trips, err: err}
	}
}

func loadTripCmd(client tripAPI, token uuid.UUID, id string, restore bool) tea.Cmd {
	return func() tea.Msg {
		t, err := client.Get(context.Background(), id)
		return tripLoadedMsg{token: token, id: id, trip: t, err: err, restore: restore}
	}
}

func createTripCmd(client tripAPI, token uuid.UUID, draft trip.Draft) tea.Cmd {
	return func() tea.Msg {
		t, err := client.Create(context.Background(), draft)
		return tripCreatedMsg{token: token, trip: t, err: err}
	}
}

// searchLocationsCmd runs one autocomplete lookup. The geocoder degrades
// to an empty result set on failure, so this never carries an error.
func searchLocationsCmd(g geocoder, field, seq int, query string) tea.Cmd {
	return func() tea.Msg {
		return ui.SuggestionsMsg{
			Field:      field,
			Seq:        seq,
			Candidates: g.Search(context.Background(), query),
		}
	}
}

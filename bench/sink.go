package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/bigquery"
)

// Sink receives the finished report.
type Sink interface {
	Write(ctx context.Context, r *Report) error
}

// JSONFileSink writes the report as indented JSON.
type JSONFileSink struct {
	Path string
}

func (s JSONFileSink) Write(_ context.Context, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	return nil
}

// gameRow is one row of the results table.
type gameRow struct {
	RunID          string    `bigquery:"run_id"`
	GameID         string    `bigquery:"game_id"`
	Model          string    `bigquery:"model"`
	StartedAt      time.Time `bigquery:"started_at"`
	Secret         string    `bigquery:"secret"`
	Won            bool      `bigquery:"won"`
	Tries          int       `bigquery:"tries"`
	Guesses        []string  `bigquery:"guesses"`
	OracleCalls    int       `bigquery:"oracle_calls"`
	InvalidReplies int       `bigquery:"invalid_replies"`
	Failures       int       `bigquery:"failures"`
	Fallbacks      int       `bigquery:"fallbacks"`
	Completion     float64   `bigquery:"completion"`
	LatencySeconds float64   `bigquery:"latency_seconds"`
	Error          string    `bigquery:"error"`
}

// inserter is the part of *bigquery.Inserter that BigQuerySink needs.
type inserter interface {
	Put(ctx context.Context, src interface{}) error
}

// BigQuerySink appends one row per game to a BigQuery table.
type BigQuerySink struct {
	inserter inserter
	client   *bigquery.Client
}

func NewBigQuerySink(ctx context.Context, project, dataset, table string) (*BigQuerySink, error) {
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	return &BigQuerySink{
		inserter: client.Dataset(dataset).Table(table).Inserter(),
		client:   client,
	}, nil
}

func (s *BigQuerySink) Write(ctx context.Context, r *Report) error {
	rows := make([]*gameRow, len(r.Games))
	for i, g := range r.Games {
		rows[i] = &gameRow{
			RunID:          r.RunID,
			GameID:         g.ID,
			Model:          r.Model,
			StartedAt:      r.StartedAt,
			Secret:         g.Secret,
			Won:            g.Won,
			Tries:          g.Tries,
			Guesses:        g.Guesses,
			OracleCalls:    g.OracleCalls,
			InvalidReplies: g.InvalidReplies,
			Failures:       g.Failures,
			Fallbacks:      g.Fallbacks,
			Completion:     g.Completion,
			LatencySeconds: g.LatencySeconds,
			Error:          g.Error,
		}
	}
	if err := s.inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("inserter.Put: %w", err)
	}
	return nil
}

func (s *BigQuerySink) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

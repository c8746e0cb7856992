package internal

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// rowIterator is the part of *bigquery.RowIterator that readWords needs.
type rowIterator interface {
	Next(dst interface{}) error
}

// LoadFromBigQuery runs query in project and returns the first column of every row, in row order.
//
// The query is expected to order rows by rank, e.g.
//
//	SELECT word FROM `project.wordle.words` ORDER BY score DESC
func LoadFromBigQuery(ctx context.Context, project, query string) ([]string, error) {
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	q := client.Query(query)
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}
	return readWords(it)
}

func readWords(it rowIterator) ([]string, error) {
	var words []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}
		if len(row) == 0 {
			return nil, fmt.Errorf("row %d is empty", len(words))
		}

		word, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		words = append(words, word)
	}
	return words, nil
}

package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// pageLimit caps the number of records requested per pagination round-trip.
const pageLimit = 500

// Client issues GraphQL reads and writes against the board API.
type Client struct {
	http *resty.Client
}

// New builds a Client for the given API endpoint and token.
func New(apiURL, token string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(apiURL).
		SetHeader("Authorization", token).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &Client{http: c}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// gql posts one GraphQL operation and decodes the data envelope into out.
func (c *Client) gql(ctx context.Context, op, query string, vars map[string]any, out any) error {
	if vars == nil {
		vars = map[string]any{}
	}
	var envelope gqlResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(gqlRequest{Query: query, Variables: vars}).
		SetResult(&envelope).
		Post("")
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return &AuthError{Detail: resp.String()}
	}
	if resp.IsError() {
		return &TransportError{Op: op, Err: fmt.Errorf("status %d: %s", resp.StatusCode(), resp.String())}
	}
	if len(envelope.Errors) > 0 {
		return &TransportError{Op: op, Err: fmt.Errorf("graphql errors: %s", envelope.Errors)}
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("decode data: %w", err)}
		}
	}
	return nil
}

const boardMetaQuery = `
query ($ids: [ID!]) {
  boards(ids: $ids) {
    name
    columns { id title type settings_str }
  }
}`

// FetchBoard returns the board's name and full column metadata.
func (c *Client) FetchBoard(ctx context.Context, boardID string) (Board, error) {
	var data struct {
		Boards []Board `json:"boards"`
	}
	if err := c.gql(ctx, "fetch board", boardMetaQuery, map[string]any{"ids": []string{boardID}}, &data); err != nil {
		return Board{}, err
	}
	if len(data.Boards) == 0 {
		return Board{}, &NotFoundError{BoardID: boardID}
	}
	return data.Boards[0], nil
}

const recordsPageQuery = `
query ($board_id: [ID!], $cursor: String) {
  boards(ids: $board_id) {
    items_page(limit: %d, cursor: $cursor) {
      items {
        id
        name
        column_values { id text value type }
      }
      cursor
    }
  }
}`

// FetchAllRecords pages through every record on the board, following the
// cursor until the server returns none.
func (c *Client) FetchAllRecords(ctx context.Context, boardID string) ([]Record, error) {
	query := fmt.Sprintf(recordsPageQuery, pageLimit)

	var records []Record
	var cursor *string
	for {
		vars := map[string]any{"board_id": []string{boardID}}
		if cursor != nil {
			vars["cursor"] = *cursor
		}
		var data struct {
			Boards []struct {
				ItemsPage struct {
					Items  []Record `json:"items"`
					Cursor string   `json:"cursor"`
				} `json:"items_page"`
			} `json:"boards"`
		}
		if err := c.gql(ctx, "fetch records", query, vars, &data); err != nil {
			return nil, err
		}
		if len(data.Boards) == 0 {
			return nil, &NotFoundError{BoardID: boardID}
		}
		page := data.Boards[0].ItemsPage
		records = append(records, page.Items...)
		if page.Cursor == "" {
			break
		}
		cursor = &page.Cursor
	}
	return records, nil
}

const changeValuesMutation = `
mutation ($board_id: ID!, $item_id: ID!, $vals: JSON!) {
  change_multiple_column_values(board_id: $board_id, item_id: $item_id, column_values: $vals) { id }
}`

// WriteColumnValue encodes value per its column kind and issues one mutation.
func (c *Client) WriteColumnValue(ctx context.Context, boardID, recordID, columnID string, value Value) error {
	encoded, err := value.Encode()
	if err != nil {
		return fmt.Errorf("encode %s value: %w", value.Kind(), err)
	}
	vals, err := json.Marshal(map[string]json.RawMessage{columnID: encoded})
	if err != nil {
		return fmt.Errorf("marshal column values: %w", err)
	}
	vars := map[string]any{
		"board_id": boardID,
		"item_id":  recordID,
		"vals":     string(vals),
	}
	err = c.gql(ctx, "write column value", changeValuesMutation, vars, nil)
	if err == nil {
		return nil
	}
	// Mutation-level GraphQL errors become WriteErrors so callers can treat
	// them as record-local; auth failures stay fatal.
	var terr *TransportError
	if errors.As(err, &terr) {
		return &WriteError{RecordID: recordID, ColumnID: columnID, Payload: terr.Err.Error()}
	}
	return err
}

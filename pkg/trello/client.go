package trello

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	taskdomain "briefdesk-backend/internal/task/domain"
)

const defaultBaseURL = "https://api.trello.com/1"

// Client is a thin wrapper over the Trello REST API.
type Client struct {
	apiKey  string
	token   string
	baseURL string
	http    *http.Client
}

type Card struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Desc        string  `json:"desc"`
	Due         *string `json:"due"`
	DueComplete bool    `json:"dueComplete"`
	IDList      string  `json:"idList"`
	IDBoard     string  `json:"idBoard"`
	URL         string  `json:"url"`
	Labels      []Label `json:"labels"`
}

type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Board struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Desc   string `json:"desc"`
	URL    string `json:"url"`
	Closed bool   `json:"closed"`
}

type List struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IDBoard string `json:"idBoard"`
}

// CreateCardParams are the fields sent when creating a card.
type CreateCardParams struct {
	ListID string
	Name   string
	Desc   string
	Due    string
	Labels []string
}

// CardUpdate carries the optional fields of a card PUT.
type CardUpdate struct {
	Name        *string
	Desc        *string
	Due         *string
	DueComplete *bool
	IDList      *string
}

func NewClient(apiKey, token string) *Client {
	return &Client{
		apiKey:  apiKey,
		token:   token,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point at a fake server.
func NewClientWithBaseURL(apiKey, token, baseURL string) *Client {
	c := NewClient(apiKey, token)
	c.baseURL = baseURL
	return c
}

func (c *Client) auth() (string, string, error) {
	if c.apiKey == "" || c.token == "" {
		return "", "", errors.New("Trello API credentials not configured")
	}
	return c.apiKey, c.token, nil
}

func (c *Client) authURL(endpoint string) (string, error) {
	key, token, err := c.auth()
	if err != nil {
		return "", err
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return c.baseURL + endpoint + sep + "key=" + key + "&token=" + token, nil
}

func (c *Client) do(ctx context.Context, method, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("trello request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Trello API error: %s - %s", resp.Status, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// Boards lists the member's boards, excluding closed/archived ones. A closed
// board cannot accept new cards, so it never reaches the card-create path.
func (c *Client) Boards(ctx context.Context) ([]Board, error) {
	url, err := c.authURL("/members/me/boards")
	if err != nil {
		return nil, err
	}

	var boards []Board
	if err := c.do(ctx, http.MethodGet, url, &boards); err != nil {
		return nil, err
	}

	open := make([]Board, 0, len(boards))
	for _, b := range boards {
		if !b.Closed {
			open = append(open, b)
		}
	}
	return open, nil
}

// BoardLists lists the lists on a board.
func (c *Client) BoardLists(ctx context.Context, boardID string) ([]List, error) {
	url, err := c.authURL("/boards/" + boardID + "/lists")
	if err != nil {
		return nil, err
	}
	var lists []List
	if err := c.do(ctx, http.MethodGet, url, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// Cards fetches cards from a list when listID is set, from a board when
// boardID is set, otherwise from every open board.
func (c *Client) Cards(ctx context.Context, boardID, listID string) ([]Card, error) {
	var endpoint string
	switch {
	case listID != "":
		endpoint = "/lists/" + listID + "/cards"
	case boardID != "":
		endpoint = "/boards/" + boardID + "/cards"
	default:
		boards, err := c.Boards(ctx)
		if err != nil {
			return nil, err
		}
		var all []Card
		for _, b := range boards {
			cards, err := c.Cards(ctx, b.ID, "")
			if err != nil {
				continue
			}
			all = append(all, cards...)
		}
		return all, nil
	}

	url, err := c.authURL(endpoint)
	if err != nil {
		return nil, err
	}
	var cards []Card
	if err := c.do(ctx, http.MethodGet, url, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// CreateCard creates a card on the given list.
func (c *Client) CreateCard(ctx context.Context, params CreateCardParams) (*Card, error) {
	key, token, err := c.auth()
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("key", key)
	values.Set("token", token)
	values.Set("idList", params.ListID)
	values.Set("name", params.Name)
	if params.Desc != "" {
		values.Set("desc", params.Desc)
	}
	if params.Due != "" {
		values.Set("due", params.Due)
	}
	if len(params.Labels) > 0 {
		values.Set("idLabels", strings.Join(params.Labels, ","))
	}

	var card Card
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/cards?"+values.Encode(), &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// UpdateCard applies the provided fields to a card.
func (c *Client) UpdateCard(ctx context.Context, cardID string, updates CardUpdate) (*Card, error) {
	key, token, err := c.auth()
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("key", key)
	values.Set("token", token)
	if updates.Name != nil {
		values.Set("name", *updates.Name)
	}
	if updates.Desc != nil {
		values.Set("desc", *updates.Desc)
	}
	if updates.Due != nil {
		values.Set("due", *updates.Due)
	}
	if updates.DueComplete != nil {
		values.Set("dueComplete", strconv.FormatBool(*updates.DueComplete))
	}
	if updates.IDList != nil {
		values.Set("idList", *updates.IDList)
	}

	var card Card
	if err := c.do(ctx, http.MethodPut, c.baseURL+"/cards/"+cardID+"?"+values.Encode(), &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// DeleteCard removes a card.
func (c *Client) DeleteCard(ctx context.Context, cardID string) error {
	url, err := c.authURL("/cards/" + cardID)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, url, nil)
}

// DefaultListID finds the list new tasks land on: a "to do"/"todo"/"backlog"
// list when one exists, otherwise the first list of the board.
func (c *Client) DefaultListID(ctx context.Context, boardID string) (string, error) {
	if boardID == "" {
		boards, err := c.Boards(ctx)
		if err != nil {
			return "", err
		}
		if len(boards) == 0 {
			return "", errors.New("no Trello boards found")
		}
		boardID = boards[0].ID
	}

	lists, err := c.BoardLists(ctx, boardID)
	if err != nil {
		return "", err
	}
	if len(lists) == 0 {
		return "", errors.New("no lists found on board")
	}

	for _, l := range lists {
		name := strings.ToLower(l.Name)
		if strings.Contains(name, "to do") || strings.Contains(name, "todo") || strings.Contains(name, "backlog") {
			return l.ID, nil
		}
	}
	return lists[0].ID, nil
}

// CardToTask maps a Trello card onto the local task shape, stamping the
// metadata with the external ids later used for dedup.
func CardToTask(card *Card) *taskdomain.Task {
	status := taskdomain.TaskStatusPending
	if card.DueComplete {
		status = taskdomain.TaskStatusCompleted
	}

	var dueAt *time.Time
	if card.Due != nil && *card.Due != "" {
		if t, err := time.Parse(time.RFC3339, *card.Due); err == nil {
			dueAt = &t
		}
	}

	labels, _ := json.Marshal(card.Labels)

	return &taskdomain.Task{
		Title:  card.Name,
		Status: status,
		DueAt:  dueAt,
		Source: taskdomain.SourceTrello,
		MetadataJSON: taskdomain.EncodeMetadata(taskdomain.Metadata{
			TrelloID:    card.ID,
			BoardID:     card.IDBoard,
			ListID:      card.IDList,
			URL:         card.URL,
			Description: card.Desc,
			Labels:      labels,
		}),
	}
}

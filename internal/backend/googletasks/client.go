// Package googletasks pushes the local list to a Google Tasks list.
package googletasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"todo/internal/config"
	"todo/internal/task"
)

const (
	// PageSize is the number of items requested per page.
	PageSize = 100

	// APITimeout is the timeout for each API call.
	APITimeout = 5 * time.Second

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// ErrAmbiguousList is returned when several remote lists share the title.
var ErrAmbiguousList = errors.New("ambiguous list name")

// Client talks to the Google Tasks API.
type Client struct {
	svc *tasks.Service
}

// New creates a Google Tasks client from the stored OAuth client and token.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg)
	if err != nil {
		return nil, err
	}

	// Token source refreshes and the client carries it on every call.
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))
	return NewWithHTTPClient(ctx, httpClient)
}

// NewWithHTTPClient creates a client with a custom HTTP client and options,
// such as option.WithEndpoint for a test server.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Push makes the remote list titled title hold exactly items, in order.
// The list is created if missing; its previous tasks are deleted.
func (c *Client) Push(ctx context.Context, title string, items []task.Task) error {
	logger := log.FromContext(ctx)

	listID, err := c.ensureList(ctx, title)
	if err != nil {
		return err
	}

	removed, err := c.clearList(ctx, listID)
	if err != nil {
		return err
	}

	previous := ""
	for i, t := range items {
		id, err := c.insert(ctx, listID, previous, t)
		if err != nil {
			return fmt.Errorf("insert task %d: %w", i+1, err)
		}
		previous = id
	}

	logger.Debug("pushed tasks", "list", title, "removed", removed, "inserted", len(items))
	return nil
}

// ensureList returns the id of the list titled title (case-insensitive,
// trimmed), creating it if there is none.
func (c *Client) ensureList(ctx context.Context, title string) (string, error) {
	want := strings.ToLower(strings.TrimSpace(title))

	callCtx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var matches []string
	err := c.svc.Tasklists.List().MaxResults(PageSize).Pages(callCtx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			if strings.ToLower(strings.TrimSpace(list.Title)) == want {
				matches = append(matches, list.Id)
			}
		}
		return nil
	})
	if err != nil {
		return "", wrapError(err)
	}

	switch len(matches) {
	case 0:
		created, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: strings.TrimSpace(title)}).Context(callCtx).Do()
		if err != nil {
			return "", wrapError(err)
		}
		log.FromContext(ctx).Info("created remote list", "title", title)
		return created.Id, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousList, title)
	}
}

// clearList deletes every task in the list, completed and hidden included.
func (c *Client) clearList(ctx context.Context, listID string) (int, error) {
	callCtx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var ids []string
	err := c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		Pages(callCtx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				ids = append(ids, t.Id)
			}
			return nil
		})
	if err != nil {
		return 0, wrapError(err)
	}

	for _, id := range ids {
		delCtx, cancel := context.WithTimeout(ctx, APITimeout)
		err := c.svc.Tasks.Delete(listID, id).Context(delCtx).Do()
		cancel()
		if err != nil {
			return 0, wrapError(err)
		}
	}
	return len(ids), nil
}

func (c *Client) insert(ctx context.Context, listID, previous string, t task.Task) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	status := statusNeedsAction
	if t.Completed {
		status = statusCompleted
	}
	call := c.svc.Tasks.Insert(listID, &tasks.Task{Title: t.Text, Status: status})
	if previous != "" {
		call = call.Previous(previous)
	}
	created, err := call.Context(ctx).Do()
	if err != nil {
		return "", wrapError(err)
	}
	return created.Id, nil
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return fmt.Errorf("token expired or revoked (run: todo login)")
	}

	if strings.Contains(errStr, "404") {
		return fmt.Errorf("not found")
	}

	return err
}

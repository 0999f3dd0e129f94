package vikunja

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 30 * time.Second

// Client is the HTTP wrapper for the Vikunja REST API.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a new Vikunja HTTP client. baseURL includes the API
// prefix, e.g. https://vikunja.example.com/api/v1.
func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// GetProjects lists all accessible projects via GET /projects.
func (c *Client) GetProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}
	return projects, nil
}

// GetLabels lists all labels visible to the token via GET /labels.
func (c *Client) GetLabels(ctx context.Context) ([]Label, error) {
	var labels []Label
	if err := c.do(ctx, http.MethodGet, "/labels", nil, &labels); err != nil {
		return nil, fmt.Errorf("failed to get labels: %w", err)
	}
	return labels, nil
}

// CreateLabel creates a new label with a random hex color via PUT /labels.
func (c *Client) CreateLabel(ctx context.Context, title string) (*Label, error) {
	body := map[string]string{"title": title, "hex_color": randomHexColor()}
	var label Label
	if err := c.do(ctx, http.MethodPut, "/labels", body, &label); err != nil {
		return nil, fmt.Errorf("failed to create label %q: %w", title, err)
	}
	return &label, nil
}

// AddTask creates a task via PUT /projects/{id}/tasks. The body is the
// draft payload minus fields Vikunja does not accept on creation.
func (c *Client) AddTask(ctx context.Context, projectID int64, body any) (*Task, error) {
	var created Task
	path := fmt.Sprintf("/projects/%d/tasks", projectID)
	if err := c.do(ctx, http.MethodPut, path, body, &created); err != nil {
		return nil, fmt.Errorf("failed to create task in project %d: %w", projectID, err)
	}
	return &created, nil
}

// AddLabelToTask attaches an existing label via PUT /tasks/{id}/labels.
func (c *Client) AddLabelToTask(ctx context.Context, taskID, labelID int64) error {
	body := map[string]int64{"label_id": labelID}
	path := fmt.Sprintf("/tasks/%d/labels", taskID)
	if err := c.do(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("failed to attach label %d to task %d: %w", labelID, taskID, err)
	}
	return nil
}

// GetProjectUsers lists users of a project via GET /projects/{id}/projectusers.
func (c *Client) GetProjectUsers(ctx context.Context, projectID int64) ([]User, error) {
	var users []User
	path := fmt.Sprintf("/projects/%d/projectusers", projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, fmt.Errorf("failed to get users for project %d: %w", projectID, err)
	}
	return users, nil
}

// AssignUserToTask assigns a user via PUT /tasks/{id}/assignees.
func (c *Client) AssignUserToTask(ctx context.Context, taskID, userID int64) error {
	body := map[string]any{
		"user_id": userID,
		"task_id": taskID,
	}
	path := fmt.Sprintf("/tasks/%d/assignees", taskID)
	if err := c.do(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("failed to assign user %d to task %d: %w", userID, taskID, err)
	}
	return nil
}

// TestConnection checks connectivity by listing projects.
func (c *Client) TestConnection(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/projects", nil, nil); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

// do issues one request and decodes a 2xx JSON response into out (when
// non-nil). Non-2xx responses return an error carrying status and body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("vikunja API error %d: %s", resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func randomHexColor() string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "000000"
	}
	return hex.EncodeToString(buf)
}

// ---- Request/Response types scoped to this package ----

// Project is the Vikunja API project object.
type Project struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Label is the Vikunja API label object.
type Label struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	HexColor string `json:"hex_color"`
}

// Task is the Vikunja API task object (fields this service reads).
type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	ProjectID int64  `json:"project_id"`
}

// User is the Vikunja API user object.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

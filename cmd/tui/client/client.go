package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the budgeting API over HTTP. After Login it attaches
// the bearer token to every request.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

type User struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

type Record struct {
	ID          int64   `json:"id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	UserID      string  `json:"user_id"`
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(method, path string, payload, out interface{}) error {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) Register(firstName, lastName, email, phone, password string) error {
	return c.do(http.MethodPost, "/api/register", map[string]string{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
		"phone":      phone,
		"password":   password,
	}, nil)
}

func (c *Client) Login(email, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

func (c *Client) Profile() (*User, error) {
	var u User
	if err := c.do(http.MethodGet, "/api/profile", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// resource is "transactions" or "budget".

func (c *Client) ListRecords(resource string) ([]Record, error) {
	var records []Record
	if err := c.do(http.MethodGet, "/api/"+resource, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) CreateRecord(resource string, amount float64, description, date string) (*Record, error) {
	var rec Record
	err := c.do(http.MethodPost, "/api/"+resource, map[string]interface{}{
		"amount":      amount,
		"description": description,
		"date":        date,
	}, &rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) DeleteRecord(resource string, id int64) error {
	return c.do(http.MethodDelete, fmt.Sprintf("/api/%s/%d", resource, id), nil, nil)
}

func (c *Client) SearchRecords(resource, query string) ([]Record, error) {
	var records []Record
	params := url.Values{"query": {query}}
	path := fmt.Sprintf("/api/%s/search?%s", resource, params.Encode())
	if err := c.do(http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

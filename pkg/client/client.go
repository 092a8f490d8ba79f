// Package client is a typed HTTP client for the site API. Admin calls take
// the bearer token as an explicit argument; the client itself holds no
// credentials.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/folio-site/folio/backend/internal/models"
)

// Error is a non-2xx answer from the API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	if e, ok := err.(*Error); ok {
		return e.Status
	}
	return 0
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New returns a client for baseURL. A nil httpClient gets a 30s timeout.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var m struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &m) != nil || m.Message == "" {
			m.Message = http.StatusText(resp.StatusCode)
		}
		return &Error{Status: resp.StatusCode, Message: m.Message}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out interface{}) error {
	var body io.Reader
	ctype := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
		ctype = "application/json"
	}
	return c.do(ctx, method, path, token, body, ctype, out)
}

// Login exchanges admin credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	in := map[string]string{"username": username, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Verify returns the admin user behind token.
func (c *Client) Verify(ctx context.Context, token string) (*models.User, error) {
	var out struct {
		Valid bool         `json:"valid"`
		User  *models.User `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/verify", token, nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// PortfolioQuery mirrors the list endpoint's query string.
type PortfolioQuery struct {
	Type     string
	Search   string
	SortBy   string
	Featured bool
}

func (c *Client) ListPortfolio(ctx context.Context, q PortfolioQuery) ([]models.PortfolioItem, error) {
	v := url.Values{}
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.Featured {
		v.Set("featured", "true")
	}
	path := "/api/portfolio"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}
	var out []models.PortfolioItem
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPortfolio(ctx context.Context, id string) (*models.PortfolioItem, error) {
	var out models.PortfolioItem
	if err := c.doJSON(ctx, http.MethodGet, "/api/portfolio/"+url.PathEscape(id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PortfolioForm holds the multipart fields; nil fields are not sent.
type PortfolioForm struct {
	Title       *string
	Description *string
	Type        *string
	Link        *string
	IsFeatured  *bool
}

// Image is an optional file attached to a portfolio write.
type Image struct {
	Filename string
	Data     io.Reader
}

func (f PortfolioForm) encode(img *Image) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := []struct {
		name string
		val  *string
	}{
		{"title", f.Title}, {"description", f.Description}, {"type", f.Type}, {"link", f.Link},
	}
	for _, fld := range fields {
		if fld.val != nil {
			if err := mw.WriteField(fld.name, *fld.val); err != nil {
				return nil, "", err
			}
		}
	}
	if f.IsFeatured != nil {
		if err := mw.WriteField("isFeatured", strconv.FormatBool(*f.IsFeatured)); err != nil {
			return nil, "", err
		}
	}
	if img != nil {
		w, err := mw.CreateFormFile("image", img.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(w, img.Data); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func (c *Client) CreatePortfolio(ctx context.Context, token string, f PortfolioForm, img *Image) (*models.PortfolioItem, error) {
	body, ctype, err := f.encode(img)
	if err != nil {
		return nil, err
	}
	var out models.PortfolioItem
	if err := c.do(ctx, http.MethodPost, "/api/portfolio", token, body, ctype, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePortfolio(ctx context.Context, token, id string, f PortfolioForm, img *Image) (*models.PortfolioItem, error) {
	body, ctype, err := f.encode(img)
	if err != nil {
		return nil, err
	}
	var out models.PortfolioItem
	if err := c.do(ctx, http.MethodPut, "/api/portfolio/"+url.PathEscape(id), token, body, ctype, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePortfolio(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/portfolio/"+url.PathEscape(id), token, nil, nil)
}

// Fetch downloads a public path such as an item's image.
func (c *Client) Fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	var out []models.Achievement
	if err := c.doJSON(ctx, http.MethodGet, "/api/achievements", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAchievement(ctx context.Context, id string) (*models.Achievement, error) {
	var out models.Achievement
	if err := c.doJSON(ctx, http.MethodGet, "/api/achievements/"+url.PathEscape(id), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type achievementBody struct {
	Year  int      `json:"year"`
	Items []string `json:"items"`
}

func (c *Client) CreateAchievement(ctx context.Context, token string, year int, items []string) (*models.Achievement, error) {
	var out models.Achievement
	if err := c.doJSON(ctx, http.MethodPost, "/api/achievements", token, achievementBody{year, items}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAchievement(ctx context.Context, token, id string, year int, items []string) (*models.Achievement, error) {
	var out models.Achievement
	if err := c.doJSON(ctx, http.MethodPut, "/api/achievements/"+url.PathEscape(id), token, achievementBody{year, items}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAchievement(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/achievements/"+url.PathEscape(id), token, nil, nil)
}

// ContactForm is what a visitor submits.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// SubmitContact posts the public contact form and returns the receipt text.
func (c *Client) SubmitContact(ctx context.Context, f ContactForm) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/contact", "", f, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) ListMessages(ctx context.Context, token string) ([]models.ContactMessage, error) {
	var out []models.ContactMessage
	if err := c.doJSON(ctx, http.MethodGet, "/api/contact", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMessage(ctx context.Context, token, id string) (*models.ContactMessage, error) {
	var out models.ContactMessage
	if err := c.doJSON(ctx, http.MethodGet, "/api/contact/"+url.PathEscape(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MarkRead(ctx context.Context, token, id string) (*models.ContactMessage, error) {
	var out models.ContactMessage
	if err := c.doJSON(ctx, http.MethodPut, "/api/contact/"+url.PathEscape(id)+"/read", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMessage(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/contact/"+url.PathEscape(id), token, nil, nil)
}

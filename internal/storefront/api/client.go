// Package api is the storefront's REST client. Failures surface the
// backend-provided message when there is one and a generic message
// otherwise; there are no retries.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"techmobile/internal/domain"
)

// ErrRequestFailed is the generic transport-failure error shown when the
// backend gave no usable message.
var ErrRequestFailed = errors.New("something went wrong, please try again")

// Session is the authenticated user object the client persists between
// runs, token included.
type Session struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

// Client talks to the storefront backend.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New builds a Client for baseURL. A nil httpClient uses
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// FetchProducts loads the catalog, optionally narrowed to one category.
func (c *Client) FetchProducts(ctx context.Context, category string) ([]domain.Product, error) {
	u := c.baseURL + "/api/products"
	if category != "" {
		u += "?category=" + url.QueryEscape(category)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := c.do(req, http.StatusOK, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	return c.authRequest(ctx, "/api/auth/login", http.StatusOK, map[string]string{
		"email":    email,
		"password": password,
	})
}

// Register creates an account and returns its session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	return c.authRequest(ctx, "/api/auth/register", http.StatusCreated, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

func (c *Client) authRequest(ctx context.Context, path string, wantStatus int, payload map[string]string) (*Session, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var session Session
	if err := c.do(req, wantStatus, &session); err != nil {
		return nil, err
	}
	c.token = session.Token
	return &session, nil
}

// Subscribe signs email up for the newsletter.
func (c *Client) Subscribe(ctx context.Context, email string) error {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/subscribe", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, http.StatusCreated, nil)
}

// CreateProductInput carries the admin product form fields.
type CreateProductInput struct {
	Title              string
	Brand              string
	Category           string
	PriceCents         int64
	OriginalPriceCents *int64
	ImageURL           string
	ImagePath          string
	Description        string
	Specs              domain.ProductSpecs
	Badges             []string
}

// CreateProduct posts the admin product form as multipart, with either an
// uploaded image file (ImagePath) or an image URL.
func (c *Client) CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       in.Title,
		"brand":       in.Brand,
		"category":    in.Category,
		"priceCents":  strconv.FormatInt(in.PriceCents, 10),
		"description": in.Description,
		"storage":     in.Specs.Storage,
		"ram":         in.Specs.RAM,
		"camera":      in.Specs.Camera,
		"battery":     in.Specs.Battery,
		"badges":      strings.Join(in.Badges, ","),
	}
	if in.OriginalPriceCents != nil {
		fields["originalPriceCents"] = strconv.FormatInt(*in.OriginalPriceCents, 10)
	}
	if in.ImagePath == "" {
		fields["image"] = in.ImageURL
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}

	if in.ImagePath != "" {
		f, err := os.Open(in.ImagePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		part, err := w.CreateFormFile("image", filepath.Base(in.ImagePath))
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/products", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var created domain.Product
	if err := c.do(req, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// do sends the request, enforces the expected status, and decodes the
// response body into dest when dest is non-nil.
func (c *Client) do(req *http.Request, wantStatus int, dest any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode != wantStatus {
		return errorFromBody(body)
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	return nil
}

// errorFromBody surfaces the backend's message field when present.
func errorFromBody(body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return errors.New(payload.Message)
	}
	return ErrRequestFailed
}

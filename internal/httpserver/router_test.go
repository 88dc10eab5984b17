package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"techmobile/internal/domain"
	authsvc "techmobile/internal/service/auth"
	catalogsvc "techmobile/internal/service/catalog"
	subsvc "techmobile/internal/service/subscription"
)

type stubCatalog struct {
	products  []domain.Product
	listErr   error
	created   *catalogsvc.CreateInput
	createErr error
}

func (s *stubCatalog) List(ctx context.Context, category string) ([]domain.Product, error) {
	return s.products, s.listErr
}

func (s *stubCatalog) Create(ctx context.Context, in catalogsvc.CreateInput) (*domain.Product, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = &in
	return &domain.Product{ID: "p1", Title: in.Title, Brand: in.Brand, Category: in.Category, PriceCents: in.PriceCents, Image: in.Image}, nil
}

type stubAuth struct {
	users map[string]*domain.User
}

func (s *stubAuth) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if _, ok := s.users[email]; ok {
		return nil, "", authsvc.ErrEmailTaken
	}
	return &domain.User{ID: "u1", Name: name, Email: email}, "tok-new", nil
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, ok := s.users[email]
	if !ok || password != "secret1" {
		return nil, "", authsvc.ErrInvalidCredentials
	}
	return u, "tok-" + u.ID, nil
}

func (s *stubAuth) LookupByToken(ctx context.Context, token string) (*domain.User, error) {
	for _, u := range s.users {
		if token == "tok-"+u.ID {
			return u, nil
		}
	}
	return nil, authsvc.ErrInvalidToken
}

type stubSubscribe struct {
	err error
}

func (s *stubSubscribe) Subscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Subscriber{ID: "s1", Email: email}, nil
}

type stubSaver struct{}

func (stubSaver) Save(fh *multipart.FileHeader) (string, error) {
	return "/uploads/" + fh.Filename, nil
}

func testDeps() (Deps, *stubCatalog, *stubAuth) {
	catalog := &stubCatalog{}
	auth := &stubAuth{users: map[string]*domain.User{
		"ada@example.com":   {ID: "u1", Name: "Ada", Email: "ada@example.com"},
		"admin@example.com": {ID: "u2", Name: "Admin", Email: "admin@example.com", IsAdmin: true},
	}}
	return Deps{
		CatalogSvc:   catalog,
		AuthSvc:      auth,
		SubscribeSvc: &stubSubscribe{},
		Uploads:      stubSaver{},
	}, catalog, auth
}

func newTestRouter(t *testing.T, deps Deps) http.Handler {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	router, err := buildRouter(logger, nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return payload.Message
}

func TestBuildRouterRequiresServices(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	if _, err := buildRouter(logger, nil, Deps{}); err == nil {
		t.Fatal("expected error for missing services")
	}
}

func TestHealthz(t *testing.T) {
	deps, _, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListProductsEmptyCatalogIsEmptyArray(t *testing.T) {
	deps, _, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodGet, "/api/products", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}

func TestListProductsServerError(t *testing.T) {
	deps, catalog, _ := testDeps()
	catalog.listErr = context.DeadlineExceeded
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodGet, "/api/products", "", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if got := messageOf(t, rec); got != "Server Error" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestCreateProductRequiresToken(t *testing.T) {
	deps, _, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/products", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := messageOf(t, rec); got != "Not authorized, no token" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestCreateProductRejectsBadToken(t *testing.T) {
	deps, _, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/products", "bogus", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := messageOf(t, rec); got != "Not authorized, token failed" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestCreateProductRejectsNonAdmin(t *testing.T) {
	deps, _, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/products", "tok-u1", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if got := messageOf(t, rec); got != "Not authorized as admin" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestCreateProductAsAdmin(t *testing.T) {
	deps, catalog, _ := testDeps()
	router := newTestRouter(t, deps)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"title":       "Pixel 8",
		"brand":       "Google",
		"category":    "smartphones",
		"priceCents":  "69900",
		"image":       "https://img.example.com/pixel8.webp",
		"description": "Compact phone",
		"badges":      "New, Hot",
		"storage":     "128GB",
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer tok-u2")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if catalog.created == nil {
		t.Fatal("catalog service not called")
	}
	if catalog.created.PriceCents != 69900 {
		t.Fatalf("price not parsed: %+v", catalog.created)
	}
	if len(catalog.created.Badges) != 2 || catalog.created.Badges[1] != "Hot" {
		t.Fatalf("badges not split: %+v", catalog.created.Badges)
	}
	if catalog.created.Specs == nil || catalog.created.Specs.Storage != "128GB" {
		t.Fatalf("specs not parsed: %+v", catalog.created.Specs)
	}
}

func TestCreateProductUploadsImageFile(t *testing.T) {
	deps, catalog, _ := testDeps()
	router := newTestRouter(t, deps)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"title":       "Pixel 8",
		"brand":       "Google",
		"category":    "smartphones",
		"priceCents":  "69900",
		"description": "Compact phone",
	} {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	part, err := w.CreateFormFile("image", "pixel8.webp")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte("not really an image"))
	if err := w.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer tok-u2")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if catalog.created.Image != "/uploads/pixel8.webp" {
		t.Fatalf("expected saved upload URL, got %q", catalog.created.Image)
	}
}

func TestCreateProductRejectsBadPrice(t *testing.T) {
	deps, _, _ := testDeps()
	router := newTestRouter(t, deps)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"title":      "Pixel 8",
		"priceCents": "not-a-number",
	} {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer tok-u2")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := messageOf(t, rec); got != "Failed to create product" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestLogin(t *testing.T) {
	deps, _, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "secret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.ID != "u1" || payload.Token != "tok-u1" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	deps, _, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := messageOf(t, rec); got != "Invalid email or password" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestLoginMissingFields(t *testing.T) {
	deps, _, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ada@example.com"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRegister(t *testing.T) {
	deps, _, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "New User",
		"email":    "new@example.com",
		"password": "secret1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	deps, _, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Ada Again",
		"email":    "ada@example.com",
		"password": "secret1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := messageOf(t, rec); got != "Email already registered" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestSubscribe(t *testing.T) {
	deps, _, _ := testDeps()
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/subscribe", "", map[string]string{"email": "ada@example.com"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := messageOf(t, rec); got != "Successfully subscribed to newsletter!" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestSubscribeDuplicate(t *testing.T) {
	deps, _, _ := testDeps()
	deps.SubscribeSvc = &stubSubscribe{err: subsvc.ErrAlreadySubscribed}
	router := newTestRouter(t, deps)

	rec := doJSON(t, router, http.MethodPost, "/api/subscribe", "", map[string]string{"email": "ada@example.com"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := messageOf(t, rec); got != "Email already subscribed" {
		t.Fatalf("unexpected message %q", got)
	}
}

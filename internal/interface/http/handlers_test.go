package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/streamchat-api/internal/application"
	"github.com/oksasatya/streamchat-api/internal/domain/entity"
	"github.com/oksasatya/streamchat-api/internal/domain/repository"
	handlers "github.com/oksasatya/streamchat-api/internal/interface/http"
	"github.com/oksasatya/streamchat-api/internal/router/modules"
	"github.com/oksasatya/streamchat-api/pkg/helpers"
	"github.com/oksasatya/streamchat-api/pkg/validation"
)

// In-memory user/contact repositories with the same uniqueness semantics as
// the Postgres schema, so handlers can be exercised end to end over httptest.

type memUserRepo struct {
	mu     sync.Mutex
	users  map[string]*entity.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("user-%d", r.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) UpdateProfilePhoto(_ context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ProfilePhoto = url
	return nil
}

type memContactRepo struct {
	mu     sync.Mutex
	edges  []entity.Contact
	users  *memUserRepo
	nextID int
}

func newMemContactRepo(users *memUserRepo) *memContactRepo {
	return &memContactRepo{users: users}
}

func (r *memContactRepo) Create(_ context.Context, c *entity.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.edges {
		if e.OwnerID == c.OwnerID && e.ContactID == c.ContactID {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	c.ID = fmt.Sprintf("edge-%d", r.nextID)
	c.AddedAt = time.Now()
	r.edges = append(r.edges, *c)
	return nil
}

func (r *memContactRepo) Exists(_ context.Context, ownerID, contactID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.edges {
		if e.OwnerID == ownerID && e.ContactID == contactID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memContactRepo) ListByOwner(ctx context.Context, ownerID string) ([]entity.ContactListing, error) {
	r.mu.Lock()
	edges := make([]entity.Contact, 0)
	for _, e := range r.edges {
		if e.OwnerID == ownerID {
			edges = append(edges, e)
		}
	}
	r.mu.Unlock()

	out := make([]entity.ContactListing, 0, len(edges))
	for _, e := range edges {
		u, err := r.users.GetByID(ctx, e.ContactID)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.ContactListing{
			ContactID:    u.ID,
			Name:         u.Name,
			Email:        u.Email,
			PhoneNumber:  u.PhoneNumber,
			ProfilePhoto: u.ProfilePhoto,
			AddedAt:      e.AddedAt,
		})
	}
	return out, nil
}

func (r *memContactRepo) Delete(_ context.Context, ownerID, contactID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.edges {
		if e.OwnerID == ownerID && e.ContactID == contactID {
			r.edges = append(r.edges[:i], r.edges[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

var (
	_ repository.UserRepository    = (*memUserRepo)(nil)
	_ repository.ContactRepository = (*memContactRepo)(nil)
)

// envelope mirrors response.APIResponse for decoding in assertions.
type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type testServer struct {
	engine *gin.Engine
	users  *memUserRepo
	jwt    *helpers.JWTManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := newMemUserRepo()
	contacts := newMemContactRepo(users)
	jwtm := helpers.NewJWTManager("handler-test-secret", time.Hour)

	authSvc := application.NewAuthService(users, jwtm, nil, nil, "", nil, "", logger)
	contactSvc := application.NewContactService(contacts, users, logger)

	engine := gin.New()
	api := engine.Group("/api")
	modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), users, jwtm).Register(api)
	modules.NewContactModule(handlers.NewContactHandler(contactSvc, logger), users, jwtm).Register(api)
	return &testServer{engine: engine, users: users, jwt: jwtm}
}

func (s *testServer) doJSON(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope (%s %s, status %d): %v", method, path, w.Code, err)
	}
	return w, env
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

type authPayload struct {
	User  application.PublicUser `json:"user"`
	Token string                 `json:"token"`
}

func (s *testServer) register(t *testing.T, name, email, phone string) authPayload {
	t.Helper()
	if phone == "" {
		phone = "+15550000000"
	}
	w, env := s.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":         name,
		"email":        email,
		"phone_number": phone,
		"password":     "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body = %s", email, w.Code, w.Body.String())
	}
	var out authPayload
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode register payload: %v", err)
	}
	return out
}

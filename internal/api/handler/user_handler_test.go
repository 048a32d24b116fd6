package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/demoapps/rbac-portal/internal/core/domain"
)

type stubUserService struct {
	getAllFn  func(ctx context.Context) ([]domain.User, error)
	getByIDFn func(ctx context.Context, id int) (*domain.User, error)
}

func (s *stubUserService) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.getAllFn(ctx)
}

func (s *stubUserService) GetByID(ctx context.Context, id int) (*domain.User, error) {
	return s.getByIDFn(ctx, id)
}

func TestUserHandler_List(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		getAllFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{
				{ID: 1, Username: "admin", Role: domain.RoleAdmin},
				{ID: 2, Username: "user", Role: domain.RoleUser},
			}, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 2 || users[0]["username"] != "admin" {
		t.Fatalf("unexpected payload: %+v", users)
	}
	for _, u := range users {
		if _, present := u["password"]; present {
			t.Fatalf("password field serialized: %+v", u)
		}
	}
}

func TestUserHandler_List_Unauthorized(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		getAllFn: func(ctx context.Context) ([]domain.User, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized to bubble up, got %v", err)
	}
}

func TestUserHandler_GetByID(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		getByIDFn: func(ctx context.Context, id int) (*domain.User, error) {
			if id != 2 {
				return nil, domain.ErrUserNotFound
			}
			return &domain.User{ID: 2, Username: "user", Role: domain.RoleUser}, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/admin/users/:id")
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := handler.GetByID(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_GetByID_BadID(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		getByIDFn: func(ctx context.Context, id int) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/admin/users/:id")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	_ = handler.GetByID(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_GetByID_NotFound(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		getByIDFn: func(ctx context.Context, id int) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/admin/users/:id")
	c.SetParamNames("id")
	c.SetParamValues("999")

	if err := handler.GetByID(c); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound to bubble up, got %v", err)
	}
}

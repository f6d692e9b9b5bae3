package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/goexpense/internal/adapter/http/dto"
	"github.com/iho/goexpense/internal/domain"
	"github.com/iho/goexpense/internal/usecase"
)

type accountServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFn    func(ctx context.Context, userID, id string) (*domain.Account, error)
	listFn   func(ctx context.Context, userID string) (*usecase.AccountList, error)
	renameFn func(ctx context.Context, userID, id, name string) (*domain.Account, error)
	deleteFn func(ctx context.Context, userID, id string) error
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, userID, id string) (*domain.Account, error) {
	return s.getFn(ctx, userID, id)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, userID string) (*usecase.AccountList, error) {
	return s.listFn(ctx, userID)
}

func (s *accountServiceStub) RenameAccount(ctx context.Context, userID, id, name string) (*domain.Account, error) {
	return s.renameFn(ctx, userID, id, name)
}

func (s *accountServiceStub) DeleteAccount(ctx context.Context, userID, id string) error {
	return s.deleteFn(ctx, userID, id)
}

func TestAccountHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateAccountInput
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			captured = input
			return &domain.Account{ID: "acc-1", UserID: input.UserID, Name: input.Name, Balance: decimal.RequireFromString("100")}, nil
		},
	})

	rec := serve(http.MethodPost, "/accounts", "/accounts", `{"name":"cash","opening_balance":"100"}`, handler.Create)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.UserID != "user-1" || captured.Name != "cash" || captured.OpeningBalance != "100" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	decodeBody(t, rec, &resp)
	if resp.ID != "acc-1" || !resp.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAccountHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			t.Fatal("CreateAccount should not be called for invalid payload")
			return nil, nil
		},
	})

	rec := serve(http.MethodPost, "/accounts", "/accounts", `{invalid json`, handler.Create)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_Duplicate(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			return nil, domain.ErrDuplicateName
		},
	})

	rec := serve(http.MethodPost, "/accounts", "/accounts", `{"name":"cash"}`, handler.Create)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, userID, id string) (*domain.Account, error) {
			if userID != "user-1" || id != "missing" {
				t.Fatalf("unexpected lookup %s/%s", userID, id)
			}
			return nil, domain.ErrAccountNotFound
		},
	})

	rec := serve(http.MethodGet, "/accounts/{id}", "/accounts/missing", "", handler.Get)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_List(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		listFn: func(ctx context.Context, userID string) (*usecase.AccountList, error) {
			return &usecase.AccountList{
				Accounts: []*domain.Account{
					{ID: "a", Name: "cash", Balance: decimal.NewFromInt(10)},
					{ID: "b", Name: "bank", Balance: decimal.NewFromInt(-4)},
				},
				Total: decimal.NewFromInt(6),
			}, nil
		},
	})

	rec := serve(http.MethodGet, "/accounts", "/accounts", "", handler.List)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp dto.ListAccountsResponse
	decodeBody(t, rec, &resp)
	if len(resp.Accounts) != 2 || !resp.TotalBalance.Equal(decimal.NewFromInt(6)) {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAccountHandler_Rename(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		renameFn: func(ctx context.Context, userID, id, name string) (*domain.Account, error) {
			return &domain.Account{ID: id, Name: name}, nil
		},
	})

	rec := serve(http.MethodPatch, "/accounts/{id}", "/accounts/acc-1", `{"name":"wallet"}`, handler.Rename)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp dto.AccountResponse
	decodeBody(t, rec, &resp)
	if resp.ID != "acc-1" || resp.Name != "wallet" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAccountHandler_Delete(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"in use", domain.ErrAccountInUse, http.StatusConflict},
		{"missing", domain.ErrAccountNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAccountHandler(&accountServiceStub{
				deleteFn: func(ctx context.Context, userID, id string) error { return tt.err },
			})

			rec := serve(http.MethodDelete, "/accounts/{id}", "/accounts/acc-1", "", handler.Delete)

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

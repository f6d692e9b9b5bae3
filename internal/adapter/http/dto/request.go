package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/iho/goexpense/internal/usecase"
)

// Amount accepts a JSON string ("12,50") or a JSON number (12.5) and keeps the
// raw text for the ledger to parse.
type Amount string

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a string or a number: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string `json:"name"`
	OpeningBalance Amount `json:"opening_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(userID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		UserID:         userID,
		Name:           r.Name,
		OpeningBalance: string(r.OpeningBalance),
	}
}

// RenameAccountRequest represents a request to rename an account.
type RenameAccountRequest struct {
	Name string `json:"name"`
}

// AdjustBalanceRequest sets an account balance directly.
type AdjustBalanceRequest struct {
	Balance Amount `json:"balance"`
	Mode    string `json:"mode"`
}

// ToUseCaseInput converts to use case input.
func (r *AdjustBalanceRequest) ToUseCaseInput(userID, accountID string) usecase.AdjustBalanceInput {
	return usecase.AdjustBalanceInput{
		UserID:    userID,
		AccountID: accountID,
		Balance:   string(r.Balance),
		Mode:      r.Mode,
	}
}

// TransactionRequest is an expense, income or transfer intent.
type TransactionRequest struct {
	Mode   string `json:"mode"`
	Kind   string `json:"kind"`
	Amount Amount `json:"amount"`

	AccountID string `json:"account_id,omitempty"`
	Category  string `json:"category,omitempty"`
	Detail    string `json:"detail,omitempty"`

	FromAccountID string `json:"from_account_id,omitempty"`
	ToAccountID   string `json:"to_account_id,omitempty"`
	Fee           Amount `json:"fee,omitempty"`
	Note          string `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TransactionRequest) ToUseCaseInput(userID string) usecase.RecordTransactionInput {
	return usecase.RecordTransactionInput{
		UserID:        userID,
		Mode:          r.Mode,
		Kind:          r.Kind,
		Amount:        string(r.Amount),
		AccountID:     r.AccountID,
		Category:      r.Category,
		Detail:        r.Detail,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Fee:           string(r.Fee),
		Note:          r.Note,
	}
}

// UpdateRecordRequest edits a record; omitted fields stay unchanged.
type UpdateRecordRequest struct {
	Detail   *string `json:"detail,omitempty"`
	Category *string `json:"category,omitempty"`
	Amount   *Amount `json:"amount,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateRecordRequest) ToUseCaseInput(userID, id string) usecase.UpdateRecordInput {
	input := usecase.UpdateRecordInput{
		UserID:   userID,
		ID:       id,
		Detail:   r.Detail,
		Category: r.Category,
	}
	if r.Amount != nil {
		amount := string(*r.Amount)
		input.Amount = &amount
	}
	return input
}

// CreateCategoryRequest represents a request to create a category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCategoryRequest) ToUseCaseInput(userID, mode string) usecase.CreateCategoryInput {
	return usecase.CreateCategoryInput{
		UserID: userID,
		Mode:   mode,
		Name:   r.Name,
		Kind:   r.Kind,
	}
}

// CreateLimitRequest represents a request to create a spending limit.
type CreateLimitRequest struct {
	AccountID string `json:"account_id"`
	Ceiling   Amount `json:"ceiling"`
	StartDate string `json:"start_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateLimitRequest) ToUseCaseInput(userID string) usecase.CreateLimitInput {
	return usecase.CreateLimitInput{
		UserID:    userID,
		AccountID: r.AccountID,
		Ceiling:   string(r.Ceiling),
		StartDate: r.StartDate,
	}
}

// CreateReminderRequest represents a request to create a reminder.
type CreateReminderRequest struct {
	Text    string `json:"text"`
	DueDate string `json:"due_date"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateReminderRequest) ToUseCaseInput(userID string) usecase.CreateReminderInput {
	return usecase.CreateReminderInput{
		UserID:  userID,
		Text:    r.Text,
		DueDate: r.DueDate,
	}
}

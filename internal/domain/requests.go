package domain

import (
	"math"
	"strings"
)

// ============================================================
// Account requests
// ============================================================

// CreateAccountRequest is the body for POST /v1/accounts.
type CreateAccountRequest struct {
	Name     string   `json:"name"`
	Currency Currency `json:"currency"`
}

func (r *CreateAccountRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return &ErrValidation{Field: "name", Message: "required"}
	}
	if !r.Currency.Valid() {
		return &ErrValidation{Field: "currency", Message: "must be one of USD, EUR, BRL, GBP"}
	}
	return nil
}

// UpdateAccountRequest is the body for PUT /v1/accounts/{accountId}.
type UpdateAccountRequest struct {
	Name     *string   `json:"name,omitempty"`
	Currency *Currency `json:"currency,omitempty"`
}

func (r *UpdateAccountRequest) Validate() error {
	if r.Name == nil && r.Currency == nil {
		return &ErrValidation{Field: "body", Message: "nothing to update"}
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return &ErrValidation{Field: "name", Message: "must not be empty"}
		}
		r.Name = &name
	}
	if r.Currency != nil && !r.Currency.Valid() {
		return &ErrValidation{Field: "currency", Message: "must be one of USD, EUR, BRL, GBP"}
	}
	return nil
}

// ============================================================
// Transaction requests
// ============================================================

// CreateTransactionRequest is the body for POST /v1/accounts/{accountId}/transactions.
// Amount is the unsigned value typed by the user; the sign comes from Type.
type CreateTransactionRequest struct {
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description,omitempty"`
	CategoryID  string          `json:"categoryId,omitempty"`
}

func (r *CreateTransactionRequest) Validate() error {
	if err := validateAmount(r.Amount); err != nil {
		return err
	}
	if !r.Type.Valid() {
		return &ErrValidation{Field: "type", Message: "must be INCOME or EXPENSE"}
	}
	r.Description = strings.TrimSpace(r.Description)
	r.CategoryID = strings.TrimSpace(r.CategoryID)
	return nil
}

// Payload converts the request into the body accepted by the remote API.
func (r *CreateTransactionRequest) Payload() TransactionPayload {
	amount := r.Type.SignAmount(r.Amount)
	p := TransactionPayload{Amount: &amount}
	if r.Description != "" {
		p.Description = &r.Description
	}
	if r.CategoryID != "" {
		p.CategoryID = &r.CategoryID
	}
	return p
}

// UpdateTransactionRequest is the body for PUT .../transactions/{transactionId}.
// Amount and Type travel together: the remote API stores only the signed
// amount, so neither can change on its own.
type UpdateTransactionRequest struct {
	Amount      *float64         `json:"amount,omitempty"`
	Type        *TransactionType `json:"type,omitempty"`
	Description *string          `json:"description,omitempty"`
	CategoryID  *string          `json:"categoryId,omitempty"`
}

func (r *UpdateTransactionRequest) Validate() error {
	if r.Amount == nil && r.Type == nil && r.Description == nil && r.CategoryID == nil {
		return &ErrValidation{Field: "body", Message: "nothing to update"}
	}
	if r.Amount != nil {
		if err := validateAmount(*r.Amount); err != nil {
			return err
		}
		if r.Type == nil {
			return &ErrValidation{Field: "type", Message: "required when amount is set"}
		}
	}
	if r.Type != nil {
		if !r.Type.Valid() {
			return &ErrValidation{Field: "type", Message: "must be INCOME or EXPENSE"}
		}
		if r.Amount == nil {
			return &ErrValidation{Field: "amount", Message: "required when type is set"}
		}
	}
	return nil
}

// Payload converts the request into the body accepted by the remote API.
func (r *UpdateTransactionRequest) Payload() TransactionPayload {
	p := TransactionPayload{Description: r.Description, CategoryID: r.CategoryID}
	if r.Amount != nil {
		amount := r.Type.SignAmount(*r.Amount)
		p.Amount = &amount
	}
	return p
}

// TransactionPayload is the transaction body of the remote API (create and update).
type TransactionPayload struct {
	Amount      *float64 `json:"amount,omitempty"`
	Description *string  `json:"description,omitempty"`
	CategoryID  *string  `json:"categoryId,omitempty"`
}

func validateAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ErrValidation{Field: "amount", Message: "must be a finite number"}
	}
	if v == 0 {
		return &ErrValidation{Field: "amount", Message: "must not be zero"}
	}
	return nil
}

// ============================================================
// Category requests
// ============================================================

// CreateCategoryRequest is the body for POST /v1/accounts/{accountId}/categories.
type CreateCategoryRequest struct {
	Name        string          `json:"name"`
	Domain      TransactionType `json:"domain"`
	Description string          `json:"description,omitempty"`
}

func (r *CreateCategoryRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return &ErrValidation{Field: "name", Message: "required"}
	}
	if !r.Domain.Valid() {
		return &ErrValidation{Field: "domain", Message: "must be INCOME or EXPENSE"}
	}
	r.Description = strings.TrimSpace(r.Description)
	return nil
}

// UpdateCategoryRequest is the body for PUT .../categories/{categoryId}.
type UpdateCategoryRequest struct {
	Name        *string          `json:"name,omitempty"`
	Domain      *TransactionType `json:"domain,omitempty"`
	Description *string          `json:"description,omitempty"`
}

func (r *UpdateCategoryRequest) Validate() error {
	if r.Name == nil && r.Domain == nil && r.Description == nil {
		return &ErrValidation{Field: "body", Message: "nothing to update"}
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return &ErrValidation{Field: "name", Message: "must not be empty"}
	}
	if r.Domain != nil && !r.Domain.Valid() {
		return &ErrValidation{Field: "domain", Message: "must be INCOME or EXPENSE"}
	}
	return nil
}

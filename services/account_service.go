package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"

	"ticket-booking/internal/status"
)

// AccountService holds the account-lookup helpers that the platform exposed
// as stored procedures, reimplemented as direct queries on the auth
// collection.
type AccountService struct {
	app *pocketbase.PocketBase
}

func NewAccountService(app *pocketbase.PocketBase) *AccountService {
	return &AccountService{app: app}
}

// FindUserEmailByPhone resolves a phone number to the account email, used by
// the transfer flow so senders can pick recipients by phone.
func (s *AccountService) FindUserEmailByPhone(ctx context.Context, phone string) (string, error) {
	if phone == "" {
		return "", fmt.Errorf("phone is required: %w", status.ErrValidation)
	}

	var row struct {
		Email string `db:"email"`
	}
	err := s.app.DB().
		NewQuery("SELECT email FROM users WHERE phone = {:phone} LIMIT 1").
		Bind(dbx.Params{"phone": phone}).
		One(&row)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("no account with phone %s: %w", phone, status.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("lookup phone %s: %w", phone, err)
	}

	return row.Email, nil
}

// FindUserByEmail resolves an email to the account id, used to address
// transfers.
func (s *AccountService) FindUserByEmail(ctx context.Context, email string) (string, error) {
	record, err := s.app.FindAuthRecordByEmail("users", email)
	if err != nil {
		return "", fmt.Errorf("no account with email %s: %w", email, status.ErrNotFound)
	}
	return record.Id, nil
}

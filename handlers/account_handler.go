package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"ticket-booking/services"
)

type AccountHandler struct {
	app      *pocketbase.PocketBase
	accounts *services.AccountService
}

func NewAccountHandler(app *pocketbase.PocketBase, accounts *services.AccountService) *AccountHandler {
	return &AccountHandler{
		app:      app,
		accounts: accounts,
	}
}

// EmailByPhone - resolve a phone number to an account email, used by the
// transfer form to pick recipients
func (h *AccountHandler) EmailByPhone(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	phone := e.Request.URL.Query().Get("phone")
	if !validPhone(phone) {
		return apis.NewBadRequestError("Invalid phone format", nil)
	}

	email, err := h.accounts.FindUserEmailByPhone(e.Request.Context(), phone)
	if err != nil {
		return toApiError(err)
	}

	return respond(e, http.StatusOK, map[string]string{
		"email": email,
	})
}

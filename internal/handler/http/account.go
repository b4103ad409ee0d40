package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ablecorp/abuelo/internal/logger"
	"github.com/ablecorp/abuelo/internal/service"
	"github.com/ablecorp/abuelo/internal/store"
	"github.com/ablecorp/abuelo/internal/utils"
	"github.com/ablecorp/abuelo/models"
	"github.com/go-chi/chi/v5"
)

// Response messages of the public API. Credential failures deliberately use
// one message for unknown user and wrong password so callers cannot tell the
// cases apart.
const (
	msgUsernameTaken      = "Username was taken"
	msgAuthInvalid        = "Username or Password is invalid"
	msgAccountNotCreated  = "Error creating account"
	msgUserNotFound       = "User not found"
	msgHandleNotCreated   = "Failed to create handle"
	msgInvalidJSONPayload = "Invalid JSON was passed"
)

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, msgInvalidJSONPayload, http.StatusBadRequest)
		return
	}

	_, err := h.services.AccountService.CreateAccount(ctx, credentials.Username, credentials.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameTaken):
			log.Err(err).Str("username", credentials.Username).Msg("username already exists")
			utils.WriteJSON(w, models.CreateAccountResponse{Success: false, Message: msgUsernameTaken}, http.StatusOK)
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteJSON(w, models.CreateAccountResponse{Success: false, Message: err.Error()}, http.StatusOK)
		default:
			log.Err(err).Msg("unexpected error occurred during account creation")
			utils.WriteJSON(w, models.CreateAccountResponse{Success: false, Message: msgAccountNotCreated}, http.StatusOK)
		}
		return
	}

	log.Debug().Str("username", credentials.Username).Msg("account created")

	utils.WriteJSON(w, models.CreateAccountResponse{Success: true, Message: ""}, http.StatusOK)
}

func (h *Handler) authUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, msgInvalidJSONPayload, http.StatusBadRequest)
		return
	}

	ok, err := h.services.AccountService.VerifyLogin(ctx, credentials.Username, credentials.Password)
	if err != nil {
		// store failures are swallowed into an ordinary auth rejection so
		// the response never hints at backend state
		log.Err(err).Msg("credential verification failed")
		utils.WriteJSON(w, models.AuthResponse{Success: false, Message: msgAuthInvalid}, http.StatusOK)
		return
	}
	if !ok {
		log.Info().Str("username", credentials.Username).Msg("failed to auth user")
		utils.WriteJSON(w, models.AuthResponse{Success: false, Message: msgAuthInvalid}, http.StatusOK)
		return
	}

	account, err := h.services.AccountService.GetAccount(ctx, credentials.Username)
	if err != nil {
		log.Err(err).Msg("account lookup after successful login failed")
		utils.WriteJSON(w, models.AuthResponse{Success: false, Message: msgUserNotFound}, http.StatusOK)
		return
	}

	handle, err := h.services.HandleService.Mint(ctx, account)
	if err != nil {
		log.Err(err).Msg("handle minting failed")
		utils.WriteJSON(w, models.AuthResponse{Success: false, Message: msgHandleNotCreated}, http.StatusOK)
		return
	}

	log.Debug().Int64("user_id", account.UserID).Msg("user successfully logged in")

	utils.WriteJSON(w, models.AuthResponse{Success: true, Message: "", Handle: &handle.Value}, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username := chi.URLParam(r, "username")

	account, err := h.services.AccountService.GetAccount(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("account lookup failed")
		utils.WriteJSON(w, models.AccountResponse{Success: false, Message: msgUserNotFound}, http.StatusOK)
		return
	}

	utils.WriteJSON(w, models.AccountResponse{
		Success:      true,
		Message:      "",
		CreationTime: &account.CreatedAt,
		Premium:      &account.Premium,
	}, http.StatusOK)
}

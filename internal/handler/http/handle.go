package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ablecorp/abuelo/internal/logger"
	"github.com/ablecorp/abuelo/internal/utils"
	"github.com/ablecorp/abuelo/models"
	"github.com/go-chi/chi/v5"
)

const (
	msgHandleCredsInvalid = "Invalid username or password"
	msgHandleCreated      = "Handle created successfully"
	msgHandleDeleted      = "Handle deleted successfully"
	msgHandleNotFound     = "Handle not found"
	msgHandleNotOwned     = "This handle does not belong to the user"
	msgHandlesNotListed   = "Error retrieving handles"
	msgHandleNotDeleted   = "Error deleting handle"
)

func (h *Handler) getUserHandles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username := chi.URLParam(r, "username")

	account, err := h.services.AccountService.GetAccount(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("account lookup failed")
		utils.WriteJSON(w, models.HandlesResponse{
			Success: false,
			Message: fmt.Sprintf("%s: %s", msgUserNotFound, username),
		}, http.StatusOK)
		return
	}

	handles, err := h.services.HandleService.HandlesForAccount(ctx, account.UserID)
	if err != nil {
		log.Err(err).Int64("user_id", account.UserID).Msg("listing handles failed")
		utils.WriteJSON(w, models.HandlesResponse{Success: false, Message: msgHandlesNotListed}, http.StatusOK)
		return
	}

	values := make([]uint64, 0, len(handles))
	for _, handle := range handles {
		values = append(values, handle.Value)
	}

	utils.WriteJSON(w, models.HandlesResponse{Success: true, Message: "", Handles: values}, http.StatusOK)
}

func (h *Handler) createHandle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, msgInvalidJSONPayload, http.StatusBadRequest)
		return
	}

	account, ok := h.verifyCredentials(w, r, credentials.Username, credentials.Password)
	if !ok {
		return
	}

	handle, err := h.services.HandleService.Mint(ctx, account)
	if err != nil {
		log.Err(err).Int64("user_id", account.UserID).Msg("handle minting failed")
		utils.WriteJSON(w, models.AuthResponse{Success: false, Message: msgHandleNotCreated}, http.StatusOK)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{Success: true, Message: msgHandleCreated, Handle: &handle.Value}, http.StatusOK)
}

func (h *Handler) deleteHandle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.DeleteHandleRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, msgInvalidJSONPayload, http.StatusBadRequest)
		return
	}

	account, ok := h.verifyCredentials(w, r, request.Username, request.Password)
	if !ok {
		return
	}

	owned, err := h.services.HandleService.IsOwnedBy(ctx, request.Handle, account.UserID)
	if err != nil {
		log.Err(err).Msg("handle ownership check failed")
		utils.WriteJSON(w, models.AuthResponse{Success: false, Message: msgHandleNotDeleted}, http.StatusOK)
		return
	}
	if !owned {
		utils.WriteJSON(w, models.AuthResponse{Success: false, Message: msgHandleNotOwned}, http.StatusOK)
		return
	}

	removed, err := h.services.HandleService.Delete(ctx, request.Handle, account.UserID)
	if err != nil {
		log.Err(err).Msg("handle deletion failed")
		utils.WriteJSON(w, models.AuthResponse{Success: false, Message: msgHandleNotDeleted}, http.StatusOK)
		return
	}
	if !removed {
		utils.WriteJSON(w, models.AuthResponse{Success: false, Message: msgHandleNotFound}, http.StatusOK)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{Success: true, Message: msgHandleDeleted, Handle: &request.Handle}, http.StatusOK)
}

// verifyCredentials re-checks the supplied username/password pair and loads
// the owning account. On any rejection it writes the envelope itself and
// reports false; the caller must then return without writing.
func (h *Handler) verifyCredentials(w http.ResponseWriter, r *http.Request, username, password string) (models.Account, bool) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ok, err := h.services.AccountService.VerifyLogin(ctx, username, password)
	if err != nil {
		log.Err(err).Msg("credential verification failed")
		utils.WriteJSON(w, models.AuthResponse{Success: false, Message: msgHandleCredsInvalid}, http.StatusOK)
		return models.Account{}, false
	}
	if !ok {
		log.Info().Str("username", username).Msg("credential verification rejected")
		utils.WriteJSON(w, models.AuthResponse{Success: false, Message: msgHandleCredsInvalid}, http.StatusOK)
		return models.Account{}, false
	}

	account, err := h.services.AccountService.GetAccount(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("account lookup after verification failed")
		utils.WriteJSON(w, models.AuthResponse{Success: false, Message: msgUserNotFound}, http.StatusOK)
		return models.Account{}, false
	}

	return account, true
}

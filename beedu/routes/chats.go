package routes

import (
	"beedu/beedu/controllers"
	"beedu/beedu/middlewares"
	"beedu/beedu/services/token"
	"beedu/beedu/types"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ChatsRoutes is the authenticated transcript surface: save one exchange,
// list your own history.
func ChatsRoutes(ctrl *controllers.ChatController, issuer *token.Issuer) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.RequireAuth(issuer))

	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requestUserID(r)
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		var req types.SaveChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := ctrl.SaveChat(r.Context(), userID, req); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requestUserID(r)
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		chats, err := ctrl.ListChats(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"chats": chats})
	})

	return r
}

func requestUserID(r *http.Request) (uuid.UUID, bool) {
	raw, ok := middlewares.UserID(r.Context())
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

package routes

import (
	"beedu/beedu/controllers"
	"beedu/beedu/middlewares"
	"beedu/beedu/services/token"
	"beedu/beedu/types"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(ctrl *controllers.AuthController, issuer *token.Issuer) chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", func(w http.ResponseWriter, r *http.Request) {
		var req types.SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		resp, err := ctrl.Signup(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		resp, err := ctrl.Login(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	// /me answers straight from the verified token, so it keeps working
	// while the database is down.
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.RequireAuth(issuer))
		gr.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			id, _ := middlewares.UserID(r.Context())
			email, _ := middlewares.Email(r.Context())
			writeJSON(w, http.StatusOK, types.UserInfo{ID: id, Email: email})
		})
	})

	return r
}

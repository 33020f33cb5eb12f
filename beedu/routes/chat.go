package routes

import (
	"beedu/beedu/controllers"
	"beedu/beedu/middlewares"
	"beedu/beedu/services/token"
	"beedu/beedu/types"
	"beedu/beedu/utils/logging"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChatRoutes is the guest-capable ask surface. Persistence happens only for
// authenticated callers who did not opt out with ?guest=1, and a persist
// failure never changes the response.
func ChatRoutes(ctrl *controllers.ChatController, issuer *token.Issuer) chi.Router {
	r := chi.NewRouter()

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.OptionalAuth(issuer))
		gr.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req types.ChatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeDetail(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			result, err := ctrl.Ask(r.Context(), req.Question)
			if err != nil {
				writeError(w, err)
				return
			}
			if r.URL.Query().Get("guest") != "1" {
				if userID, ok := requestUserID(r); ok {
					persistExchange(r, ctrl, userID, req.Question, result)
				}
			}
			writeJSON(w, http.StatusOK, result)
		})
	})

	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return
		}
		var req types.WSChatRequest
		if err := json.Unmarshal(data, &req); err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid json"}`))
			return
		}

		stream, err := ctrl.AskStream(ctx, req.Question)
		if err != nil {
			frame, _ := json.Marshal(types.ChatResult{Error: err.Error()})
			conn.Write(ctx, websocket.MessageText, frame)
			conn.Close(websocket.StatusNormalClosure, "")
			return
		}

		var full strings.Builder
		for chunk := range stream {
			full.WriteString(chunk)
			if err := conn.Write(ctx, websocket.MessageText, []byte(chunk)); err != nil {
				return
			}
		}

		if !req.Guest && req.Token != "" {
			if claims, err := issuer.Verify(req.Token); err == nil {
				if userID, err := uuid.Parse(claims.Subject); err == nil {
					persistExchange(r, ctrl, userID, req.Question, types.ChatResult{Answer: full.String()})
				}
			}
		}
		conn.Close(websocket.StatusNormalClosure, "")
	})

	return r
}

func persistExchange(r *http.Request, ctrl *controllers.ChatController, userID uuid.UUID, question string, result types.ChatResult) {
	err := ctrl.SaveChat(r.Context(), userID, types.SaveChatRequest{
		Question: question,
		Answer:   result.Answer,
		Error:    result.Error,
	})
	if err != nil {
		logging.ErrorLogger.Error("chat persist failed", zap.Error(err))
	}
}

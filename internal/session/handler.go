package session

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/inamate/transformlab/internal/document"
	"github.com/inamate/transformlab/internal/lab"
	"github.com/inamate/transformlab/internal/typeid"
)

// Handler upgrades GET /ws/lab to a live lab session.
type Handler struct {
	service        *lab.Service
	originPatterns []string
}

func NewHandler(service *lab.Service, originPatterns []string) *Handler {
	return &Handler{service: service, originPatterns: originPatterns}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	sessionID := typeid.NewSessionID()
	label := "anon-" + uuid.New().String()[:8]
	client := NewClient(h.service, conn, sessionID, label)

	client.sendPayload(TypeWelcome, 0, WelcomePayload{
		SessionID:       sessionID,
		Points:          document.DefaultPointsText,
		Transformations: document.Defaults(),
	})
	slog.Info("session opened", "session", sessionID, "client", label)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)

	slog.Info("session closed", "session", sessionID, "client", label)
}

package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/scrabble-backend/internal/room"
)

type Server struct {
	logger   *slog.Logger
	rooms    *room.Registry
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, rooms *room.Registry) *Server {
	return &Server{
		logger: logger.With("component", "websocket-server"),
		rooms:  rooms,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Routes builds the WebSocket router.
func (that *Server) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/ws/{roomID}", that.handleConnection)

	return router
}

// Start runs the WebSocket server until the context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	that.logger.Info("starting WebSocket server", "port", port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleConnection")

	roomID := chi.URLParam(r, "roomID")

	found, ok := that.rooms.Find(roomID)
	if !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("failed to upgrade connection", "error", err)
		return
	}

	name := r.URL.Query().Get("name")
	token := r.URL.Query().Get("token")

	joinedAs, err := found.Join(conn, name, token)
	if err != nil {
		that.rejectJoin(conn, err)
		return
	}

	log.Info("player connected", "roomID", roomID, "name", joinedAs)

	that.readLoop(found, conn, joinedAs)
}

// readLoop pumps inbound frames into the room until the connection dies.
func (that *Server) readLoop(joined *room.Room, conn *websocket.Conn, name string) {
	log := that.logger.With("method", "readLoop", "roomID", joined.ID(), "name", name)

	defer func() {
		joined.Leave(conn)
		_ = conn.Close()
	}()

	for {
		var envelope room.Envelope
		if err := conn.ReadJSON(&envelope); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}

		joined.HandleAction(conn, envelope)
	}
}

func (that *Server) rejectJoin(conn *websocket.Conn, joinErr error) {
	payload := map[string]any{
		"action":  "error",
		"message": map[string]string{"message": joinErr.Error()},
	}
	if err := conn.WriteJSON(payload); err != nil {
		that.logger.Warn("failed to send join error", "error", err)
	}

	_ = conn.Close()
}

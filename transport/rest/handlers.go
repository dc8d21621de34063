package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/scrabble-backend/internal/apperror"
	"github.com/rocketscienceinc/scrabble-backend/internal/dictionary"
	"github.com/rocketscienceinc/scrabble-backend/internal/room"
	"github.com/rocketscienceinc/scrabble-backend/internal/service"
)

type definer interface {
	Define(ctx context.Context, word string) (string, error)
}

type Handler struct {
	logger *slog.Logger

	rooms   *room.Registry
	checker dictionary.Checker
	definer definer
	auth    service.AuthService
	stats   service.StatsService
}

func NewHandler(logger *slog.Logger, rooms *room.Registry, checker dictionary.Checker, definer definer, auth service.AuthService, stats service.StatsService) *Handler {
	return &Handler{
		logger:  logger.With("component", "rest-handler"),
		rooms:   rooms,
		checker: checker,
		definer: definer,
		auth:    auth,
		stats:   stats,
	}
}

// Routes builds the HTTP API router.
func (that *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/ping", that.Ping)

	router.Route("/api", func(api chi.Router) {
		api.Post("/room/create", that.CreateRoom)
		api.Get("/room/exists", that.RoomExists)
		api.Get("/room/opened", that.OpenedRooms)

		api.Get("/dictionary/check", that.CheckWord)

		api.Post("/auth/register", that.Register)
		api.Post("/auth/login", that.Login)

		api.Get("/stats/{name}", that.Stats)
	})

	return router
}

func (that *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

type createRoomRequest struct {
	ID         string `json:"id,omitempty"`
	Visibility string `json:"visibility,omitempty"`
}

func (that *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "CreateRoom")

	var req createRoomRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = room.VisibilityPublic
	}
	if visibility != room.VisibilityPublic && visibility != room.VisibilityPrivate {
		writeError(w, http.StatusBadRequest, "unknown visibility")
		return
	}

	created, err := that.rooms.Create(req.ID, visibility)
	if errors.Is(err, apperror.ErrRoomExists) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		log.Error("failed to create room", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": created.ID()})
}

type roomExistsResponse struct {
	Exists bool   `json:"exists"`
	State  string `json:"state,omitempty"`
	Paused bool   `json:"paused,omitempty"`
}

func (that *Handler) RoomExists(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	found, ok := that.rooms.Find(id)
	if !ok {
		writeJSON(w, http.StatusOK, roomExistsResponse{Exists: false})
		return
	}

	writeJSON(w, http.StatusOK, roomExistsResponse{
		Exists: true,
		State:  found.State(),
		Paused: found.IsPaused(),
	})
}

type openedRoomResponse struct {
	ID       string `json:"id"`
	Host     string `json:"host"`
	Players  int    `json:"players"`
	Capacity int    `json:"capacity"`
}

func (that *Handler) OpenedRooms(w http.ResponseWriter, _ *http.Request) {
	opened := make([]openedRoomResponse, 0)
	for _, candidate := range that.rooms.PublicJoinable() {
		opened = append(opened, openedRoomResponse{
			ID:       candidate.ID(),
			Host:     candidate.Host(),
			Players:  candidate.PlayerCount(),
			Capacity: room.Capacity,
		})
	}

	writeJSON(w, http.StatusOK, opened)
}

type checkWordResponse struct {
	Word       string `json:"word"`
	Valid      bool   `json:"valid"`
	Definition string `json:"definition,omitempty"`
}

func (that *Handler) CheckWord(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "CheckWord")

	word := r.URL.Query().Get("word")
	if word == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}

	resp := checkWordResponse{Word: word, Valid: that.checker.IsValid(word)}

	if resp.Valid && r.URL.Query().Get("definition") == "true" {
		definition, err := that.definer.Define(r.Context(), word)
		if err != nil {
			log.Warn("failed to fetch definition", "word", word, "error", err)
		} else {
			resp.Definition = definition
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (that *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Register")

	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := that.auth.Register(r.Context(), req.Name, req.Password)
	if errors.Is(err, apperror.ErrUserExists) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		log.Error("failed to register user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func (that *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Login")

	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := that.auth.Login(r.Context(), req.Name, req.Password)
	if errors.Is(err, apperror.ErrWrongPassword) || errors.Is(err, apperror.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "wrong name or password")
		return
	}
	if err != nil {
		log.Error("failed to log in user", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (that *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Stats")

	name := chi.URLParam(r, "name")

	user, err := that.stats.GetStats(r.Context(), name)
	if errors.Is(err, apperror.ErrNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		log.Error("failed to get stats", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.Name == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name and password are required")
		return req, false
	}

	return req, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrGameRunning      = errors.New("game is already running")
	ErrGamePaused       = errors.New("game is paused")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrNotEnoughPlayers = errors.New("not enough players to start")

	ErrRoomFull     = errors.New("room is full")
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomExists   = errors.New("room id already in use")
	ErrNameTaken    = errors.New("name is already taken")
	ErrInvalidToken = errors.New("invalid reconnection token")
	ErrNotInRoom    = errors.New("player is not in this room")

	ErrNotFound      = errors.New("not found")
	ErrUserExists    = errors.New("user already exists")
	ErrWrongPassword = errors.New("wrong password")
)

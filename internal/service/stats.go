package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/scrabble-backend/internal/apperror"
	"github.com/rocketscienceinc/scrabble-backend/internal/entity"
	"github.com/rocketscienceinc/scrabble-backend/internal/game"
)

type StatsService interface {
	RecordGameResult(ctx context.Context, result *game.Result, moves []entity.Move)
	GetStats(ctx context.Context, name string) (*entity.User, error)
}

type statsUserRepo interface {
	Find(ctx context.Context, name string) (*entity.User, error)
	UpdateStats(ctx context.Context, user *entity.User) error
}

type statsService struct {
	logger   *slog.Logger
	userRepo statsUserRepo
}

func NewStatsService(logger *slog.Logger, userRepo statsUserRepo) StatsService {
	return &statsService{
		logger:   logger.With("component", "stats-service"),
		userRepo: userRepo,
	}
}

// RecordGameResult updates the stats of every registered participant.
// Guests have no user row and are skipped silently.
func (that *statsService) RecordGameResult(ctx context.Context, result *game.Result, moves []entity.Move) {
	if result == nil {
		return
	}

	bestWords := bestWordsByPlayer(moves)

	for name, points := range result.Players {
		user, err := that.userRepo.Find(ctx, name)
		if errors.Is(err, apperror.ErrNotFound) {
			continue
		}
		if err != nil {
			that.logger.Error("failed to load user", "name", name, "error", err)
			continue
		}

		user.Games++
		if name == result.Winner {
			user.Wins++
		}
		if points > user.BestScore {
			user.BestScore = points
		}
		if best, ok := bestWords[name]; ok && len(best.Word) > len(user.BestWord) {
			user.BestWord = best.Word
		}

		if err = that.userRepo.UpdateStats(ctx, user); err != nil {
			that.logger.Error("failed to update stats", "name", name, "error", err)
		}
	}
}

func (that *statsService) GetStats(ctx context.Context, name string) (*entity.User, error) {
	user, err := that.userRepo.Find(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not get user stats: %w", err)
	}

	return user, nil
}

func bestWordsByPlayer(moves []entity.Move) map[string]entity.PlacedWord {
	best := make(map[string]entity.PlacedWord)

	for _, move := range moves {
		if move.Kind != entity.MovePlace {
			continue
		}
		for _, word := range move.Words {
			if current, ok := best[move.Actor]; !ok || len(word.Word) > len(current.Word) {
				best[move.Actor] = word
			}
		}
	}

	return best
}

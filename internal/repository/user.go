package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/scrabble-backend/internal/apperror"
	"github.com/rocketscienceinc/scrabble-backend/internal/entity"
)

type UserRepository interface {
	Save(ctx context.Context, user *entity.User) error
	Find(ctx context.Context, name string) (*entity.User, error)
	UpdateStats(ctx context.Context, user *entity.User) error
}

type userRepository struct {
	conn *sql.DB
}

func NewUserRepository(conn *sql.DB) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (that *userRepository) Save(ctx context.Context, user *entity.User) error {
	query := `INSERT INTO users (name, password_hash) VALUES (?, ?)`

	_, err := that.conn.ExecContext(ctx, query, user.Name, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("can't save user: %w", err)
	}

	return nil
}

func (that *userRepository) Find(ctx context.Context, name string) (*entity.User, error) {
	query := `SELECT name, password_hash, games, wins, best_score, best_word FROM users WHERE name = ?`

	var user entity.User

	err := that.conn.QueryRowContext(ctx, query, name).
		Scan(&user.Name, &user.PasswordHash, &user.Games, &user.Wins, &user.BestScore, &user.BestWord)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find user: %w", err)
	}

	return &user, nil
}

func (that *userRepository) UpdateStats(ctx context.Context, user *entity.User) error {
	query := `UPDATE users SET games = ?, wins = ?, best_score = ?, best_word = ? WHERE name = ?`

	_, err := that.conn.ExecContext(ctx, query, user.Games, user.Wins, user.BestScore, user.BestWord, user.Name)
	if err != nil {
		return fmt.Errorf("can't update user stats: %w", err)
	}

	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/rocketscienceinc/scrabble-backend/internal/apperror"
	"github.com/rocketscienceinc/scrabble-backend/internal/entity"
)

type AuthService interface {
	Register(ctx context.Context, name, password string) (string, error)
	Login(ctx context.Context, name, password string) (string, error)
}

type authUserRepo interface {
	Save(ctx context.Context, user *entity.User) error
	Find(ctx context.Context, name string) (*entity.User, error)
}

type authService struct {
	userRepo  authUserRepo
	secretKey string
}

func NewAuthService(userRepo authUserRepo, secretKey string) AuthService {
	return &authService{
		userRepo:  userRepo,
		secretKey: secretKey,
	}
}

func (that *authService) Register(ctx context.Context, name, password string) (string, error) {
	_, err := that.userRepo.Find(ctx, name)
	if err == nil {
		return "", apperror.ErrUserExists
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return "", fmt.Errorf("could not check user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Name: name, PasswordHash: string(hash)}
	if err = that.userRepo.Save(ctx, user); err != nil {
		return "", fmt.Errorf("could not save user: %w", err)
	}

	return that.generateToken(name)
}

func (that *authService) Login(ctx context.Context, name, password string) (string, error) {
	user, err := that.userRepo.Find(ctx, name)
	if err != nil {
		return "", fmt.Errorf("could not get user: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperror.ErrWrongPassword
	}

	return that.generateToken(name)
}

func (that *authService) generateToken(name string) (string, error) {
	claims := jwt.MapClaims{}
	claims["name"] = name
	claims["exp"] = time.Now().Add(time.Hour * 24).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(that.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

package controllers

import (
	"beedu/beedu/services/token"
	"beedu/beedu/sources/psql/dao"
	"beedu/beedu/types"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthController struct {
	userDAO *dao.UserDAO
	issuer  *token.Issuer
}

func NewAuthController(userDAO *dao.UserDAO, issuer *token.Issuer) *AuthController {
	return &AuthController{
		userDAO: userDAO,
		issuer:  issuer,
	}
}

// Emails compare case-insensitively, so they are stored folded.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (c *AuthController) Signup(ctx context.Context, req types.SignupRequest) (*types.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	existing, err := c.userDAO.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, dao.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := c.userDAO.CreateUser(ctx, email, string(hash))
	if err != nil {
		return nil, err
	}
	return c.respond(user.ID, user.Email)
}

func (c *AuthController) Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := c.userDAO.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return c.respond(user.ID, user.Email)
}

func (c *AuthController) respond(id uuid.UUID, email string) (*types.AuthResponse, error) {
	tok, err := c.issuer.Issue(id.String(), email)
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{
		Token: tok,
		User:  types.UserInfo{ID: id.String(), Email: email},
	}, nil
}

package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/verdora/verdora-backend/internal/apierr"
	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/repos"
	"github.com/verdora/verdora-backend/internal/requestdata"
	"github.com/verdora/verdora-backend/internal/types"
	"github.com/verdora/verdora-backend/internal/utils"
)

type AuthService interface {
	RegisterUser(ctx context.Context, email, username, password string) (*types.User, error)
	LoginUser(ctx context.Context, email, password string) (string, *types.User, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
	return &authService{
		db:           db,
		log:          log.With("service", "AuthService"),
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, email, username, password string) (*types.User, error) {
	email = utils.NormalizeEmail(email)
	username = utils.ParseInputString(username)

	if email == "" {
		return nil, apierr.InvalidFilterValue(fmt.Errorf("an email is required to register"))
	}
	if username == "" {
		return nil, apierr.InvalidFilterValue(fmt.Errorf("a username is required to register"))
	}
	if password == "" {
		return nil, apierr.InvalidFilterValue(fmt.Errorf("a password is required to register"))
	}

	emailExists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, err
	}
	if emailExists {
		return nil, apierr.StoreConstraintViolation(fmt.Errorf("email already registered"))
	}
	usernameExists, err := as.userRepo.UsernameExists(ctx, nil, username)
	if err != nil {
		return nil, err
	}
	if usernameExists {
		return nil, apierr.StoreConstraintViolation(fmt.Errorf("username already taken"))
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &types.User{
		Email:          email,
		Username:       username,
		HashedPassword: hashed,
		CreatedAt:      time.Now().UTC(),
	}
	// The unique indexes are the authority; the pre-checks above only give
	// friendlier messages. A racing duplicate still maps to the same error.
	if err := as.userRepo.Create(ctx, nil, user); err != nil {
		return nil, repos.MapError(err)
	}
	return user, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, *types.User, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, apierr.Unauthorized(fmt.Errorf("email and password are required"))
	}

	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !utils.VerifyPassword(user.HashedPassword, password) {
		return "", nil, apierr.Unauthorized(fmt.Errorf("invalid email or password"))
	}

	now := time.Now().UTC()
	if err := as.userRepo.TouchLastLogin(ctx, nil, user.ID, now); err != nil {
		as.log.Warn("Failed to update last login", "user_id", user.ID, "error", err)
	} else {
		user.LastLogin = &now
	}

	token, err := as.generateAccessToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, user, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apierr.Unauthorized(fmt.Errorf("missing token"))
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, apierr.Unauthorized(fmt.Errorf("failed to parse token: %w", err))
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return ctx, apierr.Unauthorized(fmt.Errorf("invalid or expired token"))
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return ctx, apierr.Unauthorized(fmt.Errorf("invalid user id in token"))
	}

	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		rd = &requestdata.RequestData{}
		ctx = requestdata.WithRequestData(ctx, rd)
	}
	rd.UserID = uint(userID)
	rd.TokenString = tokenString
	return ctx, nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

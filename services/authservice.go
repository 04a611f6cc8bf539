package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/mail"
	"strings"
	"time"

	"taskflow/apperror"
	"taskflow/dto"
	"taskflow/logging"
	"taskflow/model"
	"taskflow/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthConfig struct {
	AdminInviteToken    string
	BcryptCost          int
	DefaultProfileImage string
}

// AuthService registers and authenticates users and resolves bearer tokens
// to live user records.
type AuthService struct {
	users   store.UserStore
	tokens  *TokenService
	captcha CaptchaVerifier
	cfg     AuthConfig
	// dummyHash is compared against when the email is unknown so both login
	// failures run one bcrypt comparison.
	dummyHash []byte
	now       func() time.Time
	newID     func() string
}

// NewAuthService builds the service. captcha may be nil to disable the
// registration guard.
func NewAuthService(users store.UserStore, tokens *TokenService, captcha CaptchaVerifier, cfg AuthConfig) (*AuthService, error) {
	if cfg.BcryptCost < bcrypt.DefaultCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		users:     users,
		tokens:    tokens,
		captcha:   captcha,
		cfg:       cfg,
		dummyHash: dummy,
		now:       time.Now,
		newID:     uuid.NewString,
	}, nil
}

// ClientInfo is request metadata forwarded to the captcha assessment.
type ClientInfo struct {
	IP        string
	UserAgent string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func (s *AuthService) isAdminInvite(token string) bool {
	if token == "" || s.cfg.AdminInviteToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AdminInviteToken)) == 1
}

func (s *AuthService) Register(ctx context.Context, req dto.SignupRequest, client ClientInfo) (*model.User, string, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, "", apperror.InvalidInput("Name, email and password are required")
	}
	if !validEmail(email) {
		return nil, "", apperror.InvalidInput("Invalid email address")
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, "", apperror.Conflict("User already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", storeError(err, "User not found")
	}

	if s.captcha != nil {
		if err := s.captcha.Verify(ctx, req.CaptchaToken, CaptchaAction, client.IP, client.UserAgent); err != nil {
			return nil, "", err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	role := model.RoleMember
	if s.isAdminInvite(req.AdminInviteToken) {
		role = model.RoleAdmin
	}
	profileImage := strings.TrimSpace(req.ProfileImageURL)
	if profileImage == "" {
		profileImage = s.cfg.DefaultProfileImage
	}

	now := s.now().UTC()
	user := &model.User{
		ID:              s.newID(),
		Name:            name,
		Email:           email,
		Password:        string(hash),
		ProfileImageURL: profileImage,
		Role:            role,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, "", apperror.Conflict("User already exists")
		}
		return nil, "", storeError(err, "User not found")
	}

	token, err := s.tokens.CreateAccessToken(user.ID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	logging.Logger.WithField("user_id", user.ID).Infof("Event ID: USER_REGISTERED, Description: registered %s as %s", user.Email, user.Role)
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, req dto.SigninRequest) (*model.User, string, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, "", apperror.InvalidInput("Email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, "", storeError(err, "User not found")
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		return nil, "", apperror.NotFound("User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logging.Logger.WithField("user_id", user.ID).Warn("Event ID: LOGIN_FAILED, Description: incorrect password")
		return nil, "", apperror.New(apperror.CodeInvalidCredentials, "Incorrect password")
	}

	token, err := s.tokens.CreateAccessToken(user.ID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return user, token, nil
}

// Authenticate resolves an Authorization header to the current user. The
// user is always re-read so deleted users are rejected immediately.
func (s *AuthService) Authenticate(ctx context.Context, header string) (*model.User, error) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || token == "" || strings.Contains(token, " ") {
		return nil, apperror.Unauthorized("Not authorized, no token")
	}

	userID, err := s.tokens.ParseAccessToken(token)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeUnauthorized, "Not authorized, token failed", err)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.Unauthorized("User no longer exists")
		}
		return nil, storeError(err, "User no longer exists")
	}
	return user, nil
}

func RequireRole(user *model.User, role model.Role) error {
	if user == nil || user.Role != role {
		return apperror.Forbidden("Access denied, admin only")
	}
	return nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, "User not found")
	}
	return user, nil
}

// UpdateProfile applies the provided fields and returns the user with a
// freshly issued token.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*model.User, string, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, "", storeError(err, "User not found")
	}

	if req.Name.Set {
		name := strings.TrimSpace(req.Name.Value)
		if name == "" {
			return nil, "", apperror.InvalidInput("Name cannot be empty")
		}
		user.Name = name
	}
	if req.Email.Set {
		email := normalizeEmail(req.Email.Value)
		if !validEmail(email) {
			return nil, "", apperror.InvalidInput("Invalid email address")
		}
		user.Email = email
	}
	if req.Password.Set {
		if req.Password.Value == "" {
			return nil, "", apperror.InvalidInput("Password cannot be empty")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password.Value), s.cfg.BcryptCost)
		if err != nil {
			return nil, "", apperror.Internal(err)
		}
		user.Password = string(hash)
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, "", apperror.Conflict("Email already in use")
		}
		return nil, "", storeError(err, "User not found")
	}

	token, err := s.tokens.CreateAccessToken(user.ID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return user, token, nil
}

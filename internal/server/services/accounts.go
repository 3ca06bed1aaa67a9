// Package services contains server-side business logic on top of the storage
// facade: dashboard accounts and sessions, image uploads and third-party
// integration settings.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/contentdesk/internal/common"
	"github.com/dmitrijs2005/contentdesk/internal/cryptox"
	"github.com/dmitrijs2005/contentdesk/internal/logging"
	"github.com/dmitrijs2005/contentdesk/internal/server/config"
	"github.com/dmitrijs2005/contentdesk/internal/server/models"
	"github.com/dmitrijs2005/contentdesk/internal/server/sessions"
	"github.com/dmitrijs2005/contentdesk/internal/server/storage"
)

// SessionData is the JSON payload kept in the session store for a logged-in
// user.
type SessionData struct {
	UserID   int64     `json:"userId"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	LoginAt  time.Time `json:"loginAt"`
}

type RegisterInput struct {
	Username string `validate:"required,min=3,max=64,username"`
	Password string `validate:"required,min=8,max=256"`
	Role     string `validate:"omitempty,oneof=admin editor"`
}

// AccountService handles registration, login and the session lifecycle.
type AccountService struct {
	storage    storage.Storage
	logger     logging.Logger
	sessionTTL time.Duration

	hashPassword   func(string) string
	verifyPassword func(password, encoded string) (bool, error)
	newSessionID   func() string
	now            func() time.Time

	// compared against on unknown usernames so both paths cost one hash
	dummyHash string
}

func NewAccountService(st storage.Storage, cfg *config.Config, logger logging.Logger) *AccountService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &AccountService{
		storage:        st,
		logger:         logger.With("module", "accounts"),
		sessionTTL:     cfg.SessionTTL,
		hashPassword:   cryptox.HashPassword,
		verifyPassword: cryptox.VerifyPassword,
		newSessionID:   sessions.NewSessionID,
		now:            func() time.Time { return time.Now().UTC() },
		dummyHash:      cryptox.HashPassword("contentdesk-dummy-password"),
	}
}

func (s *AccountService) sessions() (storage.SessionStore, error) {
	store := s.storage.SessionStore()
	if store == nil {
		return nil, fmt.Errorf("%w: no session store configured", common.ErrorInternal)
	}
	return store, nil
}

// Register creates a user with a hashed password and records the action.
// actorID is the admin performing the registration, nil for bootstrap.
func (s *AccountService) Register(ctx context.Context, in RegisterInput, actorID *int64) (*models.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var created *models.User
	err := s.storage.RunInTx(ctx, func(ctx context.Context, tx storage.Storage) error {
		u, err := tx.CreateUser(ctx, models.NewUser{
			Username: in.Username,
			Password: s.hashPassword(in.Password),
			Role:     in.Role,
		})
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		created = u

		return recordActivity(ctx, tx, actorID, common.ActionUserCreate, "user",
			strconv.FormatInt(u.ID, 10), u.Username)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", created.ID, "role", created.Role)
	return created, nil
}

// Login verifies credentials, stamps the last login and opens a session.
// Unknown users and wrong passwords both yield common.ErrorUnauthorized.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	store, err := s.sessions()
	if err != nil {
		return "", nil, err
	}

	user, found, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, fmt.Errorf("error fetching user: %w", err)
	}
	if !found {
		_, _ = s.verifyPassword(password, s.dummyHash)
		return "", nil, common.ErrorUnauthorized
	}

	ok, err := s.verifyPassword(password, user.Password)
	if err != nil {
		s.logger.Error(ctx, "stored password hash is unreadable", "user_id", user.ID, "error", err)
		return "", nil, common.ErrorUnauthorized
	}
	if !ok {
		return "", nil, common.ErrorUnauthorized
	}

	updated, found, err := s.storage.UpdateUserLastLogin(ctx, user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("error updating last login: %w", err)
	}
	if !found {
		return "", nil, common.ErrorUnauthorized
	}

	payload, err := json.Marshal(SessionData{
		UserID:   updated.ID,
		Username: updated.Username,
		Role:     updated.Role,
		LoginAt:  s.now(),
	})
	if err != nil {
		return "", nil, err
	}

	sid := s.newSessionID()
	if err := store.Set(ctx, sid, payload, s.now().Add(s.sessionTTL)); err != nil {
		return "", nil, fmt.Errorf("error saving session: %w", err)
	}

	if err := recordActivity(ctx, s.storage, &updated.ID, common.ActionUserLogin, "user",
		strconv.FormatInt(updated.ID, 10), ""); err != nil {
		s.logger.Warn(ctx, "login not recorded", "user_id", updated.ID, "error", err)
	}

	return sid, updated, nil
}

func (s *AccountService) readSession(ctx context.Context, store storage.SessionStore, sid string) (*SessionData, bool, error) {
	raw, found, err := store.Get(ctx, sid)
	if err != nil || !found {
		return nil, false, err
	}

	var data SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Warn(ctx, "discarding unreadable session", "error", err)
		return nil, false, nil
	}
	return &data, true, nil
}

// CurrentUser resolves sid to its user and slides the session expiry.
// An unknown or expired session, or one whose user was deleted, reports
// found == false.
func (s *AccountService) CurrentUser(ctx context.Context, sid string) (*models.User, bool, error) {
	store, err := s.sessions()
	if err != nil {
		return nil, false, err
	}

	data, found, err := s.readSession(ctx, store, sid)
	if err != nil || !found {
		return nil, false, err
	}

	user, found, err := s.storage.GetUser(ctx, data.UserID)
	if err != nil {
		return nil, false, fmt.Errorf("error fetching user: %w", err)
	}
	if !found {
		if err := store.Destroy(ctx, sid); err != nil {
			s.logger.Warn(ctx, "orphan session not destroyed", "error", err)
		}
		return nil, false, nil
	}

	if _, err := store.Touch(ctx, sid, s.now().Add(s.sessionTTL)); err != nil {
		s.logger.Warn(ctx, "session not touched", "error", err)
	}

	return user, true, nil
}

// Logout destroys sid. Logging out an unknown session is a no-op.
func (s *AccountService) Logout(ctx context.Context, sid string) error {
	store, err := s.sessions()
	if err != nil {
		return err
	}

	data, found, err := s.readSession(ctx, store, sid)
	if err != nil {
		return fmt.Errorf("error reading session: %w", err)
	}

	if err := store.Destroy(ctx, sid); err != nil {
		return fmt.Errorf("error destroying session: %w", err)
	}

	if found {
		if err := recordActivity(ctx, s.storage, &data.UserID, common.ActionUserLogout, "user",
			strconv.FormatInt(data.UserID, 10), ""); err != nil {
			s.logger.Warn(ctx, "logout not recorded", "user_id", data.UserID, "error", err)
		}
	}
	return nil
}

// EnsureAdmin creates an admin account unless a user with that name exists.
// It reports whether a user was created. Empty credentials are a no-op.
func (s *AccountService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	_, found, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("error fetching user: %w", err)
	}
	if found {
		return false, nil
	}

	_, err = s.Register(ctx, RegisterInput{Username: username, Password: password, Role: common.RoleAdmin}, nil)
	if err != nil {
		// another instance won the race
		if errors.Is(err, common.ErrorConstraintViolation) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

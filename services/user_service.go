package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/tesabel/mobileAppDevTeam25/internal/clock"
	"github.com/tesabel/mobileAppDevTeam25/internal/storage"
	"github.com/tesabel/mobileAppDevTeam25/internal/types/user"
)

var (
	// ErrUserNotFound is returned when no user document exists for the uid.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidUser is returned for malformed register/update input.
	ErrInvalidUser = errors.New("invalid user input")
)

// UserService owns the users/{uid} documents. Authentication itself is
// Firebase's job; this service only manages the profile record that
// carries lastUpdatedDate for the session date gate.
type UserService struct {
	store storage.Store
	clock clock.Clock
}

func NewUserService(store storage.Store, clk clock.Clock) *UserService {
	return &UserService{store: store, clock: clk}
}

// Register creates the user document at sign-up. lastUpdatedDate is
// seeded to today so the first session never backfills.
func (s *UserService) Register(ctx context.Context, uid string, req *user.RegisterRequest) (*user.User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidUser)
	}

	u := &user.User{
		UID:             uid,
		Name:            strings.TrimSpace(req.Name),
		LastUpdatedDate: s.clock.Today(),
	}
	if err := s.store.SetUser(ctx, u); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	log.Printf("UserService: registered user %s (lastUpdatedDate=%s)", uid, u.LastUpdatedDate)
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, uid string) (*user.User, error) {
	u, err := s.store.GetUser(ctx, uid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpdateProfile changes the display name. lastUpdatedDate is untouched
// here: only the session gate moves it.
func (s *UserService) UpdateProfile(ctx context.Context, uid string, req *user.UpdateProfileRequest) (*user.User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidUser)
	}

	u, err := s.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	u.Name = strings.TrimSpace(req.Name)
	if err := s.store.SetUser(ctx, u); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

// DeleteAccount removes the user document and all habit data beneath it.
func (s *UserService) DeleteAccount(ctx context.Context, uid string) error {
	if err := s.store.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	log.Printf("UserService: deleted account %s", uid)
	return nil
}

// Package services holds the session manager, the access-control engine
// and the prediction ingestion flow.
// File: services/session_service.go
package services

import (
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"go-bet-tips/logger"
	"go-bet-tips/models"
	"go-bet-tips/store"
)

// ------------------ error taxonomy ------------------

var (
	ErrInvalidAdminKey    = errors.New("invalid admin key")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCannotDeleteSelf   = errors.New("you cannot delete your own account")
	ErrCannotDemoteSelf   = errors.New("you cannot demote your own account")
	ErrValidation         = errors.New("missing required field")
)

// ------------------ session manager ------------------

// SessionManager tracks at most one authenticated identity and drives
// registration, login and the admin user-management operations. The current
// identity is persisted as a detached snapshot so a restart resumes it.
type SessionManager struct {
	users     *store.UserRepo
	settings  *store.SettingsRepo
	persister store.Persister

	mu      sync.Mutex
	current *models.User
}

// NewSessionManager restores any persisted session snapshot.
func NewSessionManager(users *store.UserRepo, settings *store.SettingsRepo, p store.Persister) *SessionManager {
	sm := &SessionManager{users: users, settings: settings, persister: p}
	var snapshot models.User
	if p.Load(store.SlotSession, &snapshot) && snapshot.Email != "" {
		sm.current = &snapshot
		logger.Info.Printf("SessionManager: restored session for %s", snapshot.Email)
	}
	return sm
}

// CurrentUser returns the authenticated user, or nil for an anonymous visitor.
func (sm *SessionManager) CurrentUser() *models.User {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.current == nil {
		return nil
	}
	u := *sm.current
	return &u
}

// isCurrent reports whether email identifies the authenticated subject.
func (sm *SessionManager) isCurrent(email string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.current != nil && sm.current.Email == email
}

// persistSnapshot mirrors the current identity into the durable slot.
// Callers must hold mu.
func (sm *SessionManager) persistSnapshot() {
	if sm.current == nil {
		sm.persister.Save(store.SlotSession, nil)
		return
	}
	sm.persister.Save(store.SlotSession, *sm.current)
}

// ------------------ registration & login ------------------

// RegisterDetails carries the registration form. AdminKey is nil for the
// normal path; non-nil means the admin registration page was used, and the
// key must then match the configured one exactly.
type RegisterDetails struct {
	FullName string
	Email    string
	Password string
	AdminKey *string
}

// Register creates an account and authenticates it. The normal path yields
// role=user, status=pending; a valid admin key yields role=admin,
// status=approved. Approval only gates VIP visibility, never basic use.
func (sm *SessionManager) Register(details RegisterDetails) (models.User, error) {
	if strings.TrimSpace(details.FullName) == "" ||
		strings.TrimSpace(details.Email) == "" ||
		details.Password == "" {
		return models.User{}, ErrValidation
	}

	role, status := models.RoleUser, models.StatusPending
	if details.AdminKey != nil {
		if *details.AdminKey != sm.settings.Get().AdminKey {
			logger.Warn.Printf("Register: invalid admin key attempt for %s", details.Email)
			return models.User{}, ErrInvalidAdminKey
		}
		role, status = models.RoleAdmin, models.StatusApproved
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(details.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		FullName: details.FullName,
		Email:    details.Email,
		Password: string(hash),
		Role:     role,
		Status:   status,
	}
	if err := sm.users.Add(user); err != nil {
		return models.User{}, err
	}

	sm.mu.Lock()
	sm.current = &user
	sm.persistSnapshot()
	sm.mu.Unlock()
	logger.Info.Printf("Register: %s registered (role=%s, status=%s)", user.Email, user.Role, user.Status)
	return user, nil
}

// Login authenticates by email and password.
func (sm *SessionManager) Login(email, password string) (models.User, error) {
	user, ok := sm.users.FindByEmail(email)
	if !ok || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		logger.Warn.Printf("Login: invalid credentials for %s", email)
		return models.User{}, ErrInvalidCredentials
	}
	sm.mu.Lock()
	sm.current = &user
	sm.persistSnapshot()
	sm.mu.Unlock()
	logger.Info.Printf("Login: %s authenticated", email)
	return user, nil
}

// Logout unconditionally returns to the anonymous state.
func (sm *SessionManager) Logout() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.current != nil {
		logger.Info.Printf("Logout: %s logged out", sm.current.Email)
	}
	sm.current = nil
	sm.persistSnapshot()
}

// ------------------ user management ------------------

// syncSession mirrors a directory mutation into the session snapshot when
// the target is the current subject. Back-reference, not ownership: the
// repository stays the source of truth.
func (sm *SessionManager) syncSession(updated models.User) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.current != nil && sm.current.Email == updated.Email {
		sm.current = &updated
		sm.persistSnapshot()
	}
}

// ToggleVipStatus flips pending/approved for a non-admin account.
// Admin targets are left untouched.
func (sm *SessionManager) ToggleVipStatus(email string) error {
	user, ok := sm.users.FindByEmail(email)
	if !ok {
		return store.ErrUserNotFound
	}
	if user.Role == models.RoleAdmin {
		logger.Debug.Printf("ToggleVipStatus: skipping admin account %s", email)
		return nil
	}
	next := models.StatusApproved
	if user.Status == models.StatusApproved {
		next = models.StatusPending
	}
	updated, err := sm.users.Update(email, models.UserPatch{Status: &next})
	if err != nil {
		return err
	}
	sm.syncSession(updated)
	logger.Info.Printf("ToggleVipStatus: %s is now %s", email, next)
	return nil
}

// Promote grants the admin role.
func (sm *SessionManager) Promote(email string) error {
	role := models.RoleAdmin
	updated, err := sm.users.Update(email, models.UserPatch{Role: &role})
	if err != nil {
		return err
	}
	sm.syncSession(updated)
	return nil
}

// Demote revokes the admin role. The acting admin's own account is refused
// so an instance can never demote itself out of management access.
func (sm *SessionManager) Demote(email string) error {
	if sm.isCurrent(email) {
		return ErrCannotDemoteSelf
	}
	role := models.RoleUser
	updated, err := sm.users.Update(email, models.UserPatch{Role: &role})
	if err != nil {
		return err
	}
	sm.syncSession(updated)
	return nil
}

// UpdateUser merges a patch into an account; a patched password is hashed
// before it reaches the directory. A role patch that would demote the
// current subject is refused, same as Demote.
func (sm *SessionManager) UpdateUser(email string, patch models.UserPatch) (models.User, error) {
	if patch.Role != nil && *patch.Role == models.RoleUser && sm.isCurrent(email) {
		return models.User{}, ErrCannotDemoteSelf
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		hashed := string(hash)
		patch.Password = &hashed
	}
	updated, err := sm.users.Update(email, patch)
	if err != nil {
		return models.User{}, err
	}
	sm.syncSession(updated)
	return updated, nil
}

// DeleteUser removes an account. Deleting the current subject is refused.
func (sm *SessionManager) DeleteUser(email string) error {
	if sm.isCurrent(email) {
		return ErrCannotDeleteSelf
	}
	if err := sm.users.Remove(email); err != nil {
		return err
	}
	logger.Info.Printf("DeleteUser: %s removed", email)
	return nil
}

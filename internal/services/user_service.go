package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/KCCPMG/ReadingList/internal/apperrors"
	"github.com/KCCPMG/ReadingList/internal/auth"
	"github.com/KCCPMG/ReadingList/internal/config"
	"github.com/KCCPMG/ReadingList/internal/models"
	"github.com/KCCPMG/ReadingList/internal/validation"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateAndSave(username, email, password string) (models.User, error)
	Login(username, password string) (models.AuthResult, error)
	SafeLogin(username, password string) (models.AuthResult, error)
	Authenticate(token string) (models.User, error)
	AddTag(userID, text string) (models.User, error)
	RemoveTag(userID, text string) (models.User, error)
	AddLink(userID, url, title, iconURL string, tagTexts []string) (models.User, error)
	GetUserByID(id string) (models.User, error)
	DeleteUser(id string) error
}

// UserService provides account storage and the register/login/authenticate
// workflow. Uniqueness of usernames, emails, per-user tag texts, and
// per-user link URLs is enforced by the database's unique indexes at commit
// time, not pre-checked here.
type UserService struct {
	db     *sql.DB
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

// NewUserService creates a new UserService from explicit configuration.
func NewUserService(db *sql.DB, cfg *config.Config) *UserService {
	return &UserService{
		db:     db,
		hasher: auth.NewPasswordHasher(cfg.BcryptCost),
		tokens: auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
	}
}

// CreateAndSave registers a new user, hashing their password.
func (s *UserService) CreateAndSave(username, email, password string) (models.User, error) {
	if username == "" {
		return models.User{}, apperrors.Validation("username", "Username is required")
	}
	if password == "" {
		return models.User{}, apperrors.Validation("password", "Password is required")
	}
	if !validation.IsValidEmail(email) {
		return models.User{}, apperrors.Validation("email", "Please enter a valid email address")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, err
	}

	id := uuid.New().String()
	_, err = s.db.Exec("INSERT INTO users(id, username, email, password_hash) VALUES(?, ?, ?, ?)",
		id, username, email, hash)
	if err != nil {
		if isUniqueViolation(err, "users.username") {
			return models.User{}, apperrors.DuplicateUsername()
		}
		if isUniqueViolation(err, "users.email") {
			return models.User{}, apperrors.DuplicateEmail()
		}
		return models.User{}, err
	}

	return s.GetUserByID(id)
}

// Login verifies credentials and issues a token. Unknown usernames and wrong
// passwords are indistinguishable to the caller. The returned user still
// carries the password hash; use SafeLogin for anything client-facing.
func (s *UserService) Login(username, password string) (models.AuthResult, error) {
	var id, hash string
	row := s.db.QueryRow("SELECT id, password_hash FROM users WHERE username = ?", username)
	if err := row.Scan(&id, &hash); err != nil {
		if err == sql.ErrNoRows {
			return models.AuthResult{}, apperrors.InvalidCredentials()
		}
		return models.AuthResult{}, err
	}

	if !s.hasher.Verify(password, hash) {
		return models.AuthResult{}, apperrors.InvalidCredentials()
	}

	user, err := s.GetUserByID(id)
	if err != nil {
		return models.AuthResult{}, err
	}
	user.PasswordHash = hash

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return models.AuthResult{}, err
	}

	return models.AuthResult{User: user, Token: token}, nil
}

// SafeLogin is Login with the password hash stripped from the result.
func (s *UserService) SafeLogin(username, password string) (models.AuthResult, error) {
	result, err := s.Login(username, password)
	if err != nil {
		return models.AuthResult{}, err
	}
	result.User.PasswordHash = ""
	return result, nil
}

// Authenticate resolves a token to its user. A bad token reports
// InvalidToken; a good token whose subject no longer exists reports
// InvalidUser.
func (s *UserService) Authenticate(token string) (models.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperrors.InvalidUser()
		}
		return models.User{}, err
	}
	return user, nil
}

// AddTag appends a new tag to the user and returns the updated record. The
// (user_id, tag_text) unique index rejects duplicates even when two calls
// race each other.
func (s *UserService) AddTag(userID, text string) (models.User, error) {
	if !validation.IsValidTag(text) {
		return models.User{}, apperrors.Validation("tagText",
			"Please make sure that your tag contains only letters, numbers, hyphens, and underscores")
	}

	_, err := s.db.Exec("INSERT INTO tags(id, user_id, tag_text) VALUES(?, ?, ?)",
		uuid.New().String(), userID, text)
	if err != nil {
		if isUniqueViolation(err, "tags.user_id") {
			return models.User{}, apperrors.DuplicateTag()
		}
		return models.User{}, err
	}

	return s.GetUserByID(userID)
}

// RemoveTag deletes one of the user's tags by text. Links referencing the
// tag lose the reference but are otherwise untouched.
func (s *UserService) RemoveTag(userID, text string) (models.User, error) {
	res, err := s.db.Exec("DELETE FROM tags WHERE user_id = ? AND tag_text = ?", userID, text)
	if err != nil {
		return models.User{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return models.User{}, err
	} else if n == 0 {
		return models.User{}, apperrors.Validation("tagText", "No tag with this text exists")
	}

	return s.GetUserByID(userID)
}

// AddLink appends a link to the user's reading list, resolving each tag text
// to one of the user's existing tags or creating it. The whole operation is
// one transaction; the (user_id, url) unique index rejects an already-saved
// URL.
func (s *UserService) AddLink(userID, url, title, iconURL string, tagTexts []string) (models.User, error) {
	if !validation.IsValidURL(url) {
		return models.User{}, apperrors.Validation("url", fmt.Sprintf("%s is not a valid url", url))
	}
	if iconURL != "" && !validation.IsValidURL(iconURL) {
		return models.User{}, apperrors.Validation("iconUrl", fmt.Sprintf("%s is not a valid url", iconURL))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.User{}, err
	}
	defer tx.Rollback()

	linkID := uuid.New().String()
	_, err = tx.Exec("INSERT INTO links(id, user_id, url, title, icon_url, to_read) VALUES(?, ?, ?, ?, ?, 1)",
		linkID, userID, url, title, iconURL)
	if err != nil {
		if isUniqueViolation(err, "links.user_id") {
			return models.User{}, apperrors.DuplicateLink()
		}
		return models.User{}, err
	}

	for _, text := range tagTexts {
		tagID, err := resolveTag(tx, userID, text)
		if err != nil {
			return models.User{}, err
		}
		if _, err := tx.Exec("INSERT OR IGNORE INTO link_tags(link_id, tag_id) VALUES(?, ?)", linkID, tagID); err != nil {
			return models.User{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, err
	}

	return s.GetUserByID(userID)
}

// resolveTag returns the id of the user's tag with the given text, creating
// the tag first if necessary.
func resolveTag(tx *sql.Tx, userID, text string) (string, error) {
	var tagID string
	err := tx.QueryRow("SELECT id FROM tags WHERE user_id = ? AND tag_text = ?", userID, text).Scan(&tagID)
	if err == nil {
		return tagID, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	if !validation.IsValidTag(text) {
		return "", apperrors.Validation("tagText",
			"Please make sure that your tag contains only letters, numbers, hyphens, and underscores")
	}

	tagID = uuid.New().String()
	if _, err := tx.Exec("INSERT INTO tags(id, user_id, tag_text) VALUES(?, ?, ?)", tagID, userID, text); err != nil {
		return "", err
	}
	return tagID, nil
}

// GetUserByID retrieves a user with their tags and links. The password hash
// is not loaded. Returns sql.ErrNoRows when no such user exists.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, email, created_at FROM users WHERE id = ?", id)
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt); err != nil {
		return models.User{}, err
	}

	user.Tags = []models.Tag{}
	user.Links = []models.Link{}

	tagRows, err := s.db.Query("SELECT id, tag_text FROM tags WHERE user_id = ? ORDER BY rowid", id)
	if err != nil {
		return models.User{}, err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var tag models.Tag
		if err := tagRows.Scan(&tag.ID, &tag.Text); err != nil {
			return models.User{}, err
		}
		user.Tags = append(user.Tags, tag)
	}
	if err := tagRows.Err(); err != nil {
		return models.User{}, err
	}

	linkRows, err := s.db.Query(
		"SELECT id, url, COALESCE(title, ''), COALESCE(icon_url, ''), to_read, created_at FROM links WHERE user_id = ? ORDER BY rowid", id)
	if err != nil {
		return models.User{}, err
	}
	defer linkRows.Close()
	for linkRows.Next() {
		var link models.Link
		if err := linkRows.Scan(&link.ID, &link.URL, &link.Title, &link.IconURL, &link.ToRead, &link.CreatedAt); err != nil {
			return models.User{}, err
		}
		link.Tags = []string{}
		user.Links = append(user.Links, link)
	}
	if err := linkRows.Err(); err != nil {
		return models.User{}, err
	}

	for i := range user.Links {
		refRows, err := s.db.Query("SELECT tag_id FROM link_tags WHERE link_id = ?", user.Links[i].ID)
		if err != nil {
			return models.User{}, err
		}
		for refRows.Next() {
			var tagID string
			if err := refRows.Scan(&tagID); err != nil {
				refRows.Close()
				return models.User{}, err
			}
			user.Links[i].Tags = append(user.Links[i].Tags, tagID)
		}
		if err := refRows.Err(); err != nil {
			refRows.Close()
			return models.User{}, err
		}
		refRows.Close()
	}

	return user, nil
}

// DeleteUser removes a user and, via cascade, their tags and links. This is
// an administrative path, not part of the public API.
func (s *UserService) DeleteUser(id string) error {
	_, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}

// isUniqueViolation reports whether err is a unique-index violation on the
// named column prefix (e.g. "users.username").
func isUniqueViolation(err error, column string) bool {
	sqliteErr, ok := err.(sqlite3.Error)
	if !ok {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique &&
		strings.Contains(sqliteErr.Error(), column)
}

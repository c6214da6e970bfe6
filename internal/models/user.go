package models

import "time"

// User represents a user account in the system, together with the tags and
// links it owns.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	Tags         []Tag     `json:"tags"`
	Links        []Link    `json:"links"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Tag is a user-scoped label. Tag text is unique per user, not globally.
type Tag struct {
	ID   string `json:"id"`
	Text string `json:"tagText"`
}

// Link is a saved URL on a user's reading list. Tags holds ids of tags owned
// by the same user.
type Link struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	IconURL   string    `json:"iconUrl,omitempty"`
	ToRead    bool      `json:"toRead"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResult is what a successful login returns.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

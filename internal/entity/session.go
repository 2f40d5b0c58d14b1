package entity

import "time"

// Identity is the user record pushed by the identity provider. The UID is
// opaque to this application.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// Session ties a browser session to an identity and the application-issued
// token obtained from the remote API's auth/login exchange.
type Session struct {
	ID        string    `json:"id"`
	Identity  *Identity `json:"identity"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Session) Email() string {
	if s == nil || s.Identity == nil {
		return ""
	}
	return s.Identity.Email
}

// FILE: internal/dto/session_dto.go
package dto

import "time"

type SessionResponse struct {
	Uid         string  `json:"uid"`
	DisplayName *string `json:"displayName"`
	Email       *string `json:"email"`
	PhotoURL    *string `json:"photoURL"`
}

type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
	Session     *SessionResponse `json:"session"`
	View        ViewResponse     `json:"view"`
}

// SessionEvent is pushed over the session websocket on every change.
type SessionEvent struct {
	Type string           `json:"type"`
	Data *SessionResponse `json:"data"`
}

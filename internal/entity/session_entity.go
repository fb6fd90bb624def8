package entity

// Session identifies the signed-in principal. It is stored JSON encoded in
// a single named slot; an empty slot means signed out.
type Session struct {
	Uid         string  `json:"uid" validate:"required"`
	DisplayName *string `json:"displayName"`
	Email       *string `json:"email"`
	PhotoURL    *string `json:"photoURL"`
}

func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := &Session{Uid: s.Uid}
	c.DisplayName = cloneString(s.DisplayName)
	c.Email = cloneString(s.Email)
	c.PhotoURL = cloneString(s.PhotoURL)
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

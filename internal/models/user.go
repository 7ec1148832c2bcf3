package models

import "encoding/json"

// AdminUser is the operator record returned by the content API.
type AdminUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsStaff   bool   `json:"is_staff,omitempty"`
}

// SessionMarker is the one piece of operator state that survives a restart: the last known
// user blob. Verified is only set after the content API confirmed the session in this process
// and is never encoded, so a marker read back from Redis always starts unverified.
type SessionMarker struct {
	Raw      json.RawMessage `json:"raw,omitempty"`
	Verified bool            `json:"-"`
}

// Empty reports whether no user is remembered.
func (m SessionMarker) Empty() bool {
	return len(m.Raw) == 0 || string(m.Raw) == "null"
}

// User decodes the remembered user.
func (m SessionMarker) User() (*AdminUser, error) {
	if m.Empty() {
		return nil, nil
	}
	var user AdminUser
	if err := json.Unmarshal(m.Raw, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

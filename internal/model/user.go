package model

// Credential is a stored username/password pair. Passwords are kept in plaintext.
type Credential struct {
	Username string `json:"-"`
	Password string `json:"password"`
}

// Session identifies the signed-in user. It is persisted for auto-login.
type Session struct {
	Username string `json:"username"`
}

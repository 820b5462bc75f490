package server

// HTTPError is a generic error envelope returned by the server.
type HTTPError struct {
	Error string `json:"error"`
}

// AuthSignupRequest represents the signup payload.
type AuthSignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthLoginRequest represents the login payload.
type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// IDResponse is a generic id response wrapper.
type IDResponse struct {
	ID string `json:"id"`
}

// CreateTopicRequest represents a new topic payload.
type CreateTopicRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ScheduleCron string `json:"schedule_cron"`
}

// CollectRequest optionally overrides the configured collection mode for one
// run ("web" or "openai").
type CollectRequest struct {
	Mode string `json:"mode,omitempty"`
}

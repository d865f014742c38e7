package notification

// SSETokenResponse is returned to dashboards before they open the activity stream.
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

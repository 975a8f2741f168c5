package agents

// AgentInput is a single descriptor in a registry sync payload. Active
// defaults to true when omitted.
type AgentInput struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Priority int    `json:"priority" validate:"min=1"`
	Active   *bool  `json:"active,omitempty"`
}

// SyncResult reports the outcome of a registry sync.
type SyncResult struct {
	Inserted int   `json:"inserted"`
	Updated  int   `json:"updated"`
	Total    int64 `json:"total"`
}

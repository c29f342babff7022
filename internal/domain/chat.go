package domain

// ChatRole is the author of a chat turn.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// IsValid reports whether r is a known role.
func (r ChatRole) IsValid() bool {
	return r == ChatRoleUser || r == ChatRoleModel
}

// ChatMessage is a single turn of a conversation with a model.
type ChatMessage struct {
	Role    ChatRole
	Content string
}

// ModelRequest is a provider-neutral model invocation: a system instruction
// followed by conversation turns, the last of which is from the user.
type ModelRequest struct {
	System   string
	Messages []ChatMessage
}

// SingleTurn builds a request with one user message.
func SingleTurn(system, prompt string) ModelRequest {
	return ModelRequest{
		System:   system,
		Messages: []ChatMessage{{Role: ChatRoleUser, Content: prompt}},
	}
}

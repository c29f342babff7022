package chat

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/drugverify-backend/internal/domain"
)

const (
	MaxHistory       = 20
	MaxMessageLength = 4000
)

// Input is one chat turn with the conversation so far.
type Input struct {
	History []domain.ChatMessage
	Message string
}

func (i Input) normalized() Input {
	i.Message = strings.TrimSpace(i.Message)
	return i
}

// Validate checks all fields and collects all errors.
func (i Input) Validate() error {
	var errs []domain.FieldError

	switch {
	case i.Message == "":
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	case utf8.RuneCountInString(i.Message) > MaxMessageLength:
		errs = append(errs, domain.FieldError{Field: "message", Message: fmt.Sprintf("max %d characters", MaxMessageLength)})
	}

	if len(i.History) > MaxHistory {
		errs = append(errs, domain.FieldError{Field: "history", Message: fmt.Sprintf("max %d messages", MaxHistory)})
	}
	for idx, m := range i.History {
		field := fmt.Sprintf("history[%d]", idx)
		if !m.Role.IsValid() {
			errs = append(errs, domain.FieldError{Field: field + ".role", Message: "must be user or model"})
		}
		if utf8.RuneCountInString(m.Content) > MaxMessageLength {
			errs = append(errs, domain.FieldError{Field: field + ".content", Message: fmt.Sprintf("max %d characters", MaxMessageLength)})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Reply is the assistant answer.
type Reply struct {
	Response    string
	SourceModel string
}

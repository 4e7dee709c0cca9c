package discordapi

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

// Discord REST error codes the bot reacts to
const (
	ErrCodeUnknownChannel = 10003
	ErrCodeUnknownMessage = 10008
	ErrCodeMissingAccess  = 50001
)

// Error struct
type Error struct {
	Message string `json:"message"`
	Err     error  `json:"error"`
	Code    int    `json:"code"`
}

// Error func
func (e *Error) Error() string {
	return e.Err.Error()
}

// ParseDiscordError extracts the REST error code and message when the error
// came back from the Discord API; anything else maps to code -1
func ParseDiscordError(err error) *Error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		return &Error{
			Code:    restErr.Message.Code,
			Err:     err,
			Message: restErr.Message.Message,
		}
	}

	return &Error{
		Code:    -1,
		Err:     err,
		Message: err.Error(),
	}
}

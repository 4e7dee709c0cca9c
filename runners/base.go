package runners

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/moth-works/rolekeeper/configs"
	"gitlab.com/moth-works/rolekeeper/rolepicker"
	"gitlab.com/moth-works/rolekeeper/services/discordapi"
	"gitlab.com/moth-works/rolekeeper/utils/cache"
)

// Runners struct
type Runners struct {
	Session discordapi.Session
	Config  *configs.Config
	Cache   *cache.Cache
	Engine  *rolepicker.Engine
}

// Error struct
type Error struct {
	Message string `json:"message"`
	Err     error  `json:"error"`
}

// Error func
func (e *Error) Error() string {
	return e.Err.Error()
}

// ConvertToEmbedField for Error struct
func (e *Error) ConvertToEmbedField() (*discordgo.MessageEmbedField, *discordapi.Error) {
	return &discordgo.MessageEmbedField{
		Name:   e.Message,
		Value:  e.Error(),
		Inline: false,
	}, nil
}

// StartRunners func
func (r *Runners) StartRunners() {
	ctx := context.Background()

	if r.Config.Runners.Reconcile.Enabled {
		go r.Reconcile(ctx, r.Config.Runners.Reconcile.Delay)
	}
}

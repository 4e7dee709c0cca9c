package interactions

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"gitlab.com/moth-works/rolekeeper/configs"
	"gitlab.com/moth-works/rolekeeper/interactions/commands"
	"gitlab.com/moth-works/rolekeeper/rolepicker"
	"gitlab.com/moth-works/rolekeeper/utils/cache"
	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
)

// Interactions struct
type Interactions struct {
	Session  *discordgo.Session
	Config   *configs.Config
	Cache    *cache.Cache
	Engine   *rolepicker.Engine
	Shutdown func()
}

// SetupHandlers func
func (i *Interactions) SetupHandlers() {
	i.Session.AddHandler(i.MessageCreate)
	i.Session.AddHandler(i.MessageReactionAdd)
	i.Session.AddHandler(i.MessageReactionRemove)
}

// MessageCreate func
func (i *Interactions) MessageCreate(s *discordgo.Session, mc *discordgo.MessageCreate) {
	requestID := uuid.New()

	ctx := context.Background()
	ctx = logging.AddValues(
		ctx,
		zap.String("request_id", requestID.String()),
		zap.String("scope", logging.GetFuncName()),
		zap.String("guild_id", mc.GuildID),
		zap.String("channel_id", mc.ChannelID),
		zap.String("message_id", mc.Message.ID),
		zap.String("user_id", mc.Author.ID),
		zap.String("user_name", mc.Author.Username),
	)

	// Ignore message if user is self
	if mc.Author.ID == s.State.User.ID {
		return
	}

	// Ignore message if user is a bot
	if mc.Author.Bot {
		return
	}

	if strings.HasPrefix(strings.ToLower(mc.Content), i.Config.Bot.Prefix) {
		commands := commands.Commands{
			Session:  i.Session,
			Config:   i.Config,
			Cache:    i.Cache,
			Engine:   i.Engine,
			Shutdown: i.Shutdown,
		}
		commands.Factory(ctx, s, mc)
		return
	}
}

// MessageReactionAdd func
func (i *Interactions) MessageReactionAdd(s *discordgo.Session, mra *discordgo.MessageReactionAdd) {
	requestID := uuid.New()

	ctx := context.Background()
	ctx = logging.AddValues(
		ctx,
		zap.String("request_id", requestID.String()),
		zap.String("scope", logging.GetFuncName()),
		zap.String("guild_id", mra.GuildID),
		zap.String("message_id", mra.MessageID),
		zap.String("user_id", mra.UserID),
	)

	i.Engine.HandleReactionAdd(ctx, mra)
}

// MessageReactionRemove func
func (i *Interactions) MessageReactionRemove(s *discordgo.Session, mrr *discordgo.MessageReactionRemove) {
	requestID := uuid.New()

	ctx := context.Background()
	ctx = logging.AddValues(
		ctx,
		zap.String("request_id", requestID.String()),
		zap.String("scope", logging.GetFuncName()),
		zap.String("guild_id", mrr.GuildID),
		zap.String("message_id", mrr.MessageID),
		zap.String("user_id", mrr.UserID),
	)

	i.Engine.HandleReactionRemove(ctx, mrr)
}

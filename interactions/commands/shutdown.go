package commands

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/moth-works/rolekeeper/configs"
	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
)

// ShutdownBot stops the bot process. The owner gate lives in the Factory.
func (c *Commands) ShutdownBot(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	if c.Shutdown == nil {
		c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, Error{
			Message: "Shutdown is not wired up",
			Err:     errors.New("no shutdown handler"),
		})
		return
	}

	c.sendPlain(ctx, mc.ChannelID, "Shutting down gracefully...")

	logger := logging.Logger(ctx)
	logger.Info("shutdown_log")

	c.Shutdown()
}

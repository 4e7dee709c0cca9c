package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/moth-works/rolekeeper/configs"
	"gitlab.com/moth-works/rolekeeper/rolepicker"
	"gitlab.com/moth-works/rolekeeper/services/discordapi"
	"gitlab.com/moth-works/rolekeeper/utils/cache"
	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
)

// Commands struct
type Commands struct {
	Session  discordapi.Session
	Config   *configs.Config
	Cache    *cache.Cache
	Engine   *rolepicker.Engine
	Shutdown func()
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

// getCommand func
func getCommand(commands []configs.Command, prefix string, content string) (configs.Command, *Error) {
	prefixLen := len(prefix)
	if len(content) <= prefixLen {
		return configs.Command{}, &Error{
			Message: "Not a command",
			Err:     errors.New("not a command"),
		}
	}

	return getCommandConfig(commands, strings.SplitN(content[prefixLen:], " ", 2)[0])
}

// getCommandConfig func
func getCommandConfig(commands []configs.Command, command string) (configs.Command, *Error) {
	for _, val := range commands {
		if val.Long == strings.ToLower(command) || (val.Short != "" && val.Short == strings.ToLower(command)) {
			return val, nil
		}
	}

	return configs.Command{}, &Error{
		Message: fmt.Sprintf("No command found with name: %s", command),
		Err:     errors.New("invalid command"),
	}
}

// Factory func
func (c *Commands) Factory(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate) {
	ctx = logging.AddValues(ctx,
		zap.String("scope", logging.GetFuncName()),
		zap.String("message_content", mc.Content),
	)

	command, gcErr := getCommand(c.Config.Commands, c.Config.Bot.Prefix, mc.Content)
	if gcErr != nil {
		if gcErr.Error() == "not a command" || gcErr.Error() == "invalid command" {
			return
		}

		ctx = logging.AddValues(ctx, zap.NamedError("error", gcErr.Err), zap.String("error_message", gcErr.Message))
		logger := logging.Logger(ctx)
		logger.Error("error_log")
		return
	}

	if !command.Enabled {
		c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, Error{
			Message: "This command has not been enabled for use",
			Err:     errors.New("command not enabled"),
		})
		return
	}

	ctx = logging.AddValues(ctx,
		zap.String("command", command.Name),
	)

	logger := logging.Logger(ctx)
	logger.Info("command_log")

	if command.OwnerOnly {
		if c.Config.Bot.OwnerID == "" || mc.Author.ID != c.Config.Bot.OwnerID {
			c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, Error{
				Message: "Only the bot owner can use this command",
				Err:     errors.New("user is not the bot owner"),
			})
			return
		}
	}

	if command.AdminOnly {
		if mc.GuildID == "" {
			c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, Error{
				Message: "This command cannot be used through DM",
				Err:     errors.New("must be used in discord server"),
			})
			return
		}

		isAdmin, iaErr := c.IsAdmin(ctx, mc.GuildID, mc.Member.Roles)
		if iaErr != nil {
			c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, *iaErr)
			return
		}
		if !isAdmin {
			c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, Error{
				Message: "Unauthorized to use this command",
				Err:     errors.New("user is not authorized"),
			})
			return
		}
	}

	switch command.Name {
	case "Role Picker":
		c.RolePicker(ctx, s, mc, command)
	case "Add Role":
		c.AddRole(ctx, s, mc, command)
	case "Remove Role":
		c.RemoveRole(ctx, s, mc, command)
	case "Update Role Picker":
		c.UpdateRolePicker(ctx, s, mc, command)
	case "Death Save":
		c.DeathSave(ctx, s, mc, command)
	case "New Stats":
		c.NewStats(ctx, s, mc, command)
	case "Random Build":
		c.RandomBuild(ctx, s, mc, command)
	case "Event":
		c.Event(ctx, s, mc, command)
	case "Hello":
		c.Hello(ctx, s, mc, command)
	case "Dave":
		c.Dave(ctx, s, mc, command)
	case "Mmn":
		c.Mmn(ctx, s, mc, command)
	case "Bnuuy":
		c.Bnuuy(ctx, s, mc, command)
	case "Mothman":
		c.Mothman(ctx, s, mc, command)
	case "Color Test":
		c.ColorTest(ctx, s, mc, command)
	case "Help":
		c.Help(ctx, s, mc, command)
	case "Shutdown":
		c.ShutdownBot(ctx, s, mc, command)
	default:
		c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, Error{
			Message: "This command has no handler",
			Err:     errors.New("unhandled command"),
		})
	}
}

// checkArgs validates the argument count against the command config
func checkArgs(command configs.Command, mc *discordgo.MessageCreate) *Error {
	argCount := len(strings.Fields(mc.Content)) - 1
	if argCount < command.MinArgs || (command.MaxArgs > 0 && argCount > command.MaxArgs) {
		return &Error{
			Message: fmt.Sprintf("Command given %d arguments, expects %d to %d arguments.", argCount, command.MinArgs, command.MaxArgs),
			Err:     errors.New("invalid number of arguments"),
		}
	}

	return nil
}

// deleteInvocation removes the triggering message, best-effort
func (c *Commands) deleteInvocation(ctx context.Context, mc *discordgo.MessageCreate) {
	if dErr := discordapi.DeleteMessage(c.Session, mc.ChannelID, mc.Message.ID); dErr != nil {
		newCtx := logging.AddValues(ctx, zap.NamedError("error", dErr.Err), zap.String("error_message", "Failed to delete invoking message"))
		logger := logging.Logger(newCtx)
		logger.Warn("command_log")
	}
}

// ErrorOutput func
func (c *Commands) ErrorOutput(ctx context.Context, command configs.Command, content string, channelID string, err Error) ([]*discordgo.Message, *Error) {
	newCtx := logging.AddValues(ctx, zap.NamedError("error", err.Err), zap.String("error_message", err.Message))
	logger := logging.Logger(newCtx)
	logger.Error("error_log")

	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	params := discordapi.EmbeddableParams{
		Title:       "Error",
		Description: "`" + content + "`",
		Color:       c.Config.Bot.ErrorColor,
		TitleURL:    c.Config.Bot.DocumentationURL,
		Footer:      "Error",
	}

	var embeddableFields []discordapi.EmbeddableField

	embeddableFields = append(embeddableFields, &err)
	embeddableFields = append(embeddableFields, &HelpOutput{
		Command: command,
		Prefix:  c.Config.Bot.Prefix,
	})

	embeds := discordapi.CreateEmbeds(params, embeddableFields)

	var messages []*discordgo.Message
	for _, embed := range embeds {
		anEmbed := embed
		message, smErr := discordapi.SendMessage(c.Session, channelID, nil, &anEmbed)
		if smErr != nil {
			ctx = logging.AddValues(ctx, zap.NamedError("error", smErr.Err), zap.String("error_message", smErr.Message), zap.Int("status_code", smErr.Code))
			logger := logging.Logger(ctx)
			logger.Error("error_log")

			return nil, &Error{
				Message: smErr.Message,
				Err:     smErr.Err,
			}
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// Output func
func (c *Commands) Output(ctx context.Context, channelID string, params discordapi.EmbeddableParams, embeddableFields []discordapi.EmbeddableField, embeddableErrors []discordapi.EmbeddableField) ([]*discordgo.Message, *Error) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	if len(embeddableErrors) > 0 {
		params.Color = c.Config.Bot.WarnColor
	} else if params.Color == 0 {
		params.Color = c.Config.Bot.OkColor
	}

	combinedFields := append(embeddableFields, embeddableErrors...)
	embeds := discordapi.CreateEmbeds(params, combinedFields)

	var messages []*discordgo.Message
	for _, embed := range embeds {
		anEmbed := embed
		message, err := discordapi.SendMessage(c.Session, channelID, nil, &anEmbed)
		if err != nil {
			ctx = logging.AddValues(ctx, zap.NamedError("error", err.Err), zap.String("error_message", err.Message), zap.Int("status_code", err.Code))
			logger := logging.Logger(ctx)
			logger.Error("error_log")

			return nil, &Error{
				Message: err.Message,
				Err:     err.Err,
			}
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// ConvertToEmbedField for Error struct
func (e *Error) ConvertToEmbedField() (*discordgo.MessageEmbedField, *discordapi.Error) {
	return &discordgo.MessageEmbedField{
		Name:   e.Message,
		Value:  e.Error(),
		Inline: false,
	}, nil
}

// IsAdmin func
func (c *Commands) IsAdmin(ctx context.Context, guildID string, roles []string) (bool, *Error) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	discRoles, grErr := discordapi.GetGuildRoles(c.Session, guildID)
	if grErr != nil {
		return false, &Error{
			Message: "Failed to get Guild roles to verify Administrator access",
			Err:     grErr.Err,
		}
	}

	for _, memberRole := range roles {
		for _, guildRole := range discRoles {
			if memberRole == guildRole.ID && (guildRole.Permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator) {
				return true, nil
			}
		}
	}

	return false, nil
}

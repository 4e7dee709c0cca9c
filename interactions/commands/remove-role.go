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
	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
)

// RemoveRoleCommand struct
type RemoveRoleCommand struct {
	Params RemoveRoleCommandParams
}

// RemoveRoleCommandParams struct
type RemoveRoleCommandParams struct {
	Emoji  rolepicker.EmojiRef
	RoleID string
}

// RemoveRoleOutput struct
type RemoveRoleOutput struct {
	Entry rolepicker.RoleEntry
}

// RemoveRole removes a mapping from the picker document by emoji or by role
// mention, clears the bot's menu reaction for it, and refreshes the picker
func (c *Commands) RemoveRole(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	parsedCommand, pErr := parseRemoveRoleCommand(command, mc)
	if pErr != nil {
		c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, *pErr)
		return
	}

	conf := c.Engine.Store.Config()

	index := -1
	for i, entry := range conf.Roles {
		if parsedCommand.Params.RoleID != "" {
			if rolepicker.FormatID(entry.RoleID) == parsedCommand.Params.RoleID {
				index = i
				break
			}
			continue
		}

		if entry.Emoji == parsedCommand.Params.Emoji {
			index = i
			break
		}
	}

	if index == -1 {
		c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, Error{
			Message: "No role picker mapping matches that emoji or role",
			Err:     errors.New("mapping not found"),
		})
		return
	}

	removed := conf.Roles[index]

	c.Engine.Store.Update(ctx, func(pc *rolepicker.PickerConfig) {
		for i, entry := range pc.Roles {
			if entry.Emoji == removed.Emoji {
				pc.Roles = append(pc.Roles[:i], pc.Roles[i+1:]...)
				return
			}
		}
	})

	c.Engine.RemoveBaselineReaction(ctx, removed.Emoji)

	if rErr := c.Engine.RefreshPicker(ctx); rErr != nil {
		newCtx := logging.AddValues(ctx, zap.NamedError("error", rErr.Err), zap.String("error_message", rErr.Message))
		logger := logging.Logger(newCtx)
		logger.Warn("command_log")
	}

	embedParams := discordapi.EmbeddableParams{
		Title:       command.Name,
		Description: command.Description,
		TitleURL:    c.Config.Bot.DocumentationURL,
		Footer:      fmt.Sprintf("Executed by %s", mc.Author.Username),
	}

	c.Output(ctx, mc.ChannelID, embedParams, []discordapi.EmbeddableField{
		&RemoveRoleOutput{Entry: removed},
	}, nil)
}

// parseRemoveRoleCommand func
func parseRemoveRoleCommand(command configs.Command, mc *discordgo.MessageCreate) (*RemoveRoleCommand, *Error) {
	if aErr := checkArgs(command, mc); aErr != nil {
		return nil, aErr
	}

	splitContent := strings.Fields(mc.Content)
	arg := splitContent[1]

	if matches := roleMentionRegex.FindStringSubmatch(arg); matches != nil {
		return &RemoveRoleCommand{
			Params: RemoveRoleCommandParams{RoleID: matches[1]},
		}, nil
	}

	emoji := rolepicker.ParseEmojiRef(arg)
	if emoji.Name == "" {
		return nil, &Error{
			Message: fmt.Sprintf("Not an emoji or role mention: %s", arg),
			Err:     errors.New("invalid argument"),
		}
	}

	return &RemoveRoleCommand{
		Params: RemoveRoleCommandParams{Emoji: emoji},
	}, nil
}

// ConvertToEmbedField for RemoveRoleOutput struct
func (r *RemoveRoleOutput) ConvertToEmbedField() (*discordgo.MessageEmbedField, *discordapi.Error) {
	return &discordgo.MessageEmbedField{
		Name:   fmt.Sprintf("**%s**", r.Entry.Description),
		Value:  fmt.Sprintf("%s no longer grants <@&%s>.", r.Entry.Emoji.String(), rolepicker.FormatID(r.Entry.RoleID)),
		Inline: false,
	}, nil
}

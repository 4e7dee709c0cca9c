package commands

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/moth-works/rolekeeper/configs"
	"gitlab.com/moth-works/rolekeeper/services/discordapi"
	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
)

// RolePickerCommand struct
type RolePickerCommand struct {
	Params RolePickerCommandParams
}

// RolePickerCommandParams struct
type RolePickerCommandParams struct {
	ChannelID string
}

// RolePickerOutput struct
type RolePickerOutput struct {
	ChannelID string
	Entries   int
}

var channelMentionRegex = regexp.MustCompile(`^<#(\d+)>$`)

// RolePicker posts (or reposts) the picker message with its reaction menu
func (c *Commands) RolePicker(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	parsedCommand, pErr := parseRolePickerCommand(command, mc)
	if pErr != nil {
		c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, *pErr)
		return
	}

	channelID := parsedCommand.Params.ChannelID
	if channelID == "" {
		channelID = mc.ChannelID
	}

	c.deleteInvocation(ctx, mc)

	if ppErr := c.Engine.PostPicker(ctx, channelID); ppErr != nil {
		c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, Error{
			Message: "Failed to post the role picker",
			Err:     ppErr.Err,
		})
		return
	}

	conf := c.Engine.Store.Config()

	// Posting into another channel leaves no trace in the invoking one, so
	// confirm there.
	if channelID != mc.ChannelID {
		embedParams := discordapi.EmbeddableParams{
			Title:       command.Name,
			Description: command.Description,
			TitleURL:    c.Config.Bot.DocumentationURL,
			Footer:      fmt.Sprintf("Executed by %s", mc.Author.Username),
		}

		c.Output(ctx, mc.ChannelID, embedParams, []discordapi.EmbeddableField{
			&RolePickerOutput{ChannelID: channelID, Entries: len(conf.Roles)},
		}, nil)
	}
}

// UpdateRolePicker reloads the picker document from disk and refreshes the
// live message in place
func (c *Commands) UpdateRolePicker(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	conf := c.Engine.Store.Load(ctx)

	if rErr := c.Engine.RefreshPicker(ctx); rErr != nil {
		c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, Error{
			Message: rErr.Message,
			Err:     rErr.Err,
		})
		return
	}

	embedParams := discordapi.EmbeddableParams{
		Title:       command.Name,
		Description: command.Description,
		TitleURL:    c.Config.Bot.DocumentationURL,
		Footer:      fmt.Sprintf("Executed by %s", mc.Author.Username),
	}

	c.Output(ctx, mc.ChannelID, embedParams, []discordapi.EmbeddableField{
		&RolePickerOutput{ChannelID: channelIDOfConfig(conf.ChannelID), Entries: len(conf.Roles)},
	}, nil)
}

func channelIDOfConfig(id int64) string {
	if id == 0 {
		return ""
	}

	return fmt.Sprintf("%d", id)
}

// parseRolePickerCommand func
func parseRolePickerCommand(command configs.Command, mc *discordgo.MessageCreate) (*RolePickerCommand, *Error) {
	if aErr := checkArgs(command, mc); aErr != nil {
		return nil, aErr
	}

	splitContent := strings.Fields(mc.Content)
	if len(splitContent) < 2 {
		return &RolePickerCommand{}, nil
	}

	matches := channelMentionRegex.FindStringSubmatch(splitContent[1])
	if matches == nil {
		return nil, &Error{
			Message: fmt.Sprintf("Not a channel mention: %s", splitContent[1]),
			Err:     errors.New("invalid channel argument"),
		}
	}

	return &RolePickerCommand{
		Params: RolePickerCommandParams{
			ChannelID: matches[1],
		},
	}, nil
}

// ConvertToEmbedField for RolePickerOutput struct
func (r *RolePickerOutput) ConvertToEmbedField() (*discordgo.MessageEmbedField, *discordapi.Error) {
	value := fmt.Sprintf("Role picker is live with %d configured role(s).", r.Entries)
	if r.ChannelID != "" {
		value = fmt.Sprintf("Role picker is live in <#%s> with %d configured role(s).", r.ChannelID, r.Entries)
	}

	return &discordgo.MessageEmbedField{
		Name:   "**Role Picker**",
		Value:  value,
		Inline: false,
	}, nil
}

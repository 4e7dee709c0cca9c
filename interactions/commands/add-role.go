package commands

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/moth-works/rolekeeper/configs"
	"gitlab.com/moth-works/rolekeeper/rolepicker"
	"gitlab.com/moth-works/rolekeeper/services/discordapi"
	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
)

// AddRoleCommand struct
type AddRoleCommand struct {
	Params AddRoleCommandParams
}

// AddRoleCommandParams struct
type AddRoleCommandParams struct {
	Emoji         rolepicker.EmojiRef
	RoleID        string
	AdminApproval bool
	Description   string
}

// AddRoleOutput struct
type AddRoleOutput struct {
	Entry rolepicker.RoleEntry
}

var roleMentionRegex = regexp.MustCompile(`^<@&(\d+)>$`)

// AddRole adds an emoji to role mapping to the picker document and refreshes
// the live picker when one is posted
func (c *Commands) AddRole(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	parsedCommand, pErr := parseAddRoleCommand(command, mc)
	if pErr != nil {
		c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, *pErr)
		return
	}

	guildRoles, grErr := discordapi.GetGuildRoles(c.Session, mc.GuildID)
	if grErr != nil {
		c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, Error{
			Message: "Failed to get Guild roles",
			Err:     grErr.Err,
		})
		return
	}

	var role *discordgo.Role
	for _, aRole := range guildRoles {
		if aRole.ID == parsedCommand.Params.RoleID {
			role = aRole
			break
		}
	}

	if role == nil {
		c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, Error{
			Message: fmt.Sprintf("No role in this server with ID: %s", parsedCommand.Params.RoleID),
			Err:     errors.New("role not found"),
		})
		return
	}

	description := parsedCommand.Params.Description
	if description == "" {
		description = role.Name
	}

	conf := c.Engine.Store.Config()
	for _, existing := range conf.Roles {
		if existing.Emoji == parsedCommand.Params.Emoji {
			c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, Error{
				Message: fmt.Sprintf("Emoji %s is already mapped to a role", existing.Emoji.String()),
				Err:     errors.New("duplicate emoji mapping"),
			})
			return
		}
	}

	entry := rolepicker.RoleEntry{
		Emoji:         parsedCommand.Params.Emoji,
		RoleID:        rolepicker.ParseID(role.ID),
		Description:   description,
		AdminApproval: parsedCommand.Params.AdminApproval,
	}

	c.Engine.Store.Update(ctx, func(pc *rolepicker.PickerConfig) {
		pc.Roles = append(pc.Roles, entry)
	})

	if rErr := c.Engine.RefreshPicker(ctx); rErr != nil {
		// The mapping is saved either way; the picker may simply not be
		// posted yet.
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
		&AddRoleOutput{Entry: entry},
	}, nil)
}

// parseAddRoleCommand func
func parseAddRoleCommand(command configs.Command, mc *discordgo.MessageCreate) (*AddRoleCommand, *Error) {
	if aErr := checkArgs(command, mc); aErr != nil {
		return nil, aErr
	}

	splitContent := strings.Fields(mc.Content)

	emoji := rolepicker.ParseEmojiRef(splitContent[1])
	if emoji.Name == "" {
		return nil, &Error{
			Message: fmt.Sprintf("Not an emoji: %s", splitContent[1]),
			Err:     errors.New("invalid emoji argument"),
		}
	}

	matches := roleMentionRegex.FindStringSubmatch(splitContent[2])
	if matches == nil {
		return nil, &Error{
			Message: fmt.Sprintf("Not a role mention: %s", splitContent[2]),
			Err:     errors.New("invalid role argument"),
		}
	}

	params := AddRoleCommandParams{
		Emoji:  emoji,
		RoleID: matches[1],
	}

	rest := splitContent[3:]
	if len(rest) > 0 && strings.ToLower(rest[0]) == "admin_approval" {
		params.AdminApproval = true
		rest = rest[1:]
	}

	params.Description = strings.Join(rest, " ")

	return &AddRoleCommand{Params: params}, nil
}

// ConvertToEmbedField for AddRoleOutput struct
func (a *AddRoleOutput) ConvertToEmbedField() (*discordgo.MessageEmbedField, *discordapi.Error) {
	value := fmt.Sprintf("%s now grants <@&%s>.", a.Entry.Emoji.String(), rolepicker.FormatID(a.Entry.RoleID))
	if a.Entry.AdminApproval {
		value += " Requests require admin approval."
	}

	return &discordgo.MessageEmbedField{
		Name:   fmt.Sprintf("**%s**", a.Entry.Description),
		Value:  value,
		Inline: false,
	}, nil
}

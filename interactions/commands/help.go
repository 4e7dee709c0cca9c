package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/moth-works/rolekeeper/configs"
	"gitlab.com/moth-works/rolekeeper/services/discordapi"
	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
)

// HelpOutput struct
type HelpOutput struct {
	Command configs.Command `json:"command"`
	Prefix  string          `json:"prefix"`
}

// Help lists every enabled command with its usage and examples
func (c *Commands) Help(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	var embeddableFields []discordapi.EmbeddableField

	for _, aCommand := range c.Config.Commands {
		if !aCommand.Enabled {
			continue
		}

		if aCommand.Name == "Help" {
			continue
		}

		if aCommand.OwnerOnly && mc.Author.ID != c.Config.Bot.OwnerID {
			continue
		}

		embeddableFields = append(embeddableFields, &HelpOutput{
			Command: aCommand,
			Prefix:  c.Config.Bot.Prefix,
		})
	}

	embedParams := discordapi.EmbeddableParams{
		Title:       command.Name,
		Description: "Commands that can be used with this bot.",
		TitleURL:    c.Config.Bot.DocumentationURL,
		Footer:      fmt.Sprintf("Executed by %s", mc.Author.Username),
	}

	c.Output(ctx, mc.ChannelID, embedParams, embeddableFields, nil)
}

// ConvertToEmbedField for HelpOutput struct
func (h *HelpOutput) ConvertToEmbedField() (*discordgo.MessageEmbedField, *discordapi.Error) {
	usages := ""
	for _, usage := range h.Command.Usage {
		if usages == "" {
			usages = h.Prefix + usage
		} else {
			usages += "\n" + h.Prefix + usage
		}
	}
	if usages == "" {
		usages = h.Prefix + h.Command.Long
	}

	examples := ""
	for _, example := range h.Command.Examples {
		if examples == "" {
			examples = h.Prefix + example
		} else {
			examples += "\n" + h.Prefix + example
		}
	}

	value := fmt.Sprintf("%s\n**USAGE:**\n```\n%s\n```", h.Command.Description, usages)
	if examples != "" {
		value += fmt.Sprintf("\n**EXAMPLES:**\n```\n%s\n```", examples)
	}
	value += "\n​"

	return &discordgo.MessageEmbedField{
		Name:   fmt.Sprintf("**__%s__**", h.Command.Name),
		Value:  value,
		Inline: false,
	}, nil
}

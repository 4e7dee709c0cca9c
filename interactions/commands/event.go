package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/moth-works/rolekeeper/configs"
	"gitlab.com/moth-works/rolekeeper/rolepicker"
	"gitlab.com/moth-works/rolekeeper/services/discordapi"
	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
)

// EventDocument is the on-disk shape of a saved event announcement
type EventDocument struct {
	ChannelID   int64    `json:"channel_id,omitempty"`
	RoleID      int64    `json:"role_id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Color       string   `json:"color,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Footer      string   `json:"footer,omitempty"`
	Reactions   []string `json:"reactions,omitempty"`
}

// Event loads a saved announcement document by name and posts it as an embed,
// mentioning the configured role and seeding any configured reactions
func (c *Commands) Event(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	if aErr := checkArgs(command, mc); aErr != nil {
		c.ErrorOutput(ctx, command, mc.Content, mc.ChannelID, *aErr)
		return
	}

	name := strings.Fields(mc.Content)[1]
	ctx = logging.AddValues(ctx, zap.String("event_name", name))

	c.deleteInvocation(ctx, mc)

	doc, loadErr := loadEventDocument(c.Config.Events.DataDir, name)
	if loadErr != nil {
		// The detailed failure stays in the log; users get a generic message
		newCtx := logging.AddValues(ctx, zap.NamedError("error", loadErr))
		logger := logging.Logger(newCtx)
		logger.Error("command_log")

		c.sendPlain(ctx, mc.ChannelID, fmt.Sprintf("Could not load event '%s'. Please check that the event file exists and is properly formatted.", name))
		return
	}

	channelID := mc.ChannelID
	if doc.ChannelID != 0 {
		channelID = rolepicker.FormatID(doc.ChannelID)
	}

	color, known := rolepicker.ColorValue(doc.Color, 0)
	if doc.Color == "" || !known {
		color = rolepicker.RandomColor()
	}

	embed := &discordgo.MessageEmbed{
		Title:       doc.Title,
		Description: doc.Description,
		Color:       color,
	}
	if doc.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: doc.ImageURL}
	}
	if doc.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: doc.Footer}
	}

	var content *string
	if doc.RoleID != 0 {
		mention := fmt.Sprintf("<@&%s>", rolepicker.FormatID(doc.RoleID))
		content = &mention
	}

	message, smErr := discordapi.SendMessage(c.Session, channelID, content, embed)
	if smErr != nil {
		newCtx := logging.AddValues(ctx, zap.NamedError("error", smErr.Err), zap.String("error_message", smErr.Message), zap.Int("status_code", smErr.Code))
		logger := logging.Logger(newCtx)
		logger.Error("command_log")

		c.sendPlain(ctx, mc.ChannelID, fmt.Sprintf("Could not load event '%s'. Please check that the event file exists and is properly formatted.", name))
		return
	}

	for _, raw := range doc.Reactions {
		emoji := rolepicker.ParseEmojiRef(raw)
		if arErr := discordapi.AddReaction(c.Session, channelID, message.ID, emoji.APIName()); arErr != nil {
			newCtx := logging.AddValues(ctx, zap.NamedError("error", arErr.Err), zap.String("error_message", "Failed to add event reaction"), zap.String("emoji", raw))
			logger := logging.Logger(newCtx)
			logger.Warn("command_log")
		}
	}
}

// loadEventDocument reads data/<name>.json. The name must be a bare file
// name; anything resembling a path is rejected.
func loadEventDocument(dataDir string, name string) (*EventDocument, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, errors.New("invalid event name")
	}

	raw, err := ioutil.ReadFile(filepath.Join(dataDir, name+".json"))
	if err != nil {
		return nil, err
	}

	var doc EventDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

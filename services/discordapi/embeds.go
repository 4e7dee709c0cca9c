package discordapi

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// EmbeddableParams struct
type EmbeddableParams struct {
	Title        string
	Description  string
	Color        int
	TitleURL     string
	Footer       string
	ThumbnailURL string
	ImageURL     string
}

// EmbeddableField interface
type EmbeddableField interface {
	ConvertToEmbedField() (*discordgo.MessageEmbedField, *Error)
}

// Kept below the documented Discord limits to leave headroom for formatting
const (
	MaxEmbedFields         = 23
	MaxEmbedCharCount      = 5600
	MaxEmbedFieldCharCount = 950
)

// CreateEmbeds converts a set of fields into one or more embeds, splitting
// whenever the field or character limits would be exceeded
func CreateEmbeds(embedParams EmbeddableParams, embeddableFields []EmbeddableField) []discordgo.MessageEmbed {
	var embeds []discordgo.MessageEmbed

	embed := &discordgo.MessageEmbed{
		Title:       embedParams.Title,
		URL:         embedParams.TitleURL,
		Description: embedParams.Description,
		Color:       embedParams.Color,
		Fields:      []*discordgo.MessageEmbedField{},
		// Discord wants ISO8601; RFC3339 is a compatible profile of it.
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if embedParams.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: embedParams.Footer,
		}
	}

	if embedParams.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{
			URL: embedParams.ThumbnailURL,
		}
	}

	if embedParams.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{
			URL: embedParams.ImageURL,
		}
	}

	charCount := 0
	for _, embeddable := range embeddableFields {
		field, err := embeddable.ConvertToEmbedField()

		if err != nil {
			continue
		}

		if len(field.Name)+len(field.Value)+charCount >= MaxEmbedCharCount || len(embed.Fields) >= MaxEmbedFields {
			embeds = append(embeds, *embed)
			embed.Fields = []*discordgo.MessageEmbedField{}
			charCount = 0
		}

		charCount += len(field.Name) + len(field.Value)
		embed.Fields = append(embed.Fields, field)
	}

	if len(embed.Fields) != 0 || len(embeds) == 0 {
		embeds = append(embeds, *embed)
	}

	return embeds
}

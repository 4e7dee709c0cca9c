package rolepicker

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/moth-works/rolekeeper/configs"
	"gitlab.com/moth-works/rolekeeper/models"
	"gitlab.com/moth-works/rolekeeper/services/discordapi"
	"gitlab.com/moth-works/rolekeeper/utils/cache"
	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
)

// User-facing notification texts for the direct toggle path
const (
	grantedNotice = "You have been granted the '%s' role!"
	removedNotice = "The '%s' role has been removed from your account."
	failedNotice  = "Your '%s' role request could not be processed. Please try again later or contact an admin."
)

// Engine consumes reaction events on the picker message, toggles roles or
// hands off to the approval flow, and keeps the picker's reaction menu clean.
type Engine struct {
	Session   discordapi.Session
	Store     *Store
	Cache     *cache.Cache
	Config    *configs.Config
	BotUserID string

	suppressed *SuppressionSet
	approvals  *ApprovalTracker
}

// NewEngine func
func NewEngine(session discordapi.Session, store *Store, ca *cache.Cache, config *configs.Config, botUserID string) *Engine {
	return &Engine{
		Session:    session,
		Store:      store,
		Cache:      ca,
		Config:     config,
		BotUserID:  botUserID,
		suppressed: NewSuppressionSet(),
		approvals:  NewApprovalTracker(),
	}
}

// PendingApprovals reports the number of in-flight approval requests
func (e *Engine) PendingApprovals() int {
	return e.approvals.Count()
}

// HandleReactionAdd processes a reaction-add event. Events on the approval
// request messages are routed to the approval flow; events on the live picker
// either toggle a role directly or open a new approval request. Everything
// else is a no-op.
func (e *Engine) HandleReactionAdd(ctx context.Context, mra *discordgo.MessageReactionAdd) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	if mra.UserID == e.BotUserID {
		return
	}

	if e.offerApproval(ctx, mra) {
		return
	}

	conf := e.Store.Config()
	if !e.isPickerMessage(conf, mra.ChannelID, mra.MessageID) {
		return
	}

	entry := MatchEntry(conf.Roles, mra.Emoji)
	if entry == nil {
		return
	}

	ctx = logging.AddValues(ctx,
		zap.String("emoji", entry.Emoji.String()),
		zap.String("role_id", FormatID(entry.RoleID)),
	)

	role := e.resolveRole(ctx, mra.GuildID, entry.RoleID)
	if role == nil {
		// Role was deleted from the guild after it was configured
		logger := logging.Logger(logging.AddValues(ctx, zap.String("error_message", "Configured role no longer exists in guild")))
		logger.Warn("picker_log")
		return
	}

	if entry.AdminApproval {
		e.removeUserReaction(ctx, mra.ChannelID, mra.MessageID, mra.UserID, mra.Emoji.APIName())
		e.beginApproval(ctx, conf, *entry, mra.GuildID, mra.UserID)
		return
	}

	e.toggleRole(ctx, mra.GuildID, mra.UserID, *entry, role)
	e.removeUserReaction(ctx, mra.ChannelID, mra.MessageID, mra.UserID, mra.Emoji.APIName())
}

// HandleReactionRemove processes a reaction-remove event. Removals the engine
// itself caused are absorbed by the suppression set; a genuine user removal on
// a non-approval entry toggles the role off.
func (e *Engine) HandleReactionRemove(ctx context.Context, mrr *discordgo.MessageReactionRemove) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	if e.suppressed.Consume(mrr.UserID, mrr.MessageID, mrr.Emoji.APIName()) {
		return
	}

	if mrr.UserID == e.BotUserID {
		return
	}

	conf := e.Store.Config()
	if !e.isPickerMessage(conf, mrr.ChannelID, mrr.MessageID) {
		return
	}

	entry := MatchEntry(conf.Roles, mrr.Emoji)
	if entry == nil {
		return
	}

	// Approval-gated reactions never persist on the picker, so a remove event
	// for one carries no meaning.
	if entry.AdminApproval {
		return
	}

	role := e.resolveRole(ctx, mrr.GuildID, entry.RoleID)
	if role == nil {
		return
	}

	member, mErr := discordapi.GetMember(e.Session, mrr.GuildID, mrr.UserID)
	if mErr != nil {
		e.logAPIError(ctx, mErr, "Failed to fetch member for reaction removal")
		return
	}

	if !discordapi.MemberHasRole(member, role.ID) {
		return
	}

	if rErr := discordapi.RemoveMemberRole(e.Session, mrr.GuildID, mrr.UserID, role.ID); rErr != nil {
		e.logAPIError(ctx, rErr, "Failed to revoke role on reaction removal")
		e.notify(ctx, mrr.UserID, fmt.Sprintf(failedNotice, entry.Description))
		return
	}

	e.notify(ctx, mrr.UserID, fmt.Sprintf(removedNotice, entry.Description))
}

// PostPicker deletes any previous picker message, posts a fresh one in the
// given channel with the baseline reaction menu, and records the new message
// identity in the persisted document.
func (e *Engine) PostPicker(ctx context.Context, channelID string) *discordapi.Error {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()), zap.String("channel_id", channelID))

	conf := e.Store.Config()

	if conf.MessageID != 0 && conf.ChannelID != 0 {
		if dErr := discordapi.DeleteMessage(e.Session, FormatID(conf.ChannelID), FormatID(conf.MessageID)); dErr != nil {
			e.logAPIError(ctx, dErr, "Failed to delete previous picker message")
		}
	}

	embed := e.buildPickerEmbed(ctx, conf)
	message, sErr := discordapi.SendMessage(e.Session, channelID, nil, embed)
	if sErr != nil {
		return sErr
	}

	e.addBaselineReactions(ctx, conf, channelID, message.ID)

	e.Store.Update(ctx, func(c *PickerConfig) {
		c.MessageID = ParseID(message.ID)
		c.ChannelID = ParseID(channelID)
	})

	return nil
}

// RefreshPicker re-renders the live picker embed in place and re-adds any
// missing baseline reactions. It fails when the picker has never been posted.
func (e *Engine) RefreshPicker(ctx context.Context) *discordapi.Error {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	conf := e.Store.Config()
	if conf.MessageID == 0 || conf.ChannelID == 0 {
		return &discordapi.Error{
			Code:    -1,
			Err:     errors.New("picker has not been posted"),
			Message: "The role picker has not been posted yet",
		}
	}

	channelID := FormatID(conf.ChannelID)
	messageID := FormatID(conf.MessageID)

	embed := e.buildPickerEmbed(ctx, conf)
	if _, eErr := discordapi.EditMessage(e.Session, channelID, messageID, nil, embed); eErr != nil {
		return eErr
	}

	e.addBaselineReactions(ctx, conf, channelID, messageID)
	return nil
}

// RemoveBaselineReaction clears the bot's own menu reaction for an emoji that
// is no longer configured. Best-effort.
func (e *Engine) RemoveBaselineReaction(ctx context.Context, emoji EmojiRef) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()), zap.String("emoji", emoji.String()))

	conf := e.Store.Config()
	if conf.MessageID == 0 || conf.ChannelID == 0 {
		return
	}

	messageID := FormatID(conf.MessageID)
	e.suppressed.Mark(e.BotUserID, messageID, emoji.APIName())
	if rErr := discordapi.RemoveReaction(e.Session, FormatID(conf.ChannelID), messageID, emoji.APIName(), e.BotUserID); rErr != nil {
		e.suppressed.Consume(e.BotUserID, messageID, emoji.APIName())
		e.logAPIError(ctx, rErr, "Failed to remove baseline reaction")
	}
}

func (e *Engine) buildPickerEmbed(ctx context.Context, conf *PickerConfig) *discordgo.MessageEmbed {
	color, known := ColorValue(conf.Color, mustDefaultColor(e.Config))
	if conf.Color != "" && !known {
		logger := logging.Logger(logging.AddValues(ctx,
			zap.String("color", conf.Color),
			zap.String("error_message", "Unrecognized picker color name, using default"),
		))
		logger.Warn("picker_log")
	}

	embed := &discordgo.MessageEmbed{
		Title:  conf.EmbedTitle,
		Color:  color,
		Fields: []*discordgo.MessageEmbedField{},
	}

	if conf.EmbedImage != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: conf.EmbedImage}
	}

	if conf.EmbedFooter != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: conf.EmbedFooter}
	}

	for _, entry := range conf.Roles {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   entry.Emoji.String(),
			Value:  entry.Description,
			Inline: false,
		})
	}

	return embed
}

// addBaselineReactions attempts every configured menu reaction; a failure on
// one emoji is logged and does not stop the rest
func (e *Engine) addBaselineReactions(ctx context.Context, conf *PickerConfig, channelID string, messageID string) {
	for _, entry := range conf.Roles {
		if aErr := discordapi.AddReaction(e.Session, channelID, messageID, entry.Emoji.APIName()); aErr != nil {
			logger := logging.Logger(logging.AddValues(ctx,
				zap.NamedError("error", aErr.Err),
				zap.String("error_message", aErr.Message),
				zap.String("emoji", entry.Emoji.String()),
			))
			logger.Error("picker_log")
		}
	}
}

func (e *Engine) toggleRole(ctx context.Context, guildID string, userID string, entry RoleEntry, role *discordgo.Role) {
	member, mErr := discordapi.GetMember(e.Session, guildID, userID)
	if mErr != nil {
		e.logAPIError(ctx, mErr, "Failed to fetch member for role toggle")
		return
	}

	if discordapi.MemberHasRole(member, role.ID) {
		if rErr := discordapi.RemoveMemberRole(e.Session, guildID, userID, role.ID); rErr != nil {
			e.logAPIError(ctx, rErr, "Failed to revoke role")
			e.notify(ctx, userID, fmt.Sprintf(failedNotice, entry.Description))
			return
		}

		e.notify(ctx, userID, fmt.Sprintf(removedNotice, entry.Description))
		return
	}

	if aErr := discordapi.AddMemberRole(e.Session, guildID, userID, role.ID); aErr != nil {
		e.logAPIError(ctx, aErr, "Failed to grant role")
		e.notify(ctx, userID, fmt.Sprintf(failedNotice, entry.Description))
		return
	}

	e.notify(ctx, userID, fmt.Sprintf(grantedNotice, entry.Description))
}

// removeUserReaction marks the removal in the suppression set before issuing
// it, so the resulting remove event is absorbed. The mark is rolled back when
// the call fails, since no event will arrive to consume it.
func (e *Engine) removeUserReaction(ctx context.Context, channelID string, messageID string, userID string, emoji string) {
	e.suppressed.Mark(userID, messageID, emoji)

	if rErr := discordapi.RemoveReaction(e.Session, channelID, messageID, emoji, userID); rErr != nil {
		e.suppressed.Consume(userID, messageID, emoji)
		e.logAPIError(ctx, rErr, "Failed to remove user reaction")
	}
}

func (e *Engine) isPickerMessage(conf *PickerConfig, channelID string, messageID string) bool {
	if conf.MessageID == 0 {
		return false
	}

	return messageID == FormatID(conf.MessageID) && channelID == FormatID(conf.ChannelID)
}

// resolveRole finds a configured role in the guild's role listing, consulting
// the cache before the API
func (e *Engine) resolveRole(ctx context.Context, guildID string, roleID int64) *discordgo.Role {
	roles, rErr := e.guildRoles(ctx, guildID)
	if rErr != nil {
		e.logAPIError(ctx, rErr, "Failed to fetch guild roles")
		return nil
	}

	want := FormatID(roleID)
	for _, role := range roles {
		if role.ID == want {
			return role
		}
	}

	return nil
}

func (e *Engine) guildRoles(ctx context.Context, guildID string) ([]*discordgo.Role, *discordapi.Error) {
	settings := e.Config.CacheSettings.GuildRoles

	var cached *models.GuildRoleList
	cacheKey := cached.CacheKey(settings.Base, guildID)
	if cErr := cache.GetCache(ctx, e.Cache, settings, cacheKey, &cached); cErr != nil {
		logger := logging.Logger(logging.AddValues(ctx, zap.NamedError("error", cErr.Err), zap.String("error_message", cErr.Message)))
		logger.Error("cache_log")
	} else if cached != nil && len(cached.Roles) > 0 {
		return cached.Roles, nil
	}

	roles, rErr := discordapi.GetGuildRoles(e.Session, guildID)
	if rErr != nil {
		return nil, rErr
	}

	if cErr := cache.SetCache(ctx, e.Cache, settings, cacheKey, &models.GuildRoleList{GuildID: guildID, Roles: roles}); cErr != nil {
		logger := logging.Logger(logging.AddValues(ctx, zap.NamedError("error", cErr.Err), zap.String("error_message", cErr.Message)))
		logger.Error("cache_log")
	}

	return roles, nil
}

// notify DMs the user; failures are logged and swallowed since users can
// block DMs
func (e *Engine) notify(ctx context.Context, userID string, content string) {
	if dmErr := discordapi.SendDM(e.Session, userID, content); dmErr != nil {
		logger := logging.Logger(logging.AddValues(ctx,
			zap.NamedError("error", dmErr.Err),
			zap.String("error_message", dmErr.Message),
			zap.String("dm_user_id", userID),
		))
		logger.Warn("picker_log")
	}
}

func (e *Engine) logAPIError(ctx context.Context, apiErr *discordapi.Error, message string) {
	logger := logging.Logger(logging.AddValues(ctx,
		zap.NamedError("error", apiErr.Err),
		zap.String("error_message", message),
		zap.Int("status_code", apiErr.Code),
	))
	logger.Error("picker_log")
}

func mustDefaultColor(config *configs.Config) int {
	if config == nil {
		return colorValues["blurple"]
	}

	color, _ := ColorValue(config.RolePicker.DefaultColor, colorValues["blurple"])
	return color
}

package rolepicker

import (
	"context"
	"strconv"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminChannelID = "600"
	testAdminID        = "700"
	testAdminRoleID    = "710"
)

func approvalTestConfig() *PickerConfig {
	conf := defaultTestConfig()
	conf.Roles[0].AdminApproval = true
	conf.AdminChannelID = ParseID(testAdminChannelID)
	return conf
}

func approvalTestSession() *fakeSession {
	session := newFakeSession()
	session.guildRoles[testGuildID] = []*discordgo.Role{
		{ID: testRoleID, Name: "Gamer"},
		{ID: testAdminRoleID, Name: "Admin", Permissions: discordgo.PermissionAdministrator},
	}
	session.memberRoles[memberKey(testGuildID, testUserID)] = []string{}
	session.memberRoles[memberKey(testGuildID, testAdminID)] = []string{testAdminRoleID}
	return session
}

// requestMessageID returns the ID of the approval request message the engine
// posted into the admin channel. The fake assigns IDs sequentially across all
// sends, so the ID is derived from the message's position.
func requestMessageID(t *testing.T, session *fakeSession) string {
	t.Helper()

	session.mu.Lock()
	defer session.mu.Unlock()

	for i, message := range session.sent {
		if message.ChannelID == testAdminChannelID {
			return strconv.Itoa(i + 1)
		}
	}

	t.Fatal("no approval request message was posted")
	return ""
}

func adminReaction(messageID string, emoji discordgo.Emoji, userID string) *discordgo.MessageReactionAdd {
	return &discordgo.MessageReactionAdd{
		MessageReaction: &discordgo.MessageReaction{
			UserID:    userID,
			MessageID: messageID,
			ChannelID: testAdminChannelID,
			GuildID:   testGuildID,
			Emoji:     emoji,
		},
	}
}

func TestApprovalRequestPostedNotGranted(t *testing.T) {
	session := approvalTestSession()
	engine := newTestEngine(t, session, approvalTestConfig())

	engine.HandleReactionAdd(context.Background(), reactionAdd(discordgo.Emoji{Name: "🎮"}, testUserID))

	// Role is not granted until an admin approves
	assert.False(t, session.memberHas(testGuildID, testUserID, testRoleID))
	assert.Equal(t, 1, engine.PendingApprovals())

	// Requester's reaction is cleaned off the picker
	require.NotEmpty(t, session.reactionsRemoved)
	assert.Equal(t, testMessageID+"/🎮/"+testUserID, session.reactionsRemoved[0])

	// Requester is told the request is pending
	dms := session.dmsTo(testUserID)
	require.Len(t, dms, 1)
	assert.Contains(t, dms[0], "pending admin approval")

	// The request message carries the approve and deny reactions
	reqID := requestMessageID(t, session)
	assert.Contains(t, session.reactionsAdded, reqID+"/✅")
	assert.Contains(t, session.reactionsAdded, reqID+"/❌")
}

func TestApprovalApprovedByAdmin(t *testing.T) {
	session := approvalTestSession()
	engine := newTestEngine(t, session, approvalTestConfig())

	engine.HandleReactionAdd(context.Background(), reactionAdd(discordgo.Emoji{Name: "🎮"}, testUserID))
	reqID := requestMessageID(t, session)

	engine.HandleReactionAdd(context.Background(), adminReaction(reqID, discordgo.Emoji{Name: "✅"}, testAdminID))

	assert.True(t, session.memberHas(testGuildID, testUserID, testRoleID))
	assert.Equal(t, 0, engine.PendingApprovals())

	dms := session.dmsTo(testUserID)
	require.Len(t, dms, 2)
	assert.Contains(t, dms[1], "approved")

	// Request message is edited with the confirmation and its menu cleared
	require.NotEmpty(t, session.edits)
	assert.Contains(t, session.edits[len(session.edits)-1].Content, "approved")
	assert.Contains(t, session.reactionsCleared, reqID)
}

func TestApprovalDeniedByAdmin(t *testing.T) {
	session := approvalTestSession()
	engine := newTestEngine(t, session, approvalTestConfig())

	engine.HandleReactionAdd(context.Background(), reactionAdd(discordgo.Emoji{Name: "🎮"}, testUserID))
	reqID := requestMessageID(t, session)

	engine.HandleReactionAdd(context.Background(), adminReaction(reqID, discordgo.Emoji{Name: "❌"}, testAdminID))

	assert.False(t, session.memberHas(testGuildID, testUserID, testRoleID))
	assert.Equal(t, 0, engine.PendingApprovals())

	dms := session.dmsTo(testUserID)
	require.Len(t, dms, 2)
	assert.Contains(t, dms[1], "denied")
}

func TestApprovalIgnoresNonAdminReaction(t *testing.T) {
	session := approvalTestSession()
	session.memberRoles[memberKey(testGuildID, "800")] = []string{}

	engine := newTestEngine(t, session, approvalTestConfig())

	engine.HandleReactionAdd(context.Background(), reactionAdd(discordgo.Emoji{Name: "🎮"}, testUserID))
	reqID := requestMessageID(t, session)

	engine.HandleReactionAdd(context.Background(), adminReaction(reqID, discordgo.Emoji{Name: "✅"}, "800"))

	assert.False(t, session.memberHas(testGuildID, testUserID, testRoleID))
	assert.Equal(t, 1, engine.PendingApprovals())
}

func TestApprovalIgnoresUnrelatedEmoji(t *testing.T) {
	session := approvalTestSession()
	engine := newTestEngine(t, session, approvalTestConfig())

	engine.HandleReactionAdd(context.Background(), reactionAdd(discordgo.Emoji{Name: "🎮"}, testUserID))
	reqID := requestMessageID(t, session)

	engine.HandleReactionAdd(context.Background(), adminReaction(reqID, discordgo.Emoji{Name: "🍕"}, testAdminID))

	assert.False(t, session.memberHas(testGuildID, testUserID, testRoleID))
	assert.Equal(t, 1, engine.PendingApprovals())
}

func TestApprovalTimeoutDiscardsRequest(t *testing.T) {
	session := approvalTestSession()
	engine := newTestEngine(t, session, approvalTestConfig())

	engine.HandleReactionAdd(context.Background(), reactionAdd(discordgo.Emoji{Name: "🎮"}, testUserID))
	reqID := requestMessageID(t, session)

	engine.expireApproval(reqID)

	assert.False(t, session.memberHas(testGuildID, testUserID, testRoleID))
	assert.Equal(t, 0, engine.PendingApprovals())

	dms := session.dmsTo(testUserID)
	require.Len(t, dms, 2)
	assert.Contains(t, dms[1], "timed out")

	// An admin reacting after the deadline finds nothing to act on
	engine.HandleReactionAdd(context.Background(), adminReaction(reqID, discordgo.Emoji{Name: "✅"}, testAdminID))
	assert.False(t, session.memberHas(testGuildID, testUserID, testRoleID))
}

func TestApprovalSecondResolutionIsNoop(t *testing.T) {
	session := approvalTestSession()
	engine := newTestEngine(t, session, approvalTestConfig())

	engine.HandleReactionAdd(context.Background(), reactionAdd(discordgo.Emoji{Name: "🎮"}, testUserID))
	reqID := requestMessageID(t, session)

	engine.HandleReactionAdd(context.Background(), adminReaction(reqID, discordgo.Emoji{Name: "❌"}, testAdminID))
	dmsAfterDeny := len(session.dmsTo(testUserID))

	engine.HandleReactionAdd(context.Background(), adminReaction(reqID, discordgo.Emoji{Name: "✅"}, testAdminID))

	assert.False(t, session.memberHas(testGuildID, testUserID, testRoleID))
	assert.Len(t, session.dmsTo(testUserID), dmsAfterDeny)
}

func TestApprovalWithoutAdminChannelAborts(t *testing.T) {
	session := approvalTestSession()

	conf := approvalTestConfig()
	conf.AdminChannelID = 0

	engine := newTestEngine(t, session, conf)

	engine.HandleReactionAdd(context.Background(), reactionAdd(discordgo.Emoji{Name: "🎮"}, testUserID))

	assert.False(t, session.memberHas(testGuildID, testUserID, testRoleID))
	assert.Equal(t, 0, engine.PendingApprovals())

	dms := session.dmsTo(testUserID)
	require.Len(t, dms, 2)
	assert.Contains(t, dms[1], "could not be processed")
}

func TestApprovalGrantFailureNotifiesRequester(t *testing.T) {
	session := approvalTestSession()
	engine := newTestEngine(t, session, approvalTestConfig())

	engine.HandleReactionAdd(context.Background(), reactionAdd(discordgo.Emoji{Name: "🎮"}, testUserID))
	reqID := requestMessageID(t, session)

	session.failRoleAdd = true
	engine.HandleReactionAdd(context.Background(), adminReaction(reqID, discordgo.Emoji{Name: "✅"}, testAdminID))

	assert.False(t, session.memberHas(testGuildID, testUserID, testRoleID))
	assert.Equal(t, 0, engine.PendingApprovals())

	dms := session.dmsTo(testUserID)
	require.Len(t, dms, 2)
	assert.Contains(t, dms[1], "could not be completed")
}

func TestEffectiveApprovalSynthesizesDefaults(t *testing.T) {
	entry := RoleEntry{
		Emoji:       EmojiRef{Name: "🛡️"},
		RoleID:      42,
		Description: "Moderator",
	}

	approval := effectiveApproval(&PickerConfig{}, entry)

	require.Len(t, approval.ApprovalOptions, 1)
	assert.Equal(t, EmojiRef{Name: "✅"}, approval.ApprovalOptions[0].Emoji)
	assert.Equal(t, int64(42), approval.ApprovalOptions[0].RoleID)
	assert.Equal(t, EmojiRef{Name: "❌"}, approval.DenyEmoji)
	assert.NotEmpty(t, approval.PendingMessage)
	assert.NotEmpty(t, approval.ApprovalPrompt)
	assert.NotEmpty(t, approval.DeniedMessage)
}

func TestEffectiveApprovalKeepsConfiguredOptions(t *testing.T) {
	conf := &PickerConfig{
		AdminApproval: &ApprovalConfig{
			PendingMessage: "hold tight {user}",
			DenyEmoji:      EmojiRef{Name: "🚫"},
			ApprovalOptions: []ApprovalOption{
				{Emoji: EmojiRef{Name: "🥇"}, RoleID: 1, Label: "Gold"},
				{Emoji: EmojiRef{Name: "🥈"}, RoleID: 2, Label: "Silver"},
			},
		},
	}

	approval := effectiveApproval(conf, RoleEntry{RoleID: 42})

	require.Len(t, approval.ApprovalOptions, 2)
	assert.Equal(t, "hold tight {user}", approval.PendingMessage)
	assert.Equal(t, EmojiRef{Name: "🚫"}, approval.DenyEmoji)
}

func TestRenderTemplate(t *testing.T) {
	rendered := renderTemplate("{admin} approved '{role}' for {user}.", "u1", "Gamer", "a1")
	assert.Equal(t, "<@a1> approved 'Gamer' for <@u1>.", rendered)
}

package rolepicker

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/moth-works/rolekeeper/services/discordapi"
	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
)

// Default approval texts, used when the picker document carries no
// admin_approval block. Together with the synthesized ✅ option they make the
// plain approve/deny flow a configuration instance of the general one.
const (
	defaultPendingMessage    = "Your request for the '{role}' role is pending admin approval."
	defaultApprovalPrompt    = "{user} has requested the '{role}' role. React below to approve or deny."
	defaultApprovedMessage   = "Your request for the '{role}' role was approved by an admin."
	defaultDeniedMessage     = "Your request for the '{role}' role was denied by an admin."
	defaultAdminConfirmation = "{admin} approved the '{role}' role request for {user}."

	deniedConfirmation  = "{admin} denied the '{role}' role request for {user}."
	timedOutEdit        = "Role request for '{role}' from {user} timed out."
	timedOutNotice      = "Your request for the '{role}' role timed out before an admin responded."
	misconfiguredEdit   = "Role request for '{role}' from {user} could not be completed: the configured role no longer exists."
	grantFailedEdit     = "Role request for '{role}' from {user} could not be completed."
	grantFailedNotice   = "Your request for the '{role}' role could not be completed. Please contact an admin."
	noAdminChannelError = "Your request for the '{role}' role could not be processed."

	defaultApprovalTimeout = 6 * time.Hour
)

// PendingApproval is the in-memory record of one open approval request, keyed
// by the admin request message. It is never persisted; a restart drops any
// in-flight request.
type PendingApproval struct {
	RequesterID      string
	GuildID          string
	Entry            RoleEntry
	Approval         ApprovalConfig
	RequestChannelID string
	RequestMessageID string
	CreatedAt        time.Time

	timer *time.Timer
}

// ApprovalTracker is the registry of open approval requests. Exactly one of
// approve, deny, or timeout may claim a request; claiming removes it, so a
// second qualifying reaction finds nothing to act on.
type ApprovalTracker struct {
	mu      sync.Mutex
	pending map[string]*PendingApproval
}

// NewApprovalTracker func
func NewApprovalTracker() *ApprovalTracker {
	return &ApprovalTracker{
		pending: make(map[string]*PendingApproval),
	}
}

func (t *ApprovalTracker) register(messageID string, p *PendingApproval) {
	t.mu.Lock()
	t.pending[messageID] = p
	t.mu.Unlock()
}

// arm attaches the deadline timer; when the request was already claimed in
// the meantime the timer is stopped immediately
func (t *ApprovalTracker) arm(messageID string, timer *time.Timer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if p, ok := t.pending[messageID]; ok {
		p.timer = timer
		return
	}

	timer.Stop()
}

func (t *ApprovalTracker) get(messageID string) (*PendingApproval, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.pending[messageID]
	return p, ok
}

// take claims a request for resolution. It succeeds at most once per request.
func (t *ApprovalTracker) take(messageID string) (*PendingApproval, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.pending[messageID]
	if !ok {
		return nil, false
	}

	delete(t.pending, messageID)
	if p.timer != nil {
		p.timer.Stop()
	}

	return p, true
}

// Count reports the number of open requests
func (t *ApprovalTracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.pending)
}

// effectiveApproval materializes the approval configuration for an entry,
// filling defaults and synthesizing a single approve option for the entry's
// own role when none are configured
func effectiveApproval(conf *PickerConfig, entry RoleEntry) ApprovalConfig {
	approval := ApprovalConfig{}
	if conf.AdminApproval != nil {
		approval = *conf.AdminApproval
	}

	if approval.PendingMessage == "" {
		approval.PendingMessage = defaultPendingMessage
	}
	if approval.ApprovalPrompt == "" {
		approval.ApprovalPrompt = defaultApprovalPrompt
	}
	if approval.DeniedMessage == "" {
		approval.DeniedMessage = defaultDeniedMessage
	}
	if !approval.DenyEmoji.IsCustom() && approval.DenyEmoji.Name == "" {
		approval.DenyEmoji = EmojiRef{Name: "❌"}
	}

	if len(approval.ApprovalOptions) == 0 {
		approval.ApprovalOptions = []ApprovalOption{
			{
				Emoji:  EmojiRef{Name: "✅"},
				RoleID: entry.RoleID,
				Label:  entry.Description,
			},
		}
	}

	return approval
}

// renderTemplate substitutes the {user}, {role} and {admin} placeholders;
// anything else passes through untouched
func renderTemplate(tmpl string, userID string, roleLabel string, adminID string) string {
	replacer := strings.NewReplacer(
		"{user}", mention(userID),
		"{role}", roleLabel,
		"{admin}", mention(adminID),
	)

	return replacer.Replace(tmpl)
}

func mention(userID string) string {
	if userID == "" {
		return ""
	}

	return "<@" + userID + ">"
}

// beginApproval runs steps one through three of the approval flow: notify the
// requester, post the admin request message, attach the option reactions, and
// register the pending record with its deadline.
func (e *Engine) beginApproval(ctx context.Context, conf *PickerConfig, entry RoleEntry, guildID string, userID string) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()), zap.String("requester_id", userID))

	approval := effectiveApproval(conf, entry)

	e.notify(ctx, userID, renderTemplate(approval.PendingMessage, userID, entry.Description, ""))

	if conf.AdminChannelID == 0 {
		logger := logging.Logger(logging.AddValues(ctx, zap.String("error_message", "No admin channel configured for approval request")))
		logger.Error("approval_log")
		e.notify(ctx, userID, renderTemplate(noAdminChannelError, userID, entry.Description, ""))
		return
	}

	adminChannelID := FormatID(conf.AdminChannelID)
	content := e.buildRequestContent(approval, entry, userID)

	message, sErr := discordapi.SendMessage(e.Session, adminChannelID, &content, nil)
	if sErr != nil {
		e.logAPIError(ctx, sErr, "Failed to post approval request message")
		e.notify(ctx, userID, renderTemplate(noAdminChannelError, userID, entry.Description, ""))
		return
	}

	for _, option := range approval.ApprovalOptions {
		if aErr := discordapi.AddReaction(e.Session, adminChannelID, message.ID, option.Emoji.APIName()); aErr != nil {
			e.logAPIError(ctx, aErr, "Failed to add approval option reaction")
		}
	}
	if aErr := discordapi.AddReaction(e.Session, adminChannelID, message.ID, approval.DenyEmoji.APIName()); aErr != nil {
		e.logAPIError(ctx, aErr, "Failed to add deny reaction")
	}

	pending := &PendingApproval{
		RequesterID:      userID,
		GuildID:          guildID,
		Entry:            entry,
		Approval:         approval,
		RequestChannelID: adminChannelID,
		RequestMessageID: message.ID,
		CreatedAt:        time.Now(),
	}

	e.approvals.register(message.ID, pending)

	messageID := message.ID
	timer := time.AfterFunc(e.approvalTimeout(), func() {
		e.expireApproval(messageID)
	})
	e.approvals.arm(messageID, timer)

	logger := logging.Logger(logging.AddValues(ctx, zap.String("request_message_id", message.ID)))
	logger.Info("approval_log")
}

func (e *Engine) buildRequestContent(approval ApprovalConfig, entry RoleEntry, userID string) string {
	var b strings.Builder
	b.WriteString(renderTemplate(approval.ApprovalPrompt, userID, entry.Description, ""))

	for _, option := range approval.ApprovalOptions {
		b.WriteString("\n")
		b.WriteString(option.Emoji.String())
		b.WriteString(" — ")
		if option.Label != "" {
			b.WriteString(option.Label)
		} else {
			b.WriteString("Approve")
		}
	}

	b.WriteString("\n")
	b.WriteString(approval.DenyEmoji.String())
	b.WriteString(" — Deny")

	return b.String()
}

// offerApproval routes a reaction-add event at an open approval request. It
// reports true whenever the event belongs to a request message, even when the
// predicate rejects it, so the caller does not treat it as a picker event.
func (e *Engine) offerApproval(ctx context.Context, mra *discordgo.MessageReactionAdd) bool {
	pending, ok := e.approvals.get(mra.MessageID)
	if !ok {
		return false
	}

	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()), zap.String("request_message_id", mra.MessageID))

	var matched *ApprovalOption
	for i := range pending.Approval.ApprovalOptions {
		if pending.Approval.ApprovalOptions[i].Emoji.Matches(mra.Emoji) {
			matched = &pending.Approval.ApprovalOptions[i]
			break
		}
	}

	isDeny := pending.Approval.DenyEmoji.Matches(mra.Emoji)
	if matched == nil && !isDeny {
		return true
	}

	member, mErr := discordapi.GetMember(e.Session, mra.GuildID, mra.UserID)
	if mErr != nil {
		e.logAPIError(ctx, mErr, "Failed to fetch reacting member for approval predicate")
		return true
	}

	roles, rErr := e.guildRoles(ctx, mra.GuildID)
	if rErr != nil {
		e.logAPIError(ctx, rErr, "Failed to fetch guild roles for approval predicate")
		return true
	}

	if !discordapi.IsAdministrator(member, roles) {
		return true
	}

	claimed, ok := e.approvals.take(mra.MessageID)
	if !ok {
		// Already resolved by a racing reaction or the deadline
		return true
	}

	e.resolveApproval(ctx, claimed, matched, isDeny, mra.UserID)
	return true
}

// resolveApproval executes the terminal outcome for a claimed request
func (e *Engine) resolveApproval(ctx context.Context, p *PendingApproval, option *ApprovalOption, isDeny bool, adminID string) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()), zap.String("admin_id", adminID), zap.String("requester_id", p.RequesterID))

	if cErr := discordapi.ClearReactions(e.Session, p.RequestChannelID, p.RequestMessageID); cErr != nil {
		e.logAPIError(ctx, cErr, "Failed to clear reactions on resolved approval request")
	}

	if isDeny {
		e.editRequest(ctx, p, renderTemplate(deniedConfirmation, p.RequesterID, p.Entry.Description, adminID))
		e.notify(ctx, p.RequesterID, renderTemplate(p.Approval.DeniedMessage, p.RequesterID, p.Entry.Description, adminID))

		logger := logging.Logger(logging.AddValues(ctx, zap.String("outcome", "denied")))
		logger.Info("approval_log")
		return
	}

	label := option.Label
	if label == "" {
		label = p.Entry.Description
	}

	role := e.resolveRole(ctx, p.GuildID, option.RoleID)
	if role == nil {
		e.editRequest(ctx, p, renderTemplate(misconfiguredEdit, p.RequesterID, label, adminID))
		e.notify(ctx, p.RequesterID, renderTemplate(grantFailedNotice, p.RequesterID, label, adminID))

		logger := logging.Logger(logging.AddValues(ctx, zap.String("outcome", "misconfigured"), zap.String("role_id", FormatID(option.RoleID))))
		logger.Error("approval_log")
		return
	}

	if gErr := discordapi.AddMemberRole(e.Session, p.GuildID, p.RequesterID, role.ID); gErr != nil {
		e.logAPIError(ctx, gErr, "Failed to grant approved role")
		e.editRequest(ctx, p, renderTemplate(grantFailedEdit, p.RequesterID, label, adminID))
		e.notify(ctx, p.RequesterID, renderTemplate(grantFailedNotice, p.RequesterID, label, adminID))
		return
	}

	confirmation := option.AdminConfirmation
	if confirmation == "" {
		confirmation = defaultAdminConfirmation
	}
	approved := option.ApprovedMessage
	if approved == "" {
		approved = defaultApprovedMessage
	}

	e.editRequest(ctx, p, renderTemplate(confirmation, p.RequesterID, label, adminID))
	e.notify(ctx, p.RequesterID, renderTemplate(approved, p.RequesterID, label, adminID))

	logger := logging.Logger(logging.AddValues(ctx, zap.String("outcome", "approved"), zap.String("role_id", role.ID)))
	logger.Info("approval_log")
}

// expireApproval is the deadline path; it claims the request like any other
// outcome, so it is a no-op when an admin already resolved it
func (e *Engine) expireApproval(messageID string) {
	ctx := logging.AddValues(context.Background(),
		zap.String("scope", logging.GetFuncName()),
		zap.String("request_message_id", messageID),
	)

	p, ok := e.approvals.take(messageID)
	if !ok {
		return
	}

	if cErr := discordapi.ClearReactions(e.Session, p.RequestChannelID, p.RequestMessageID); cErr != nil {
		e.logAPIError(ctx, cErr, "Failed to clear reactions on expired approval request")
	}

	e.editRequest(ctx, p, renderTemplate(timedOutEdit, p.RequesterID, p.Entry.Description, ""))
	e.notify(ctx, p.RequesterID, renderTemplate(timedOutNotice, p.RequesterID, p.Entry.Description, ""))

	logger := logging.Logger(logging.AddValues(ctx, zap.String("outcome", "timed_out")))
	logger.Info("approval_log")
}

func (e *Engine) editRequest(ctx context.Context, p *PendingApproval, content string) {
	if _, eErr := discordapi.EditMessage(e.Session, p.RequestChannelID, p.RequestMessageID, &content, nil); eErr != nil {
		e.logAPIError(ctx, eErr, "Failed to edit approval request message")
	}
}

func (e *Engine) approvalTimeout() time.Duration {
	if e.Config == nil || e.Config.RolePicker.ApprovalTimeout <= 0 {
		return defaultApprovalTimeout
	}

	return e.Config.RolePicker.ApprovalTimeout * time.Second
}

package rolepicker

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
)

// RoleEntry is one configured reaction-to-role mapping
type RoleEntry struct {
	Emoji         EmojiRef `json:"emoji"`
	RoleID        int64    `json:"role_id"`
	Description   string   `json:"description"`
	AdminApproval bool     `json:"admin_approval"`
}

// ApprovalOption is one admin-selectable outcome within the approval flow
type ApprovalOption struct {
	Emoji             EmojiRef `json:"emoji"`
	RoleID            int64    `json:"role_id"`
	Label             string   `json:"label"`
	ApprovedMessage   string   `json:"approved_message,omitempty"`
	AdminConfirmation string   `json:"admin_confirmation,omitempty"`
}

// ApprovalConfig carries the admin-approval message templates and options
type ApprovalConfig struct {
	PendingMessage  string           `json:"pending_message"`
	ApprovalPrompt  string           `json:"approval_prompt"`
	DenyEmoji       EmojiRef         `json:"deny_emoji"`
	DeniedMessage   string           `json:"denied_message"`
	ApprovalOptions []ApprovalOption `json:"approval_options"`
}

// PickerConfig is the persisted picker document. It is the sole source of
// truth across process restarts.
type PickerConfig struct {
	EmbedTitle     string          `json:"embed_title"`
	EmbedImage     string          `json:"embed_image,omitempty"`
	EmbedFooter    string          `json:"embed_footer,omitempty"`
	Color          string          `json:"color,omitempty"`
	Roles          []RoleEntry     `json:"roles"`
	AdminChannelID int64           `json:"admin_channel_id,omitempty"`
	AdminApproval  *ApprovalConfig `json:"admin_approval,omitempty"`
	MessageID      int64           `json:"message_id,omitempty"`
	ChannelID      int64           `json:"channel_id,omitempty"`
}

// DefaultConfig returns the document synthesized when none exists on disk
func DefaultConfig() *PickerConfig {
	return &PickerConfig{
		EmbedTitle: "Pick Your Role!",
		Roles:      []RoleEntry{},
	}
}

// Store loads and persists the picker document. All mutation goes through
// Update so concurrent handlers never observe a half-applied document.
type Store struct {
	path string

	mu   sync.Mutex
	conf *PickerConfig
}

// NewStore func
func NewStore(path string) *Store {
	return &Store{
		path: path,
		conf: DefaultConfig(),
	}
}

// Load reads the document from disk. A missing file synthesizes the default
// and writes it back best-effort; a corrupt file falls back to the default
// without touching the file so an operator can inspect it. Load never fails.
func (s *Store) Load(ctx context.Context) *PickerConfig {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()), zap.String("config_path", s.path))

	raw, err := ioutil.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.mu.Lock()
			s.conf = DefaultConfig()
			s.writeLocked(ctx)
			s.mu.Unlock()
			return s.Config()
		}

		ctx = logging.AddValues(ctx, zap.NamedError("error", err), zap.String("error_message", "Failed to read picker config, using default"))
		logger := logging.Logger(ctx)
		logger.Error("config_log")

		s.mu.Lock()
		s.conf = DefaultConfig()
		s.mu.Unlock()
		return s.Config()
	}

	var conf PickerConfig
	if err := json.Unmarshal(raw, &conf); err != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", err), zap.String("error_message", "Picker config is malformed, using default and preserving the file"))
		logger := logging.Logger(ctx)
		logger.Error("config_log")

		s.mu.Lock()
		s.conf = DefaultConfig()
		s.mu.Unlock()
		return s.Config()
	}

	if conf.Roles == nil {
		conf.Roles = []RoleEntry{}
	}

	s.mu.Lock()
	s.conf = &conf
	s.mu.Unlock()

	return s.Config()
}

// Config returns a snapshot of the current document. The slice headers are
// copied so callers can range over them while an Update replaces the document.
func (s *Store) Config() *PickerConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := *s.conf
	snapshot.Roles = append([]RoleEntry(nil), s.conf.Roles...)
	if s.conf.AdminApproval != nil {
		approval := *s.conf.AdminApproval
		approval.ApprovalOptions = append([]ApprovalOption(nil), s.conf.AdminApproval.ApprovalOptions...)
		snapshot.AdminApproval = &approval
	}

	return &snapshot
}

// Update applies a mutation to the document and flushes it to disk. A write
// failure is logged and swallowed; the in-memory document stays live.
func (s *Store) Update(ctx context.Context, mutate func(*PickerConfig)) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	s.mu.Lock()
	mutate(s.conf)
	s.writeLocked(ctx)
	s.mu.Unlock()
}

// Save flushes the current document to disk
func (s *Store) Save(ctx context.Context) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	s.mu.Lock()
	s.writeLocked(ctx)
	s.mu.Unlock()
}

func (s *Store) writeLocked(ctx context.Context) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(s.conf)
	raw := buf.Bytes()
	if err != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", err), zap.String("error_message", "Failed to marshal picker config"))
		logger := logging.Logger(ctx)
		logger.Error("config_log")
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", err), zap.String("error_message", "Failed to create picker config directory"))
		logger := logging.Logger(ctx)
		logger.Error("config_log")
		return
	}

	if err := ioutil.WriteFile(s.path, raw, 0o644); err != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", err), zap.String("error_message", "Failed to persist picker config"))
		logger := logging.Logger(ctx)
		logger.Error("config_log")
	}
}

// FormatID renders a stored snowflake for the Discord API
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseID converts a Discord snowflake string for storage; malformed input
// parses to zero
func ParseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}

	return id
}

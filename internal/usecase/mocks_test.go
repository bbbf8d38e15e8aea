//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"santa-admin-bot/internal/domain"
	"santa-admin-bot/internal/domain/model"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// ---- Settings ----

type mockSettingsRepo struct {
	mu       sync.Mutex
	settings model.Settings
	seeded   bool

	LoadFunc func(ctx context.Context) (model.Settings, error)
}

func newMockSettingsRepo() *mockSettingsRepo { return &mockSettingsRepo{} }

func (m *mockSettingsRepo) Load(ctx context.Context) (model.Settings, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings, nil
}

func (m *mockSettingsRepo) SetInt64(ctx context.Context, key string, value int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch key {
	case model.SettingAdminChatID:
		m.settings.AdminChatID = value
	case model.SettingUserChatID:
		m.settings.UserChatID = value
	case model.SettingLogChannelID:
		m.settings.LogChannelID = value
	case model.SettingNotesChannelID:
		m.settings.NotesChannelID = value
	case model.SettingTestChannelID:
		m.settings.TestChannelID = value
	}
	return nil
}

func (m *mockSettingsRepo) SetInt(ctx context.Context, key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if key == model.SettingDeleteTimer {
		m.settings.DeleteTimerSeconds = value
	}
	return nil
}

func (m *mockSettingsRepo) Seed(ctx context.Context, s model.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.seeded {
		m.settings = s
		m.seeded = true
	}
	return nil
}

// ---- Users ----

type mockUserRepo struct {
	mu    sync.Mutex
	users map[int64]*model.User

	FindByUsernameFunc func(ctx context.Context, username string) (*model.User, error)
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) Upsert(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.UserID] = &cp
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

// ---- Roles ----

type mockRoleRepo struct {
	mu    sync.Mutex
	roles map[int64]model.RoleName
}

func newMockRoleRepo() *mockRoleRepo {
	return &mockRoleRepo{roles: make(map[int64]model.RoleName)}
}

func (m *mockRoleRepo) Set(ctx context.Context, r *model.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[r.UserID] = r.Role
	return nil
}

func (m *mockRoleRepo) Remove(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.roles, userID)
	return nil
}

func (m *mockRoleRepo) Get(ctx context.Context, userID int64) (model.RoleName, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.roles[userID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return r, nil
}

func (m *mockRoleRepo) ListByRole(ctx context.Context, role model.RoleName) ([]model.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Role
	for id, r := range m.roles {
		if r == role {
			out = append(out, model.Role{UserID: id, Role: r})
		}
	}
	return out, nil
}

// ---- Relay ----

type mockRelayRepo struct {
	mu       sync.Mutex
	pairs    []model.RelayPair
	forwards map[model.MessageType]int
	nextID   int64
}

func newMockRelayRepo() *mockRelayRepo {
	return &mockRelayRepo{forwards: make(map[model.MessageType]int)}
}

func (m *mockRelayRepo) SaveMapping(ctx context.Context, adminMessageID, userMessageID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.pairs = append(m.pairs, model.RelayPair{
		ID:             m.nextID,
		AdminMessageID: adminMessageID,
		UserMessageID:  userMessageID,
		CreatedAt:      time.Now(),
	})
	return nil
}

func (m *mockRelayRepo) FindByAdminMessageID(ctx context.Context, adminMessageID int) (*model.RelayPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.pairs {
		if m.pairs[i].AdminMessageID == adminMessageID {
			cp := m.pairs[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRelayRepo) FindByUserMessageID(ctx context.Context, userMessageID int) (*model.RelayPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.pairs {
		if m.pairs[i].UserMessageID == userMessageID {
			cp := m.pairs[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRelayRepo) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []model.RelayPair
	var pruned int64
	for _, p := range m.pairs {
		if p.CreatedAt.Before(cutoff) {
			pruned++
			continue
		}
		kept = append(kept, p)
	}
	m.pairs = kept
	return pruned, nil
}

func (m *mockRelayRepo) RecordForward(ctx context.Context, userID int64, mt model.MessageType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forwards[mt]++
	return nil
}

func (m *mockRelayRepo) CountForwardsByType(ctx context.Context) (map[model.MessageType]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[model.MessageType]int, len(m.forwards))
	for k, v := range m.forwards {
		out[k] = v
	}
	return out, nil
}

// ---- Moderation ----

type mockModerationRepo struct {
	mu          sync.Mutex
	bans        map[int64]bool
	mutes       map[int64]bool
	blacklist   map[int64]bool
	sayBlocks   map[int64]bool
	failIsMuted error
}

func newMockModerationRepo() *mockModerationRepo {
	return &mockModerationRepo{
		bans:      make(map[int64]bool),
		mutes:     make(map[int64]bool),
		blacklist: make(map[int64]bool),
		sayBlocks: make(map[int64]bool),
	}
}

func (m *mockModerationRepo) Ban(ctx context.Context, b *model.Ban) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bans[b.UserID] = true
	return nil
}

func (m *mockModerationRepo) Unban(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bans[userID] = false
	return nil
}

func (m *mockModerationRepo) IsBanned(ctx context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bans[userID], nil
}

func (m *mockModerationRepo) Mute(ctx context.Context, mu *model.Mute) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutes[mu.UserID] = true
	return nil
}

func (m *mockModerationRepo) Unmute(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mutes[userID] = false
	return nil
}

func (m *mockModerationRepo) IsMuted(ctx context.Context, userID int64) (bool, error) {
	if m.failIsMuted != nil {
		return false, m.failIsMuted
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutes[userID], nil
}

func (m *mockModerationRepo) AddToBlacklist(ctx context.Context, e *model.BlacklistEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blacklist[e.UserID] = true
	return nil
}

func (m *mockModerationRepo) IsBlacklisted(ctx context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blacklist[userID], nil
}

func (m *mockModerationRepo) BlockSay(ctx context.Context, b *model.SayBlock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sayBlocks[b.UserID] = true
	return nil
}

func (m *mockModerationRepo) UnblockSay(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sayBlocks[userID] = false
	return nil
}

func (m *mockModerationRepo) IsSayBlocked(ctx context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sayBlocks[userID], nil
}

func (m *mockModerationRepo) CountActiveBans(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, on := range m.bans {
		if on {
			n++
		}
	}
	return n, nil
}

func (m *mockModerationRepo) CountActiveMutes(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, on := range m.mutes {
		if on {
			n++
		}
	}
	return n, nil
}

// ---- Notes ----

type mockNoteRepo struct {
	mu     sync.Mutex
	notes  []model.Note
	nextID int64
}

func newMockNoteRepo() *mockNoteRepo { return &mockNoteRepo{} }

func (m *mockNoteRepo) Add(ctx context.Context, n *model.Note) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cp := *n
	cp.ID = m.nextID
	m.notes = append(m.notes, cp)
	return cp.ID, nil
}

func (m *mockNoteRepo) ListByUser(ctx context.Context, userID int64) ([]model.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Note
	for i := len(m.notes) - 1; i >= 0; i-- {
		if m.notes[i].UserID == userID {
			out = append(out, m.notes[i])
		}
	}
	return out, nil
}

func (m *mockNoteRepo) Delete(ctx context.Context, noteID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.notes {
		if m.notes[i].ID == noteID {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ---- Reminders ----

type mockReminderRepo struct {
	mu        sync.Mutex
	reminders []model.Reminder
	nextID    int64
}

func newMockReminderRepo() *mockReminderRepo { return &mockReminderRepo{} }

func (m *mockReminderRepo) Add(ctx context.Context, r *model.Reminder) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cp := *r
	cp.ID = m.nextID
	m.reminders = append(m.reminders, cp)
	return cp.ID, nil
}

func (m *mockReminderRepo) Due(ctx context.Context, now time.Time) ([]model.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Reminder
	for _, r := range m.reminders {
		if !r.Sent && !r.RemindAt.After(now) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReminderRepo) MarkSent(ctx context.Context, reminderID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.reminders {
		if m.reminders[i].ID == reminderID {
			m.reminders[i].Sent = true
			return nil
		}
	}
	return domain.ErrNotFound
}

// ---- Birthdays ----

type mockBirthdayRepo struct {
	mu        sync.Mutex
	birthdays map[int64]model.Birthday
	greeting  model.GreetingSettings
}

func newMockBirthdayRepo() *mockBirthdayRepo {
	return &mockBirthdayRepo{birthdays: make(map[int64]model.Birthday)}
}

func (m *mockBirthdayRepo) Upsert(ctx context.Context, b *model.Birthday) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.birthdays[b.UserID] = *b
	return nil
}

func (m *mockBirthdayRepo) Delete(ctx context.Context, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.birthdays[userID]; !ok {
		return false, nil
	}
	delete(m.birthdays, userID)
	return true, nil
}

func (m *mockBirthdayRepo) Get(ctx context.Context, userID int64) (*model.Birthday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.birthdays[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (m *mockBirthdayRepo) All(ctx context.Context) ([]model.Birthday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Birthday
	for _, b := range m.birthdays {
		out = append(out, b)
	}
	return out, nil
}

func (m *mockBirthdayRepo) ByDayMonth(ctx context.Context, key string) ([]model.Birthday, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Birthday
	for _, b := range m.birthdays {
		if len(b.Date) >= 5 && b.Date[:5] == key {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBirthdayRepo) Greeting(ctx context.Context) (model.GreetingSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.greeting, nil
}

func (m *mockBirthdayRepo) SetGreetingGif(ctx context.Context, fileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.greeting.GifFileID = fileID
	return nil
}

func (m *mockBirthdayRepo) SetGreetingText(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.greeting.Greeting = text
	return nil
}

// ---- Action log ----

type mockActionLogRepo struct {
	mu      sync.Mutex
	entries []model.ActionLog
}

func newMockActionLogRepo() *mockActionLogRepo { return &mockActionLogRepo{} }

func (m *mockActionLogRepo) Append(ctx context.Context, a *model.ActionLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	cp.ID = int64(len(m.entries) + 1)
	m.entries = append(m.entries, cp)
	return nil
}

func (m *mockActionLogRepo) Exists(ctx context.Context, actionType string, targetUserID int64, details string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.ActionType == actionType && e.TargetUserID == targetUserID && e.Details == details {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockActionLogRepo) byType(actionType string) []model.ActionLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ActionLog
	for _, e := range m.entries {
		if e.ActionType == actionType {
			out = append(out, e)
		}
	}
	return out
}

// ---- Backup ----

type mockBackupRepo struct {
	mu       sync.Mutex
	snapshot model.Snapshot
	imported model.Snapshot
}

func newMockBackupRepo() *mockBackupRepo { return &mockBackupRepo{snapshot: model.Snapshot{}} }

func (m *mockBackupRepo) Export(ctx context.Context) (model.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot, nil
}

func (m *mockBackupRepo) Import(ctx context.Context, snap model.Snapshot) (model.ImportStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.imported = snap
	stats := model.ImportStats{Tables: make(map[string]int)}
	for name, dump := range snap {
		stats.Tables[name] = len(dump.Rows)
		stats.TotalRecords += len(dump.Rows)
	}
	return stats, nil
}

// ---- Maintenance ----

type mockMaintenanceRepo struct {
	cleared int64
}

func (m *mockMaintenanceRepo) ClearOnlineModes(ctx context.Context) (int64, error) {
	m.cleared++
	return 1, nil
}

// ---- Messenger / Announcer ----

type sentMessage struct {
	ChatID  int64
	ReplyTo int
	Text    string
	FileID  string
	Name    string
}

type mockMessenger struct {
	mu     sync.Mutex
	sent   []sentMessage
	nextID int

	SendTextFunc func(ctx context.Context, chatID int64, text string) (int, error)
}

func newMockMessenger() *mockMessenger { return &mockMessenger{} }

func (m *mockMessenger) record(msg sentMessage) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.sent = append(m.sent, msg)
	return m.nextID
}

func (m *mockMessenger) SendText(ctx context.Context, chatID int64, text string) (int, error) {
	if m.SendTextFunc != nil {
		return m.SendTextFunc(ctx, chatID, text)
	}
	return m.record(sentMessage{ChatID: chatID, Text: text}), nil
}

func (m *mockMessenger) SendTextReply(ctx context.Context, chatID int64, replyTo int, text string) (int, error) {
	return m.record(sentMessage{ChatID: chatID, ReplyTo: replyTo, Text: text}), nil
}

func (m *mockMessenger) SendAnimation(ctx context.Context, chatID int64, fileID, caption string) (int, error) {
	return m.record(sentMessage{ChatID: chatID, FileID: fileID, Text: caption}), nil
}

func (m *mockMessenger) SendDocument(ctx context.Context, chatID int64, name string, data []byte, caption string) (int, error) {
	return m.record(sentMessage{ChatID: chatID, Name: name, Text: caption}), nil
}

func (m *mockMessenger) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	return nil
}

func (m *mockMessenger) messages() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

type mockAnnouncer struct {
	mu    sync.Mutex
	texts []string
}

func (m *mockAnnouncer) Announce(ctx context.Context, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, text)
}

func (m *mockAnnouncer) announced() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.texts))
	copy(out, m.texts)
	return out
}

package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"santa-admin-bot/internal/domain/model"
	"santa-admin-bot/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

var _ StatsUseCase = (*statsUC)(nil)

// Summary is the aggregate view behind /stats and the admin API.
type Summary struct {
	Users          int                       `json:"users"`
	ForwardsByType map[model.MessageType]int `json:"forwards_by_type"`
	ActiveBans     int                       `json:"active_bans"`
	ActiveMutes    int                       `json:"active_mutes"`
}

type StatsUseCase interface {
	Summary(ctx context.Context) (*Summary, error)
	// FormatSummary renders the summary for a Telegram reply.
	FormatSummary(ctx context.Context) (string, error)
}

type statsUC struct {
	users repository.UserRepository
	relay repository.RelayRepository
	mod   repository.ModerationRepository
	log   *zerolog.Logger
}

func NewStatsUseCase(users repository.UserRepository, relay repository.RelayRepository, mod repository.ModerationRepository, logger *zerolog.Logger) *statsUC {
	return &statsUC{users: users, relay: relay, mod: mod, log: logger}
}

func (u *statsUC) Summary(ctx context.Context) (*Summary, error) {
	users, err := u.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	forwards, err := u.relay.CountForwardsByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	bans, err := u.mod.CountActiveBans(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	mutes, err := u.mod.CountActiveMutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &Summary{
		Users:          users,
		ForwardsByType: forwards,
		ActiveBans:     bans,
		ActiveMutes:    mutes,
	}, nil
}

func (u *statsUC) FormatSummary(ctx context.Context) (string, error) {
	s, err := u.Summary(ctx)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Users: %d\n", s.Users)
	fmt.Fprintf(&b, "Active bans: %d, mutes: %d\n", s.ActiveBans, s.ActiveMutes)

	total := 0
	types := make([]string, 0, len(s.ForwardsByType))
	for mt, n := range s.ForwardsByType {
		types = append(types, string(mt))
		total += n
	}
	sort.Strings(types)
	fmt.Fprintf(&b, "Relayed messages: %d\n", total)
	for _, mt := range types {
		fmt.Fprintf(&b, "  %s: %d\n", mt, s.ForwardsByType[model.MessageType(mt)])
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

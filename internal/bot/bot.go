// Package bot is the Telegram command surface: it caches the most recent
// snapshot supplied via /snapshot and replays it through the pipeline on
// /brief. The cache is an explicit single-slot store, not ambient state.
package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	tg "github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"

	"marketbrief/internal/briefing"
	"marketbrief/internal/model"
)

type Service interface {
	Generate(ctx context.Context, snap *model.Snapshot) (model.Record, error)
}

// SnapshotStore holds the last snapshot supplied to the bot. Last write
// wins; there is no TTL.
type SnapshotStore struct {
	mu   sync.Mutex
	snap *model.Snapshot
}

func (s *SnapshotStore) Put(snap *model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

func (s *SnapshotStore) Latest() *model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

type Bot struct {
	api      *tg.Bot
	pipeline Service
	store    *SnapshotStore
}

const helpText = "Hi! Send /snapshot followed by a market snapshot JSON to cache it, then /brief to receive the generated post-market briefing."

const failureText = "Sorry, I couldn't generate the briefing right now. Please try again shortly."

func New(token string, pipeline Service) (*Bot, error) {
	b := &Bot{pipeline: pipeline, store: &SnapshotStore{}}

	api, err := tg.New(token)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	api.RegisterHandler(tg.HandlerTypeMessageText, "/start", tg.MatchTypePrefix, b.handleStart)
	api.RegisterHandler(tg.HandlerTypeMessageText, "/snapshot", tg.MatchTypePrefix, b.handleSnapshot)
	api.RegisterHandler(tg.HandlerTypeMessageText, "/brief", tg.MatchTypePrefix, b.handleBrief)

	b.api = api
	return b, nil
}

func (b *Bot) Start(ctx context.Context) {
	b.api.Start(ctx)
}

func (b *Bot) handleStart(ctx context.Context, api *tg.Bot, update *tgmodels.Update) {
	b.reply(ctx, api, update, helpText)
}

func (b *Bot) handleSnapshot(ctx context.Context, api *tg.Bot, update *tgmodels.Update) {
	if update.Message == nil {
		return
	}
	payload := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/snapshot"))
	if payload == "" {
		b.reply(ctx, api, update, "Send the snapshot JSON after the command, e.g. /snapshot {...}.")
		return
	}

	if err := briefing.ValidateSnapshotJSON([]byte(payload)); err != nil {
		slog.Error("snapshot rejected", "error", err)
		b.reply(ctx, api, update, "That snapshot didn't validate. Check the payload and try again.")
		return
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		slog.Error("snapshot decode failed", "error", err)
		b.reply(ctx, api, update, "That snapshot didn't validate. Check the payload and try again.")
		return
	}

	b.store.Put(&snap)
	b.reply(ctx, api, update, "Snapshot cached. Send /brief to generate the briefing.")
}

func (b *Bot) handleBrief(ctx context.Context, api *tg.Bot, update *tgmodels.Update) {
	snap := b.store.Latest()
	if snap == nil {
		b.reply(ctx, api, update, "No snapshot cached yet. Send /snapshot first.")
		return
	}

	rec, err := b.pipeline.Generate(ctx, snap)
	if err != nil {
		slog.Error("briefing generation failed", "error", err)
		b.reply(ctx, api, update, failureText)
		return
	}

	doc, ok := rec["rendered_document"].(string)
	if !ok || doc == "" {
		slog.Error("record missing rendered document")
		b.reply(ctx, api, update, failureText)
		return
	}
	b.reply(ctx, api, update, doc)
}

func (b *Bot) reply(ctx context.Context, api *tg.Bot, update *tgmodels.Update, text string) {
	if update.Message == nil {
		return
	}
	_, err := api.SendMessage(ctx, &tg.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
	if err != nil {
		slog.Error("telegram send failed", "error", err)
	}
}

// Package telegram connects the form flow to a Telegram bot over long polling.
package telegram

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/tbxark/docform/logger"
	"github.com/tbxark/docform/session"
)

// Sender is the subset of the bot API used to answer.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Handler interface {
	Invoke(ctx context.Context, input *session.Request) (*session.Response, error)
}

type Options struct {
	Token       string
	PollTimeout int
	Debug       bool
	// Failure is sent when a message cannot be handled at all.
	Failure string
}

type Bot struct {
	api        *tgbotapi.BotAPI
	sender     Sender
	flow       Handler
	log        *logger.Logger
	opts       Options
	dispatcher *Dispatcher
}

func New(opts Options, flow Handler, log *logger.Logger) (*Bot, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}
	api, err := tgbotapi.NewBotAPI(opts.Token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram: %w", err)
	}
	api.Debug = opts.Debug
	log.Info("telegram bot authorized", "username", api.Self.UserName)
	b := newBot(api, flow, log, opts)
	b.api = api
	return b, nil
}

func newBot(sender Sender, flow Handler, log *logger.Logger, opts Options) *Bot {
	b := &Bot{
		sender: sender,
		flow:   flow,
		log:    log.With("component", "telegram"),
		opts:   opts,
	}
	b.dispatcher = NewDispatcher(b.process)
	return b
}

// Run polls for updates until ctx is done, then waits for queued messages.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.opts.PollTimeout
	updates := b.api.GetUpdatesChan(u)
	defer b.dispatcher.Wait()
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate queues text messages; other updates are ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return
	}
	b.dispatcher.Submit(context.WithoutCancel(ctx), Incoming{ChatID: msg.Chat.ID, Text: messageText(msg)})
}

// messageText drops the @botname suffix of commands.
func messageText(msg *tgbotapi.Message) string {
	if msg.IsCommand() {
		return "/" + msg.Command()
	}
	return msg.Text
}

func (b *Bot) process(ctx context.Context, in Incoming) {
	log := b.log.With("chat", in.ChatID)
	ctx = session.WithStateKey(ctx, strconv.FormatInt(in.ChatID, 10))
	resp, err := b.flow.Invoke(ctx, &session.Request{UserInput: in.Text})
	if err != nil {
		log.Error("handle message", "error", err)
		if b.opts.Failure != "" {
			b.deliver(log, in.ChatID, session.Reply{Text: b.opts.Failure})
		}
		return
	}
	for _, reply := range resp.Replies {
		b.deliver(log, in.ChatID, reply)
	}
}

func (b *Bot) deliver(log *logger.Logger, chatID int64, reply session.Reply) {
	if reply.Document != nil {
		if err := b.sendDocument(chatID, reply); err != nil {
			log.Error("send document", "error", err, "path", reply.Document.Path)
		}
		return
	}
	if strings.TrimSpace(reply.Text) == "" {
		return
	}
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if reply.Keyboard != nil {
		msg.ReplyMarkup = replyKeyboard(reply.Keyboard)
	}
	if _, err := b.sender.Send(msg); err != nil {
		log.Error("send message", "error", err)
	}
}

func (b *Bot) sendDocument(chatID int64, reply session.Reply) error {
	f, err := os.Open(reply.Document.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileReader{Name: reply.Document.DisplayName, Reader: f})
	doc.Caption = reply.Text
	if reply.Keyboard != nil {
		doc.ReplyMarkup = replyKeyboard(reply.Keyboard)
	}
	_, err = b.sender.Send(doc)
	return err
}

func replyKeyboard(buttons session.Keyboard) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(buttons))
	for _, label := range buttons {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(label)))
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

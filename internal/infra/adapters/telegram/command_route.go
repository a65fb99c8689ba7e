package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-lookup-bot/internal/infra/metrics"
)

type commandHandler func(ctx context.Context, message *tgbotapi.Message) error

// commandRoutes defines all available bot commands and their handlers.
func (r *RealTelegramBotAdapter) commandRoutes() map[string]commandHandler {
	return map[string]commandHandler{
		"start":   r.handleStartCommand,
		"num":     r.handleNumCommand,
		"credits": r.handleCreditsCommand,
		"redeem":  r.handleRedeemCommand,

		// These handlers are wrapped in our adminOnly middleware.
		"code":  r.adminOnly(r.handleCodeCommand),
		"codes": r.adminOnly(r.handleCodesCommand),
	}
}

func (r *RealTelegramBotAdapter) adminOnly(next commandHandler) commandHandler {
	return func(ctx context.Context, message *tgbotapi.Message) error {
		if _, isAdmin := r.adminIDsMap[message.From.ID]; !isAdmin {
			metrics.IncBotCommand("/"+message.Command(), "unauthorized")
			return r.SendMessage(ctx, message.Chat.ID, "Only admin can use this command.")
		}
		return next(ctx, message)
	}
}

// reply sends the facade's answer and records the command outcome.
func (r *RealTelegramBotAdapter) reply(ctx context.Context, message *tgbotapi.Message, text string, err error) error {
	command := "/" + message.Command()
	if err != nil {
		metrics.IncBotCommand(command, "error")
		r.log.Error().Err(err).Str("command", command).Msg("command failed")
		return r.SendMessage(ctx, message.Chat.ID, "Something went wrong. Please try again later.")
	}
	metrics.IncBotCommand(command, "ok")
	return r.SendMessage(ctx, message.Chat.ID, text)
}

func (r *RealTelegramBotAdapter) handleStartCommand(ctx context.Context, message *tgbotapi.Message) error {
	return r.reply(ctx, message, r.facade.HandleStart(), nil)
}

func (r *RealTelegramBotAdapter) handleNumCommand(ctx context.Context, message *tgbotapi.Message) error {
	arg := message.CommandArguments()
	if arg == "" {
		return r.reply(ctx, message, "Usage: /num 7986782429", nil)
	}
	text, err := r.facade.HandleLookup(ctx, message.From.ID, arg)
	return r.reply(ctx, message, text, err)
}

func (r *RealTelegramBotAdapter) handleCreditsCommand(ctx context.Context, message *tgbotapi.Message) error {
	text, err := r.facade.HandleCredits(ctx, message.From.ID)
	return r.reply(ctx, message, text, err)
}

func (r *RealTelegramBotAdapter) handleRedeemCommand(ctx context.Context, message *tgbotapi.Message) error {
	text, err := r.facade.HandleRedeem(ctx, message.From.ID, message.CommandArguments())
	return r.reply(ctx, message, text, err)
}

func (r *RealTelegramBotAdapter) handleCodeCommand(ctx context.Context, message *tgbotapi.Message) error {
	arg := message.CommandArguments()
	if arg == "" {
		return r.reply(ctx, message, "Usage: /code <amount>", nil)
	}
	text, err := r.facade.HandleIssueCode(ctx, message.From.ID, arg)
	return r.reply(ctx, message, text, err)
}

func (r *RealTelegramBotAdapter) handleCodesCommand(ctx context.Context, message *tgbotapi.Message) error {
	text, err := r.facade.HandleListCodes(ctx, 200)
	return r.reply(ctx, message, text, err)
}

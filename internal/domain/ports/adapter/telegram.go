package adapter

import "context"

// TelegramBotAdapter abstracts the chat transport for places that only need
// to push a message (facade tests, future schedulers).
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

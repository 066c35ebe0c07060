// Package telegram sends tournament notifications through the Telegram Bot API.
//
// Messages are plain HTTP calls to sendMessage with HTML formatting.
// Authentication requires a bot token (from @BotFather) and a chat ID.
package telegram

// Package telegram sends availability digests to a Telegram chat.
//
// Messages go through the Bot API sendMessage method using HTML parse mode.
// Authentication requires a bot token (from @BotFather) and a chat ID, which may be a
// numeric ID or an @channel username.
package telegram

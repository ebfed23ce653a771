// Package telegram sends scan reports via the Telegram Bot API.
//
// Reports are formatted as HTML messages grouping confirmed matches by
// tournament. Authentication requires a bot token (from @BotFather) and
// a chat ID.
package telegram

// Package notifier announces newly available venue slots on external channels.
//
// Each Notifier receives slots already grouped by venue. The Twitter notifier posts one
// status per venue using OAuth1, the Telegram notifier sends a single HTML digest, and the
// dry-run notifier prints what would be posted.
package notifier

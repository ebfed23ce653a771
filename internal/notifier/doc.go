// Package notifier provides notification interfaces and implementations
// for scan results.
//
// The notifier package supports posting a scan's confirmed matches to
// Telegram and Twitter, plus a dry-run implementation that prints what
// would be sent.
package notifier

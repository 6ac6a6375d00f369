package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/m3rciful/festbot/core/logger"
	tghelpers "github.com/m3rciful/festbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

const (
	kindCallback = "callback"
	kindMessage  = "message"
	kindOther    = "other"
)

// RateLimitOptions configures behaviour of the rate limit middleware.
type RateLimitOptions struct {
	Interval time.Duration
	// Exclude lists update kinds ("callback", "message") that bypass the limit.
	Exclude   map[string]struct{}
	OnLimited tele.HandlerFunc
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// RateLimitMiddleware returns a middleware that enforces a minimum interval
// between updates from the same user. Limited updates are dropped.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	var (
		userLastSeen   = make(map[int64]time.Time)
		userLastSeenMu sync.Mutex
	)
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Interval <= 0 {
				return next(c)
			}
			if _, skip := opts.Exclude[updateKind(c.Update())]; skip {
				return next(c)
			}

			ts := now()

			userLastSeenMu.Lock()
			if last, ok := userLastSeen[user.ID]; ok && ts.Sub(last) < opts.Interval {
				userLastSeenMu.Unlock()
				logger.TG.LogAttrs(tghelpers.BuildContext(c), slog.LevelWarn, "rate limit",
					slog.String("event", "tg.rate_limit"),
					slog.String("status", "rate_limited"),
					slog.Int64("user_id", user.ID),
				)
				if opts.OnLimited != nil {
					_ = opts.OnLimited(c)
				}
				return nil
			}
			userLastSeen[user.ID] = ts
			// Entries older than the interval can no longer limit anyone.
			if len(userLastSeen) > 1024 {
				for id, seen := range userLastSeen {
					if ts.Sub(seen) >= opts.Interval {
						delete(userLastSeen, id)
					}
				}
			}
			userLastSeenMu.Unlock()
			return next(c)
		}
	}
}

func updateKind(upd tele.Update) string {
	switch {
	case upd.Callback != nil:
		return kindCallback
	case upd.Message != nil:
		return kindMessage
	}
	return kindOther
}

package middleware

import (
	tele "gopkg.in/telebot.v4"
)

const countersKey = "out_counters"

// outCounters accumulates per-update outbound stats for the summary log.
type outCounters struct {
	Messages int
	Keyboard bool
}

// metricsContext proxies the outbound tele.Context calls the bot uses,
// counting sent messages and noting keyboard usage.
type metricsContext struct{ tele.Context }

func (m metricsContext) counted(err error, opts []interface{}) error {
	if err != nil {
		return err
	}
	cnt, _ := m.Get(countersKey).(*outCounters)
	if cnt == nil {
		return nil
	}
	cnt.Messages++
	if hasKeyboard(opts) {
		cnt.Keyboard = true
	}
	return nil
}

func hasKeyboard(opts []interface{}) bool {
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				return true
			}
		case *tele.ReplyMarkup:
			if v != nil {
				return true
			}
		}
	}
	return false
}

func (m metricsContext) Send(what interface{}, opts ...interface{}) error {
	return m.counted(m.Context.Send(what, opts...), opts)
}

func (m metricsContext) Reply(what interface{}, opts ...interface{}) error {
	return m.counted(m.Context.Reply(what, opts...), opts)
}

func (m metricsContext) Edit(what interface{}, opts ...interface{}) error {
	return m.counted(m.Context.Edit(what, opts...), opts)
}

func (m metricsContext) EditOrSend(what interface{}, opts ...interface{}) error {
	return m.counted(m.Context.EditOrSend(what, opts...), opts)
}

// MessageMetricsMiddleware instruments the context so handler summaries can
// report how many messages an update produced.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		c.Set(countersKey, &outCounters{})
		return next(metricsContext{Context: c})
	}
}

// GetCounters reads the message count and keyboard flag for the update.
func GetCounters(c tele.Context) (int, bool) {
	if cnt, ok := c.Get(countersKey).(*outCounters); ok && cnt != nil {
		return cnt.Messages, cnt.Keyboard
	}
	return 0, false
}

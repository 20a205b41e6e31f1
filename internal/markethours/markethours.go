// Package markethours classifies wall-clock time into trading-session
// states for the polled stock markets. It is the fallback used when the
// quote upstream does not report a session state itself.
package markethours

import (
	"time"

	"github.com/scmhub/calendar"
)

// Session is a trading-session state, matching the upstream vocabulary.
type Session string

const (
	SessionPre     Session = "PRE"
	SessionRegular Session = "REGULAR"
	SessionPost    Session = "POST"
	SessionClosed  Session = "CLOSED"
)

// Market wraps an exchange calendar plus the local extended-hours window.
// When the MIC calendar cannot be loaded it degrades to plain Mon–Fri with
// the configured local hours.
type Market struct {
	cal      *calendar.Calendar
	loc      *time.Location
	fallback bool

	// minutes from local midnight
	openMin, closeMin int
	preMin, postMin   int // extended window; preMin < 0 disables PRE/POST
}

// NewYork returns the US equities market: NYSE calendar, 9:30–16:00 regular,
// 4:00 pre-market start, 20:00 post-market end (Eastern).
func NewYork() *Market {
	return newMarket("xnys", "America/New_York", 9*60+30, 16*60, 4*60, 20*60)
}

// Shanghai returns the CN A-share market: SSE calendar, 9:30–15:00 regular,
// no extended sessions.
func Shanghai() *Market {
	return newMarket("xshg", "Asia/Shanghai", 9*60+30, 15*60, -1, -1)
}

func newMarket(mic, tz string, openMin, closeMin, preMin, postMin int) *Market {
	m := &Market{
		openMin:  openMin,
		closeMin: closeMin,
		preMin:   preMin,
		postMin:  postMin,
	}
	if cal := calendar.GetCalendar(mic); cal != nil {
		m.cal = cal
		m.loc = cal.Loc
		return m
	}
	m.fallback = true
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	m.loc = loc
	return m
}

// Session classifies t into PRE/REGULAR/POST/CLOSED for this market.
func (m *Market) Session(t time.Time) Session {
	local := t.In(m.loc)
	if !m.isTradingDay(local) {
		return SessionClosed
	}

	hm := local.Hour()*60 + local.Minute()
	if m.isRegularOpen(local, hm) {
		return SessionRegular
	}
	if m.preMin >= 0 {
		if hm >= m.preMin && hm < m.openMin {
			return SessionPre
		}
		if hm >= m.closeMin && hm < m.postMin {
			return SessionPost
		}
	}
	return SessionClosed
}

func (m *Market) isTradingDay(local time.Time) bool {
	if m.fallback {
		wd := local.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	}
	return m.cal.IsBusinessDay(local)
}

func (m *Market) isRegularOpen(local time.Time, hm int) bool {
	if m.fallback {
		return hm >= m.openMin && hm < m.closeMin
	}
	return m.cal.IsOpen(local)
}

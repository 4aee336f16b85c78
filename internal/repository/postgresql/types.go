package postgresql

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/willykudo/pionix/internal/pkg/calendar"
)

func pgDate(d calendar.Date) pgtype.Date {
	if d.IsZero() {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.Time(time.UTC), Valid: true}
}

func fromPgDate(d pgtype.Date) calendar.Date {
	if !d.Valid {
		return calendar.Date{}
	}
	return calendar.DateOf(d.Time, time.UTC)
}

func pgTime(c calendar.Clock) pgtype.Time {
	return pgtype.Time{Microseconds: int64(c.Hour*3600+c.Minute*60) * 1_000_000, Valid: true}
}

func fromPgTime(t pgtype.Time) calendar.Clock {
	mins := t.Microseconds / 60_000_000
	return calendar.Clock{Hour: int(mins / 60), Minute: int(mins % 60)}
}

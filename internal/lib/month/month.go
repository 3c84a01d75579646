// Package month содержит помощники для работы с календарными месяцами.
package month

import "time"

// Start возвращает начало календарного месяца, в который попадает t, в часовом поясе t.
func Start(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// Contains сообщает, попадает ли t в календарный месяц момента ref (в часовом поясе ref).
func Contains(ref, t time.Time) bool {
	start := Start(ref)
	end := start.AddDate(0, 1, 0)
	return !t.Before(start) && t.Before(end)
}

package calendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrSlotDuration     = errors.New("slot duration must be positive")
)

// TimeRange — полуоткрытый интервал [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

func (tr TimeRange) Duration() time.Duration { return tr.End.Sub(tr.Start) }

// Contains: a целиком внутри tr.
func (tr TimeRange) Contains(a TimeRange) bool {
	return !a.Start.Before(tr.Start) && !a.End.After(tr.End)
}

// Overlaps: у интервалов есть общая точка. Касание концами пересечением не считается,
// поэтому слот 11:30–12:00 не конфликтует с перерывом 12:00–13:00.
func (tr TimeRange) Overlaps(a TimeRange) bool {
	return tr.Start.Before(a.End) && a.Start.Before(tr.End)
}

// ClampRange упорядочивает границы и срезает интервал до maxDuration от начала.
// maxDuration <= 0 — без ограничения. Пустой интервал — ErrInvalidTimeRange.
func ClampRange(start, end time.Time, maxDuration time.Duration) (TimeRange, error) {
	if start.IsZero() || end.IsZero() {
		return TimeRange{}, ErrInvalidTimeRange
	}
	if end.Before(start) {
		start, end = end, start
	}
	if maxDuration > 0 && end.Sub(start) > maxDuration {
		end = start.Add(maxDuration)
	}
	if !end.After(start) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Split нарезает окно на слоты по step подряд от начала окна.
// Последний слот, не помещающийся целиком, отбрасывается.
func Split(window TimeRange, step time.Duration) ([]TimeRange, error) {
	if step <= 0 {
		return nil, ErrSlotDuration
	}

	var slots []TimeRange
	for cur := window.Start; !cur.Add(step).After(window.End); cur = cur.Add(step) {
		slots = append(slots, TimeRange{Start: cur, End: cur.Add(step)})
	}
	return slots, nil
}

// Conflicts возвращает интервалы из others, пересекающиеся с r.
func Conflicts(r TimeRange, others []TimeRange) []TimeRange {
	var out []TimeRange
	for _, o := range others {
		if r.Overlaps(o) {
			out = append(out, o)
		}
	}
	return out
}

var ptWeekdays = [...]string{
	time.Sunday:    "Domingo",
	time.Monday:    "Segunda-feira",
	time.Tuesday:   "Terça-feira",
	time.Wednesday: "Quarta-feira",
	time.Thursday:  "Quinta-feira",
	time.Friday:    "Sexta-feira",
	time.Saturday:  "Sábado",
}

// FormatForCustomer — строка для сообщения клиенту, например
// "Segunda-feira, 07/01/2030, 09:30–10:30". Время выводится как есть, без перевода поясов:
// слоты клиники хранятся в местном времени.
func FormatForCustomer(tr TimeRange) string {
	return fmt.Sprintf("%s, %s, %s–%s",
		ptWeekdays[tr.Start.Weekday()],
		tr.Start.Format("02/01/2006"),
		tr.Start.Format(ClockLayout),
		tr.End.Format(ClockLayout),
	)
}

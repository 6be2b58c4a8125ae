package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	// MaxGenerationDays ограничивает диапазон одной генерации слотов.
	MaxGenerationDays = 366
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidClock = errors.New("invalid time of day")
)

// ParseDate разбирает "YYYY-MM-DD" в полночь UTC.
// Календарная дата хранится без часового пояса, UTC — просто нейтральный носитель.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOnly отбрасывает время: календарный день t (в его поясе) как полночь UTC.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseClock разбирает "HH:MM" или "HH:MM:SS" в смещение от полуночи.
// Сетка слотов поминутная: секунды допускаются только нулевые.
func ParseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{ClockLayout, "15:04:05"} {
		t, err := time.Parse(layout, s)
		if err != nil || t.Second() != 0 {
			continue
		}
		return time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
}

// FormatClock печатает смещение от полуночи как "HH:MM".
func FormatClock(d time.Duration) string {
	d = d.Truncate(time.Minute)
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}

// WorkingDay — рабочий день, из которого нарезается сетка слотов.
// Все времена — смещения от полуночи.
type WorkingDay struct {
	Open  time.Duration
	Close time.Duration

	HasBreak   bool
	BreakStart time.Duration
	BreakEnd   time.Duration

	Step time.Duration
}

// Validate проверяет, что окно непустое, а перерыв лежит внутри него.
func (wd WorkingDay) Validate() error {
	if wd.Step <= 0 {
		return ErrSlotDuration
	}
	if wd.Close <= wd.Open {
		return fmt.Errorf("%w: close must be after open", ErrInvalidTimeRange)
	}
	if wd.HasBreak {
		if wd.BreakEnd <= wd.BreakStart {
			return fmt.Errorf("%w: break end must be after break start", ErrInvalidTimeRange)
		}
		var origin time.Time
		window := TimeRange{Start: origin.Add(wd.Open), End: origin.Add(wd.Close)}
		if !window.Contains(TimeRange{Start: origin.Add(wd.BreakStart), End: origin.Add(wd.BreakEnd)}) {
			return fmt.Errorf("%w: break must lie within working hours", ErrInvalidTimeRange)
		}
	}
	return nil
}

// DaySlots возвращает времена начала слотов для дня day.
// Слоты, пересекающие перерыв, и хвост, не помещающийся до закрытия, отбрасываются.
func DaySlots(day time.Time, wd WorkingDay) ([]time.Duration, error) {
	if err := wd.Validate(); err != nil {
		return nil, err
	}
	midnight := DateOnly(day)
	window := TimeRange{Start: midnight.Add(wd.Open), End: midnight.Add(wd.Close)}

	ranges, err := Split(window, wd.Step)
	if err != nil {
		return nil, err
	}

	var breaks []TimeRange
	if wd.HasBreak {
		breaks = append(breaks, TimeRange{Start: midnight.Add(wd.BreakStart), End: midnight.Add(wd.BreakEnd)})
	}

	out := make([]time.Duration, 0, len(ranges))
	for _, r := range ranges {
		if len(Conflicts(r, breaks)) > 0 {
			continue
		}
		out = append(out, r.Start.Sub(midnight))
	}
	return out, nil
}

// DaysInRange возвращает все дни [from, to] включительно.
// Перепутанные границы меняются местами, длина ограничена maxDays.
func DaysInRange(from, to time.Time, maxDays int) ([]time.Time, error) {
	from, to = DateOnly(from), DateOnly(to)
	if to.Before(from) {
		from, to = to, from
	}

	tr, err := ClampRange(from, to.AddDate(0, 0, 1), time.Duration(maxDays)*24*time.Hour)
	if err != nil {
		return nil, err
	}

	var days []time.Time
	for d := tr.Start; d.Before(tr.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

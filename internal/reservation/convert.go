package reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/nexla-ia/sistemaclinicaandre/internal/apperr"
	"github.com/nexla-ia/sistemaclinicaandre/internal/calendar"
	"github.com/nexla-ia/sistemaclinicaandre/internal/model"
)

func parseDay(op, s string) (datatypes.Date, error) {
	d, err := calendar.ParseDate(s)
	if err != nil {
		return datatypes.Date{}, apperr.Invalid(op, "data inválida: %q", s)
	}
	return datatypes.Date(d), nil
}

func parseClock(op, s string) (datatypes.Time, error) {
	d, err := calendar.ParseClock(s)
	if err != nil || d >= 24*time.Hour {
		return 0, apperr.Invalid(op, "horário inválido: %q", s)
	}
	return ClockToDB(d), nil
}

// ClockToDB переводит смещение от полуночи в datatypes.Time (с точностью до секунды).
func ClockToDB(d time.Duration) datatypes.Time {
	d = d.Truncate(time.Second)
	return datatypes.Time(d)
}

// ClockString — "HH:MM" для значения из БД.
func ClockString(t datatypes.Time) string {
	return calendar.FormatClock(time.Duration(t))
}

func DateString(d datatypes.Date) string {
	return calendar.FormatDate(time.Time(d))
}

func parseServiceIDs(op string, raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, apperr.Invalid(op, "selecione ao menos um serviço")
	}
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]struct{}, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, apperr.Invalid(op, "serviço inválido: %q", s)
		}
		if _, dup := seen[id]; dup {
			return nil, apperr.Invalid(op, "serviço repetido: %s", id)
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// WorkingDayOf строит сетку дня из настроек. ok=false — день закрыт.
func WorkingDayOf(h model.WorkingHours) (wd calendar.WorkingDay, ok bool, err error) {
	if !h.IsOpen {
		return calendar.WorkingDay{}, false, nil
	}
	if h.OpenTime == nil || h.CloseTime == nil {
		return calendar.WorkingDay{}, false, fmt.Errorf("day %d: open and close times are required", h.DayOfWeek)
	}

	wd = calendar.WorkingDay{
		Open:  time.Duration(*h.OpenTime),
		Close: time.Duration(*h.CloseTime),
		Step:  time.Duration(h.SlotDurationMinutes) * time.Minute,
	}
	switch {
	case h.BreakStart != nil && h.BreakEnd != nil:
		wd.HasBreak = true
		wd.BreakStart = time.Duration(*h.BreakStart)
		wd.BreakEnd = time.Duration(*h.BreakEnd)
	case h.BreakStart != nil || h.BreakEnd != nil:
		return calendar.WorkingDay{}, false, fmt.Errorf("day %d: break needs both start and end", h.DayOfWeek)
	}

	if err := wd.Validate(); err != nil {
		return calendar.WorkingDay{}, false, fmt.Errorf("day %d: %w", h.DayOfWeek, err)
	}
	return wd, true, nil
}

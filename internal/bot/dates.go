package bot

import (
	"fmt"
	"time"

	"faylbot/internal/models"
)

// resolveFilterTime turns a date-filter token into a concrete bound.
// Accepted tokens: today, yesterday, week, all, or an exact timestamp in
// "2006-01-02 15:04:05" form. A zero time means the bound is open.
func resolveFilterTime(token string, isEnd bool) (time.Time, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch token {
	case models.FilterAll:
		return time.Time{}, nil
	case models.FilterToday:
		if isEnd {
			return now, nil
		}
		return midnight, nil
	case models.FilterYesterday:
		if isEnd {
			return midnight, nil
		}
		return midnight.AddDate(0, 0, -1), nil
	case models.FilterWeek:
		if isEnd {
			return now, nil
		}
		return now.AddDate(0, 0, -7), nil
	}

	t, err := time.ParseInLocation(models.FilterTimeLayout, token, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date filter %q", token)
	}
	return t, nil
}

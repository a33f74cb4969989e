package holiday

import (
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Categories flags which holiday kinds apply to a date.
type Categories struct {
	Public     bool `json:"public"`
	Mercantile bool `json:"mercantile"`
	Bank       bool `json:"bank"`
}

// Label joins the active category names, e.g. "Public, Bank".
func (c Categories) Label() string {
	var names []string
	if c.Public {
		names = append(names, "Public")
	}
	if c.Bank {
		names = append(names, "Bank")
	}
	if c.Mercantile {
		names = append(names, "Mercantile")
	}
	return strings.Join(names, ", ")
}

func (c Categories) Any() bool {
	return c.Public || c.Mercantile || c.Bank
}

type Holiday struct {
	ID         string
	Date       time.Time
	Categories Categories
	Summary    string
	Source     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (h Holiday) IsZero() bool {
	return h.Date.IsZero()
}

// SuspendsWork reports whether the holiday turns the whole day into overtime
// and excuses absence. Bank-only holidays do not.
func (h Holiday) SuspendsWork() bool {
	return h.Categories.Public || h.Categories.Mercantile
}

// Key is the yyyy-mm-dd lookup key of the holiday date.
func (h Holiday) Key() string {
	return DateKey(h.Date)
}

// DateKey formats the calendar date of t without converting its location.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// Calendar is a read-only date-indexed holiday set. It is safe to share
// between goroutines once built.
type Calendar struct {
	byDate map[string]Holiday
}

// NewCalendar indexes holidays by date. Entries for the same date are merged.
func NewCalendar(holidays []Holiday) Calendar {
	byDate := make(map[string]Holiday, len(holidays))
	for _, h := range holidays {
		key := h.Key()
		if existing, ok := byDate[key]; ok {
			existing.Categories.Public = existing.Categories.Public || h.Categories.Public
			existing.Categories.Mercantile = existing.Categories.Mercantile || h.Categories.Mercantile
			existing.Categories.Bank = existing.Categories.Bank || h.Categories.Bank
			if h.Summary != "" && !strings.Contains(existing.Summary, h.Summary) {
				if existing.Summary == "" {
					existing.Summary = h.Summary
				} else {
					existing.Summary = existing.Summary + " / " + h.Summary
				}
			}
			byDate[key] = existing
			continue
		}
		byDate[key] = h
	}
	return Calendar{byDate: byDate}
}

// On returns the holiday for the calendar date of day, or the zero Holiday.
func (c Calendar) On(day time.Time) Holiday {
	return c.byDate[DateKey(day)]
}

func (c Calendar) Len() int {
	return len(c.byDate)
}

// All returns the holidays ordered by date.
func (c Calendar) All() []Holiday {
	result := make([]Holiday, 0, len(c.byDate))
	for _, h := range c.byDate {
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result
}

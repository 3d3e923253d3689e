// Package ledger turns the irregular mortality and feed-delivery event
// streams into a consistent daily accounting state per rearing unit: the
// population stock timeline and the cumulative feed intake on top of it.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/agrodata/crianza_projection/internal/crianza/types"
	"github.com/agrodata/crianza_projection/internal/crianza/utils"
)

type dailyMortality struct {
	date    time.Time
	count   int
	ageSum  float64
	ageRows int
}

// BuildStockLedger derives the daily stock timeline for one unit from its
// mortality events and initial placement count. Events sharing a date are
// aggregated by summation (age averaged) before the running subtraction.
//
// A unit with zero events yields an empty ledger; the caller excludes it from
// downstream stages and reports the skip. Cumulative mortality exceeding the
// initial population is a DataIntegrityError for the unit.
func BuildStockLedger(unit types.RearingUnit, events []types.MortalityEvent) ([]types.StockRecord, error) {
	byDate := make(map[time.Time]*dailyMortality)

	for _, ev := range events {
		if ev.Key != unit.Key {
			continue
		}
		day := ev.Date
		agg, ok := byDate[day]
		if !ok {
			agg = &dailyMortality{date: day}
			byDate[day] = agg
		}
		agg.count += ev.Count
		agg.ageSum += ev.AgeDays
		agg.ageRows++
	}

	if len(byDate) == 0 {
		return nil, nil
	}

	days := make([]*dailyMortality, 0, len(byDate))
	for _, agg := range byDate {
		days = append(days, agg)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].date.Before(days[j].date) })

	records := make([]types.StockRecord, 0, len(days))
	cumulative := 0
	for _, day := range days {
		cumulative += day.count
		stock := unit.InitialCount - cumulative
		if stock < 0 {
			return nil, &types.DataIntegrityError{
				Key: unit.Key,
				Detail: fmt.Sprintf("cumulative mortality %d exceeds initial population %d at %s",
					cumulative, unit.InitialCount, day.date.Format("2006-01-02")),
			}
		}

		records = append(records, types.StockRecord{
			Key:       unit.Key,
			Date:      day.date,
			AgeDays:   utils.CeilAge(day.ageSum / float64(day.ageRows)),
			Mortality: day.count,
			Stock:     stock,
		})
	}

	return records, nil
}

package ledger

import (
	"fmt"
	"time"

	"github.com/agrodata/crianza_projection/internal/crianza/types"
)

// AccumulateFeed left-joins the feed-delivery ledger onto a unit's stock
// timeline. Ledger dates with no delivery get zero kilograms (feed is not
// delivered every day). Deliveries dated strictly before the first stock date
// are folded into the first row as pre-tracking consumption. Deliveries after
// that which match no stock date are dropped; the returned count feeds the
// batch report.
//
// Per-capita intake at zero stock has no defined value; it is a
// DataIntegrityError for the unit, never silently zeroed.
func AccumulateFeed(stock []types.StockRecord, deliveries []types.FeedDelivery) ([]types.FeedAccumulationRecord, int, error) {
	if len(stock) == 0 {
		return nil, 0, nil
	}
	key := stock[0].Key
	firstDate := stock[0].Date

	kgByDate := make(map[time.Time]float64)
	preLedgerKg := 0.0
	for _, d := range deliveries {
		if d.Key != key {
			continue
		}
		if d.Date.Before(firstDate) {
			preLedgerKg += d.Kilograms
			continue
		}
		kgByDate[d.Date] += d.Kilograms
	}

	records := make([]types.FeedAccumulationRecord, 0, len(stock))
	cumulative := 0.0
	for i, s := range stock {
		delivered := kgByDate[s.Date]
		delete(kgByDate, s.Date)
		if i == 0 {
			delivered += preLedgerKg
		}
		cumulative += delivered

		if s.Stock == 0 {
			return nil, 0, &types.DataIntegrityError{
				Key:    key,
				Detail: fmt.Sprintf("per-capita feed undefined: stock is zero at %s", s.Date.Format("2006-01-02")),
			}
		}

		records = append(records, types.FeedAccumulationRecord{
			Key:          key,
			Date:         s.Date,
			AgeDays:      s.AgeDays,
			DeliveredKg:  delivered,
			CumulativeKg: cumulative,
			PerCapitaKg:  cumulative / float64(s.Stock),
		})
	}

	// Whatever remains matched no ledger date.
	dropped := len(kgByDate)

	return records, dropped, nil
}

// PerCapitaAtAge returns the cumulative per-capita intake observed at the
// given age, used as the projection cutoff feature. The second return is
// false when the unit has no accumulation row at that age.
func PerCapitaAtAge(feed []types.FeedAccumulationRecord, ageDays int) (float64, bool) {
	for _, r := range feed {
		if r.AgeDays == ageDays {
			return r.PerCapitaKg, true
		}
	}
	return 0, false
}

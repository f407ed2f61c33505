package analysis

import (
	"sort"
	"strings"
	"time"

	"memberpulse/internal/config"
	"memberpulse/internal/dataset"
)

// promoParticipation carries the aggregator's intermediate sets that later
// stages join against: the distinct participant identifiers define who counts
// as a free-trial user in the funnel.
type promoParticipation struct {
	stats        PromoStats
	participants map[string]struct{}
}

// aggregatePromo selects the transactions tagged with the promotional
// discount code and derives usage statistics. A transaction with a missing or
// non-matching discount code is excluded (fails open). Transactions with
// unparseable dates still count toward the transaction totals but not toward
// the date-range, per-day, or monthly aggregates.
func aggregatePromo(financial []dataset.FinancialRecord, retention RetentionIndex, promoCode string) promoParticipation {
	wantCode := strings.ToLower(strings.TrimSpace(promoCode))

	participants := make(map[string]struct{})
	var selected int
	var dates []time.Time

	type monthAgg struct {
		transactions int
		users        map[string]struct{}
	}
	months := make(map[string]*monthAgg)

	for _, txn := range financial {
		if strings.ToLower(strings.TrimSpace(txn.DiscountCode)) != wantCode {
			continue
		}
		selected++

		if id := strings.TrimSpace(txn.AccountID); id != "" {
			participants[id] = struct{}{}
		}

		date, ok := parseReportDate(txn.Date)
		if !ok {
			continue
		}
		dates = append(dates, date)

		key := monthKey(date)
		agg := months[key]
		if agg == nil {
			agg = &monthAgg{users: make(map[string]struct{})}
			months[key] = agg
		}
		agg.transactions++
		if id := strings.TrimSpace(txn.AccountID); id != "" {
			agg.users[id] = struct{}{}
		}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	stats := PromoStats{
		TotalTransactions: selected,
		UniqueUsers:       len(participants),
		MonthlyBreakdown:  make([]MonthlyUsage, 0, len(months)),
	}

	if len(dates) > 0 {
		first, last := dates[0], dates[len(dates)-1]
		stats.FirstUsage = first.Format(config.ISODateLayout)
		stats.LastUsage = last.Format(config.ISODateLayout)
		// Inclusive day count: a single-day program spans one day.
		stats.UsagePeriodDays = int(last.Sub(first).Hours()/24) + 1
	}

	if stats.UsagePeriodDays > 0 {
		stats.AvgTransactionsPerDay = float64(selected) / float64(stats.UsagePeriodDays)
		stats.AvgUsersPerDay = float64(len(participants)) / float64(stats.UsagePeriodDays)
	}

	for key, agg := range months {
		stats.MonthlyBreakdown = append(stats.MonthlyBreakdown, MonthlyUsage{
			Month:        key,
			Transactions: agg.transactions,
			UniqueUsers:  len(agg.users),
		})
	}
	sort.Slice(stats.MonthlyBreakdown, func(i, j int) bool {
		return stats.MonthlyBreakdown[i].Month < stats.MonthlyBreakdown[j].Month
	})

	stats.CanceledUsers, stats.ActiveUsers = retention.Split(participants)
	stats.CancellationRate = rate(stats.CanceledUsers, len(participants))

	return promoParticipation{stats: stats, participants: participants}
}

// Package analysis computes marketing-funnel and membership-retention metrics
// from the three source datasets: membership accounts, financial transactions,
// and Jotform lead submissions.
//
// The engine is a pure function of its inputs. One call to Analyzer.Analyze
// joins the datasets by normalized email and account identifier, partitions
// lead submissions around the free-trial cutoff date, and assembles a single
// immutable Report. No state survives between calls, so a single Analyzer is
// safe for concurrent requests.
//
// Per-row irregularities never abort an analysis: records with unparseable
// dates are excluded from date-bucketed aggregates but kept in raw totals,
// records with blank key fields are excluded from the relevant sets, and every
// rate guards its denominator, yielding 0 instead of dividing by zero.
package analysis

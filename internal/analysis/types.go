package analysis

// Report is the single output of one analysis run. It is fully populated for
// any input: numeric fields default to 0 and collections are empty, never nil,
// so downstream consumers render without null checks. Rates are unrounded
// percentages on a 0-100 scale.
type Report struct {
	TotalMembers     int     `json:"total_members"`
	ActiveMembers    int     `json:"active_members"`
	CanceledMembers  int     `json:"canceled_members"`
	CancellationRate float64 `json:"cancellation_rate"`

	FreePromo     PromoStats    `json:"free_promo"`
	Funnel        FunnelStats   `json:"funnel"`
	MemberSources MemberSources `json:"member_sources"`
}

// PromoStats summarizes use of the promotional discount code.
type PromoStats struct {
	TotalTransactions     int     `json:"total_transactions"`
	UniqueUsers           int     `json:"unique_users"`
	CanceledUsers         int     `json:"canceled_users"`
	ActiveUsers           int     `json:"active_users"`
	CancellationRate      float64 `json:"cancellation_rate"`
	AvgTransactionsPerDay float64 `json:"avg_transactions_per_day"`
	AvgUsersPerDay        float64 `json:"avg_users_per_day"`

	// UsagePeriodDays is an inclusive calendar-day count between the first
	// and last parseable transaction dates, not a duration.
	UsagePeriodDays int    `json:"usage_period_days"`
	FirstUsage      string `json:"first_usage"`
	LastUsage       string `json:"last_usage"`

	MonthlyBreakdown []MonthlyUsage `json:"monthly_breakdown"`
}

// MonthlyUsage is one calendar-month cohort of promotional transactions.
type MonthlyUsage struct {
	Month        string `json:"month"` // "YYYY-MM"
	Transactions int    `json:"transactions"`
	UniqueUsers  int    `json:"unique_users"`
}

// FunnelStats summarizes the lead-form pipeline, overall and split into
// before- and since-cutoff cohorts.
type FunnelStats struct {
	TotalSubmissions     int     `json:"total_submissions"`
	UniqueEmails         int     `json:"unique_emails"`
	DuplicateSubmissions int     `json:"duplicate_submissions"`
	Converted            int     `json:"converted"`
	ConversionRate       float64 `json:"conversion_rate"`

	Before CohortStats `json:"before_free_trial"`
	Since  CohortStats `json:"since_free_trial"`

	// FreeTrial is scoped to the since-cutoff cohort only; the promotion
	// did not exist before the cutoff.
	FreeTrial FreeTrialStats `json:"free_trial"`
}

// CohortStats holds the funnel metrics of one date-partitioned cohort.
// Converted counts every matched account (gross); NetConversionRate counts
// only matched accounts still active.
type CohortStats struct {
	Submissions       int     `json:"submissions"`
	UniqueEmails      int     `json:"unique_emails"`
	Converted         int     `json:"converted"`
	ConversionRate    float64 `json:"conversion_rate"`
	Canceled          int     `json:"canceled"`
	Active            int     `json:"active"`
	CancellationRate  float64 `json:"cancellation_rate"`
	NetConversionRate float64 `json:"net_conversion_rate"`
}

// FreeTrialStats classifies since-cutoff conversions into free-trial users
// (promotion participants) and direct payers.
type FreeTrialStats struct {
	Users            int     `json:"users"`
	PaidUsers        int     `json:"paid_users"`
	Rate             float64 `json:"rate"`
	Canceled         int     `json:"canceled"`
	Active           int     `json:"active"`
	CancellationRate float64 `json:"cancellation_rate"`
}

// MemberSources splits the membership by whether the account's email appeared
// in the lead form.
type MemberSources struct {
	FromJotform    int `json:"from_jotform"`
	NotFromJotform int `json:"not_from_jotform"`
}

// rate returns numerator/denominator as a percentage, 0 when the denominator
// is zero.
func rate(numerator, denominator int) float64 {
	if denominator <= 0 {
		return 0
	}
	return float64(numerator) / float64(denominator) * 100
}

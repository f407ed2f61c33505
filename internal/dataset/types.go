package dataset

// AccountRecord is one membership account from the accounts export.
// Join and renewal dates are display-only; the engine never parses them.
type AccountRecord struct {
	AccountID   string `json:"account_id"`
	Email       string `json:"email"`
	Cancel      string `json:"cancel"`
	JoinDate    string `json:"join_date"`
	RenewalDate string `json:"renewal_date"`
}

// FinancialRecord is one transaction from the financial export.
type FinancialRecord struct {
	Date         string `json:"date"`
	AccountID    string `json:"account_id"`
	DiscountCode string `json:"discount_code"`
}

// JotformRecord is one lead-form submission from the Jotform export.
// Duplicate emails are legitimate (repeat submissions) and preserved here.
type JotformRecord struct {
	SubmissionDate string `json:"submission_date"`
	Email          string `json:"email"`
}

// Bundle holds the three fully-materialized datasets for one analysis run.
type Bundle struct {
	Accounts  []AccountRecord
	Financial []FinancialRecord
	Jotform   []JotformRecord
}

// TotalRows returns the combined row count across all three datasets.
func (b Bundle) TotalRows() int {
	return len(b.Accounts) + len(b.Financial) + len(b.Jotform)
}

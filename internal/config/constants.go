package config

import "time"

// Application constants - all hardcoded values for the MemberPulse system
const (
	// Application Info
	AppName    = "MemberPulse"
	AppVersion = "1.2.0"

	// Analysis Constants
	//
	// FreePromoCode is matched case- and whitespace-insensitively against the
	// "Discount Code" column of the financial export.
	FreePromoCode = "free"
	// CancelSentinel is matched exactly (after trimming) against the "Cancel"
	// column of the accounts export.
	CancelSentinel = "Cancel"
	// FreeTrialCutoff is the calendar date the free-trial promotion launched.
	// Funnel cohorts are partitioned strictly before / on-or-after this date.
	FreeTrialCutoff = "2025-08-06"
	// ReportDateLayout is the textual date format used by both the financial
	// and the Jotform exports ("Aug 6, 2025").
	ReportDateLayout = "Jan 2, 2006"
	// ISODateLayout is the serialization format for dates in the report.
	ISODateLayout = "2006-01-02"

	// Dataset Limits
	DefaultMaxRowsPerDataset = 250000
	DefaultMaxUploadBytes    = 32 << 20 // 32 MiB multipart memory ceiling

	// CSV Column Headers (verbatim from the source exports)
	HeaderAccountID    = "Account ID"
	HeaderEmail        = "Email"
	HeaderCancel       = "Cancel"
	HeaderJoinDate     = "Join Date"
	HeaderRenewalDate  = "Renewal Date"
	HeaderDate         = "Date"
	HeaderDiscountCode = "Discount Code"
	HeaderSubmission   = "Submission Date"
	HeaderJotformEmail = "Please enter your email to see your results."

	// Rate Limiting
	DefaultRateLimit = 100 // requests per minute
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout = 30 * time.Second

	// File Paths (relative to working directory)
	DefaultDataDir    = "data"
	DefaultLogsDir    = "logs"
	DefaultReportsDir = "data/reports"
)

package models

import "time"

// ChannelingConfig is the per-lender configuration bag for loan channeling.
// It is configuration, not an entity; edits happen through feature-setting
// maintenance.
type ChannelingConfig struct {
	General ChannelingGeneral `bson:"general" json:"general"`
	RAC     ChannelingRAC     `bson:"rac" json:"rac"`
	Cutoff  ChannelingCutoff  `bson:"cutoff" json:"cutoff"`
	DueDate ChannelingDueDate `bson:"dueDate" json:"due_date"`
	Version int               `bson:"version" json:"version"`
}

type ChannelingGeneral struct {
	LenderName         string   `bson:"lenderName" json:"lender_name"`
	BuybackLender      string   `bson:"buybackLender" json:"buyback_lender"`
	ExcludedLenders    []string `bson:"excludedLenders" json:"excluded_lenders"`
	InterestPercentage float64  `bson:"interestPercentage" json:"interest_percentage"`
	RiskPremium        float64  `bson:"riskPremium" json:"risk_premium"`
	DaysInYear         int      `bson:"daysInYear" json:"days_in_year"`
}

// ChannelingRAC holds the lender's risk-acceptance criteria. Zero-valued
// optional bounds disable the corresponding check.
type ChannelingRAC struct {
	MinAge                 int      `bson:"minAge" json:"min_age"`
	MaxAge                 int      `bson:"maxAge" json:"max_age"`
	JobTypes               []string `bson:"jobTypes" json:"job_types"`
	MinWorktimeMonths      int      `bson:"minWorktimeMonths" json:"min_worktime_months"`
	MinIncome              int64    `bson:"minIncome" json:"min_income"`
	MinLoan                int64    `bson:"minLoan" json:"min_loan"`
	MaxLoan                int64    `bson:"maxLoan" json:"max_loan"`
	TenorType              string   `bson:"tenorType" json:"tenor_type"`
	MinTenor               int      `bson:"minTenor" json:"min_tenor"`
	MaxTenor               int      `bson:"maxTenor" json:"max_tenor"`
	MaxRatio               float64  `bson:"maxRatio" json:"max_ratio"`
	TransactionMethods     []int    `bson:"transactionMethods" json:"transaction_methods"`
	IncomeProofRequired    bool     `bson:"incomeProofRequired" json:"income_prove"`
	DukcapilCheckRequired  bool     `bson:"dukcapilCheckRequired" json:"dukcapil_check"`
	MotherMaidenNameCheck  bool     `bson:"motherMaidenNameCheck" json:"mother_maiden_name"`
	RejectMotherEqualsName bool     `bson:"rejectMotherEqualsName" json:"reject_mother_equals_name"`
}

type ChannelingCutoff struct {
	IsActive      bool     `bson:"isActive" json:"is_active"`
	OpeningTime   string   `bson:"openingTime" json:"opening_time"`
	CutoffTime    string   `bson:"cutoffTime" json:"cutoff_time"`
	InactiveDays  []string `bson:"inactiveDays" json:"inactive_day"`
	InactiveDates []string `bson:"inactiveDates" json:"inactive_dates"`
	DailyQuota    int64    `bson:"dailyQuota" json:"limit"`
}

type ChannelingDueDate struct {
	IsExclusionActive bool  `bson:"isExclusionActive" json:"is_active"`
	ExclusionDays     []int `bson:"exclusionDays" json:"exclusion_day"`
}

// ChannelingLoan is the loan-level view the RAC checker validates.
type ChannelingLoan struct {
	ApplicationID     int64     `bson:"applicationId" json:"applicationId"`
	LoanAmount        int64     `bson:"loanAmount" json:"loanAmount"`
	Tenor             int       `bson:"tenor" json:"tenor"`
	TenorType         string    `bson:"tenorType" json:"tenorType"`
	InstallmentAmount int64     `bson:"installmentAmount" json:"installmentAmount"`
	TransactionMethod int       `bson:"transactionMethod" json:"transactionMethod"`
	DueDate           time.Time `bson:"dueDate" json:"dueDate"`
}

package consts

// RAC rejection reason templates. Callers assert on these verbatim, so the
// wording is part of the external contract.
const (
	RACNotSet                  = "RAC not set"
	RACMotherMaidenNameNotSet  = "Mother maiden name not set"
	RACCannotPassMinAge        = "Cannot pass minimum age, %d"
	RACCannotPassMaxAge        = "Cannot pass maximum age, %d"
	RACJobTypeNotAllowed       = "Job type not allowed, %s"
	RACCannotPassMinWorktime   = "Cannot pass minimum worktime, %d"
	RACCannotPassMinIncome     = "Cannot pass minimum income, %d"
	RACIncomeProofNotFound     = "Income proof document not found"
	RACKTPOrSelfieNotFound     = "KTP or selfie image not found"
	RACDukcapilNotPassed       = "Dukcapil verification not passed"
	RACCannotPassMinLoan       = "Cannot pass minimum loan, %d"
	RACCannotPassMaxLoan       = "Cannot pass maximum loan, %d"
	RACTenorTypeNotMatched     = "Tenor type not matched, %s"
	RACCannotPassMinTenor      = "Cannot pass minimum tenor, %d"
	RACCannotPassMaxTenor      = "Cannot pass maximum tenor, %d"
	RACCannotPassRatio         = "Cannot pass installment ratio, %.2f"
	RACDueDateExcluded         = "Due date excluded, %d"
	RACTransactionNotAllowed   = "Transaction method not allowed, %d"
	RACMotherNameEqualsName    = "Mother maiden name equals full name"
	RACAddressIncomplete       = "Address or zipcode incomplete"
)

// InstallmentRatioCeiling is the maximum installment-to-income ratio.
const InstallmentRatioCeiling = 1.0

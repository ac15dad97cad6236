package consts

// Mongo collection names.
const (
	ApplicationsCollection              = "Applications"
	ApplicationTagsCollection           = "ApplicationTags"
	ApplicationNotesCollection          = "ApplicationNotes"
	ApplicationStatusHistoryCollection  = "ApplicationStatusHistory"
	AffordabilityHistoryCollection      = "AffordabilityHistory"
	SonicAffordabilityCollection        = "SonicAffordability"
	CreditModelResultsCollection        = "CreditModelResults"
	CreditScoresCollection              = "CreditScores"
	CreditMatrixCollection              = "CreditMatrix"
	CurrentCreditMatrixCollection       = "CurrentCreditMatrix"
	CreditLimitGenerationsCollection    = "CreditLimitGenerations"
	AccountsCollection                  = "Accounts"
	AccountLimitsCollection             = "AccountLimits"
	AccountPropertiesCollection         = "AccountProperties"
	AccountPropertyHistoryCollection    = "AccountPropertyHistory"
	CustomerLimitsCollection            = "CustomerLimits"
	BankStatementSubmitsCollection      = "BankStatementSubmits"
	BankStatementBalancesCollection     = "BankStatementSubmitBalances"
	FeatureSettingsCollection           = "FeatureSettings"
	ExperimentSettingsCollection        = "ExperimentSettings"
	ChannelingConfigsCollection         = "ChannelingConfigs"
)

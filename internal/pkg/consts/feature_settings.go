package consts

// Feature / experiment setting names.
const (
	SettingCreditLimitRejectAffordability = "credit_limit_reject_affordability"
	SettingLimitAdjustmentFactor          = "limit_adjustment_factor"
	SettingRoundingDownValue              = "rounding_down_value"
	SettingEntryLevelLimit                = "entry_level_limit"
	SettingLBS130Bypass                   = "lbs_130_bypass"
	SettingLannisterExperiment            = "lannister_experiment"
	SettingAffordabilityExperiment        = "affordability_threshold_experiment"
	SettingLeverageBankStatement          = "leverage_bank_statement_experiment"
	SettingOrionFDCLimitGeneration        = "orion_fdc_limit_generation"
	SettingHighRisk                       = "high_risk"
	SettingOfflineActivation              = "offline_activation_minimum_limit"
	SettingShopeeWhitelist                = "shopee_whitelist"
	SettingTokoscoreRevival               = "tokoscore_revival"
	SettingPartnershipLeadgen             = "partnership_leadgen_config"
)

// Hardcoded limit-adjustment-factor fallback bands, used when the feature
// setting is absent. Compared with strict greater-than.
const (
	AdjustmentHighMinPGood   = 0.85
	AdjustmentHighFactor     = 1.0
	AdjustmentMediumMinPGood = 0.75
	AdjustmentMediumFactor   = 0.9
	AdjustmentLowFactor      = 0.8
)

// Leverage-bank-statement fallback parameters.
const (
	LBSDefaultMultiplier        = 1.5
	LBSDefaultMinRejectionLimit = 150_000
	LBSDefaultLimitCap          = 5_000_000
	LBSBalanceRoundingStep      = 50_000
)

// Redis counter keys for shared quotas.
const (
	LBSBypassCounterKey       = "creditlimit:lbs130:bypass:count"
	LannisterUsageCounterKey  = "creditlimit:lannister:usage:count"
)

// QuotaAlertMilestones are the remaining-quota marks that trigger an
// operational alert.
var QuotaAlertMilestones = []int64{100, 75, 50, 25, 0}

package consts

// Application status codes relevant to limit generation.
const (
	ApplicationStatusLimitGenerated = 130
	ApplicationStatusLOCApproved    = 190
)

// Account status at creation time.
const AccountStatusInactive = "inactive"

// Generation reasons recorded on CreditLimitGeneration rows.
const (
	ReasonCreditLimitGeneration = "130 Credit Limit Generation"
	ReasonEntryLevelLimit       = "Entry Level Limit"
	ReasonTurboUpgrade          = "130 Credit Limit Generation Turbo Upgrade"
	ReasonLeverageBankStatement = "Leverage Bank Statement Limit"
	ReasonGoodFDCBypass         = "Good FDC Bypass Limit"
	ReasonClickPass             = "Click Pass Limit"
	ReasonOfflineActivation     = "Offline Activation Minimum Limit"
)

// Credit matrix parameter tags selected by the cascade.
const (
	MatrixParamGoldfish         = "feature:is_goldfish"
	MatrixParamClikModel        = "feature:is_clik_model"
	MatrixParamSemiGood         = "feature:is_semi_good"
	MatrixParamGoodFDCBypass    = "feature:good_fdc_bypass"
	MatrixParamLeverageBankStmt = "feature:leverage_bank_statement"
	MatrixParamShopeeWhitelist  = "feature:shopee_whitelist"
	MatrixParamTokoscore        = "feature:tokoscore_revival"
)

// Credit matrix types.
const (
	MatrixTypeJulo1           = "julo1"
	MatrixTypeJulo1IOS        = "julo1_ios"
	MatrixTypeJulo1EntryLevel = "julo1_entry_level"
	MatrixTypeJulo1Limit      = "julo1_limit"
	MatrixTypeJuloStarter     = "julo_starter"
	MatrixTypeJulover         = "julover"
	MatrixTypeProven          = "julo1_proven"
	MatrixTypeRepeatedMTL     = "julo_repeated_mtl"
)

// Application workflow tags consumed by the cascade.
const (
	TagGoldfishEligible    = "is_goldfish"
	TagBrickRevival        = "is_revive_brick"
	TagShopeeWhitelist     = "is_shopee_whitelist_success"
	TagShopeeAnomaly       = "is_shopee_anomaly"
	TagAutodebitPending    = "is_autodebit_pending"
	TagBPJSFound           = "is_bpjs_found"
	TagTokoscoreRevival    = "is_revive_tokoscore_success"
	TagReviveSemiGood      = "is_revive_semi_good"
	TagReviveGoodFDC       = "is_revive_good_fdc"
	TagGoodFDCBypass       = "is_good_fdc_bypass"
	TagOfflineLowPGood     = "is_offline_low_pgood"
	TagCheckGoodFDC        = "check_good_fdc"
	TagClickPass           = "is_click_pass"
	TagOfflineActivation   = "is_offline_activation"
	TagClikModelPassed     = "is_clik_model_passed"
	TagTurboUpgrade        = "is_turbo_upgrade_in_flight"
	TagEntryLevelForced    = "is_entry_level"
)

// Semi-good score grade.
const ScoreSemiGood = "C+"

// Share of processed income treated as affordable monthly payment on the
// sonic recompute path.
const AffordablePaymentIncomeRatio = 0.3

// Sonic affordability recompute markers.
const (
	SonicChangeReason   = "sonic_affordability_passed"
	SonicBankScrapeNote = "income changed by bank scrape model"
)

// Flat caps applied by the good-FDC override group.
const (
	GoodFDCFlatLimit    = 3_000_000
	ClickPassFlatLimit  = 1_500_000
)

// Limit rounding bands.
const (
	BandRoundingThreshold = 5_000_000
	BandRoundingHigh      = 1_000_000
	BandRoundingLow       = 500_000
	MinimumViableSetLimit = 500_000
)

// Submission form types for the affordability threshold override.
const (
	SubmissionFormShort = "short_form"
	SubmissionFormLong  = "long_form"
)

// Transaction type scoping live matrices.
const TransactionTypeSelf = "self"

// Bank statement submission status.
const BankStatementStatusSuccess = "success"

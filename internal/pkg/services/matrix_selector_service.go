package services

import (
	"context"
	"time"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/logger"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

type ApplicationTagsRepo interface {
	ActiveTags(ctx context.Context, applicationID int64) (map[string]bool, error)
}

type CreditModelRepo interface {
	ResultByApplication(ctx context.Context, application *models.Application) (*models.CreditModelResult, error)
	ScoreByApplication(ctx context.Context, applicationID int64) (*models.CreditScore, error)
}

type CreditMatrixRepo interface {
	FindMatrix(ctx context.Context, params models.MatrixParams, parameter string) (*models.CreditMatrix, error)
}

type SelectorSettingsRepo interface {
	Lannister(ctx context.Context, now time.Time) (*models.LannisterParams, error)
	PartnershipLeadgen(ctx context.Context) (*models.PartnershipLeadgenParams, error)
	ShopeeWhitelist(ctx context.Context) (*models.ShopeeWhitelistParams, error)
	TokoscoreRevival(ctx context.Context) (*models.TokoscoreRevivalParams, error)
	IsSettingActive(ctx context.Context, name string) (bool, error)
}

// MatrixSelection is the cascade outcome. Rejected is terminal (shopee
// anomaly); a nil Matrix with Rejected false means no matrix matched and
// no limit can be generated.
type MatrixSelection struct {
	Matrix           *models.CreditMatrix
	Params           models.MatrixParams
	Tags             map[string]bool
	Branch           string
	Rejected         bool
	GoldfishSelected bool
	IsSemiGood       bool
	IsEntryLevel     bool
}

// Cascade branch names recorded on the selection for audit logs.
const (
	BranchGoldfish      = "goldfish"
	BranchLannister     = "lannister"
	BranchBrickRevival  = "brick_revival"
	BranchClikModel     = "clik_model"
	BranchSemiGood      = "semi_good"
	BranchShopee        = "shopee_whitelist"
	BranchEntryLevel    = "entry_level_forced"
	BranchGoodFDCBypass = "good_fdc_bypass"
	BranchTokoscore     = "tokoscore_revival"
	BranchLeverageBank  = "leverage_bank_statement"
	BranchDefault       = "default"
)

type MatrixSelectorService struct {
	tagsRepo          ApplicationTagsRepo
	creditModelRepo   CreditModelRepo
	matrixRepo        CreditMatrixRepo
	settingsRepo      SelectorSettingsRepo
	bankStatementRepo BankStatementSubmitRepo
	quotaCounter      QuotaCounterStore
	notifier          QuotaAlertNotifier
}

func NewMatrixSelectorService(
	tagsRepo ApplicationTagsRepo,
	creditModelRepo CreditModelRepo,
	matrixRepo CreditMatrixRepo,
	settingsRepo SelectorSettingsRepo,
	bankStatementRepo BankStatementSubmitRepo,
	quotaCounter QuotaCounterStore,
	notifier QuotaAlertNotifier,
) *MatrixSelectorService {
	return &MatrixSelectorService{
		tagsRepo:          tagsRepo,
		creditModelRepo:   creditModelRepo,
		matrixRepo:        matrixRepo,
		settingsRepo:      settingsRepo,
		bankStatementRepo: bankStatementRepo,
		quotaCounter:      quotaCounter,
		notifier:          notifier,
	}
}

// matrixRule is one branch of the selection cascade. Branches are
// evaluated in order and the first applicable one resolves the matrix.
type matrixRule struct {
	name    string
	applies func(ctx context.Context, sc *selectionContext) (bool, error)
	resolve func(ctx context.Context, sc *selectionContext) (*models.CreditMatrix, error)
}

// selectionContext carries the per-application state shared across
// cascade branches.
type selectionContext struct {
	application *models.Application
	tags        map[string]bool
	score       *models.CreditScore
	params      models.MatrixParams
	lannister   *models.LannisterParams
	hasBankStmt bool
	result      *MatrixSelection
}

// Select builds the base lookup parameters and runs the ordered cascade.
// Branch order is load-bearing: revival programs outrank score-derived
// branches, which outrank the bank-statement fallback.
func (s *MatrixSelectorService) Select(ctx context.Context, application *models.Application) (MatrixSelection, error) {
	selection := MatrixSelection{Branch: BranchDefault}

	tags, err := s.tagsRepo.ActiveTags(ctx, application.ApplicationID)
	if err != nil {
		return selection, err
	}
	selection.Tags = tags
	score, err := s.creditModelRepo.ScoreByApplication(ctx, application.ApplicationID)
	if err != nil {
		return selection, err
	}

	params, err := s.buildBaseParams(ctx, application, score, tags)
	if err != nil {
		return selection, err
	}
	selection.Params = params
	selection.IsEntryLevel = params.CreditMatrixType == consts.MatrixTypeJulo1EntryLevel
	selection.IsSemiGood = score != nil && score.Score == consts.ScoreSemiGood

	submit, err := s.bankStatementRepo.SuccessfulSubmit(ctx, application.ApplicationID)
	if err != nil {
		return selection, err
	}

	sc := &selectionContext{
		application: application,
		tags:        tags,
		score:       score,
		params:      params,
		hasBankStmt: submit != nil,
		result:      &selection,
	}

	for _, rule := range s.cascade() {
		applies, err := rule.applies(ctx, sc)
		if err != nil {
			return selection, err
		}
		if !applies {
			continue
		}
		matrix, err := rule.resolve(ctx, sc)
		if err != nil {
			return selection, err
		}
		selection.Branch = rule.name
		selection.Matrix = matrix
		selection.Params = sc.params
		logger.Info(ctx, "MatrixSelector : application %d resolved via %s branch", application.ApplicationID, rule.name)
		return selection, nil
	}

	// Unreachable: the default branch always applies.
	return selection, nil
}

func (s *MatrixSelectorService) cascade() []matrixRule {
	return []matrixRule{
		{
			name: BranchGoldfish,
			applies: func(ctx context.Context, sc *selectionContext) (bool, error) {
				return sc.tags[consts.TagGoldfishEligible] && !sc.result.IsEntryLevel, nil
			},
			resolve: func(ctx context.Context, sc *selectionContext) (*models.CreditMatrix, error) {
				sc.result.GoldfishSelected = true
				return s.matrixRepo.FindMatrix(ctx, sc.params, consts.MatrixParamGoldfish)
			},
		},
		{
			name: BranchLannister,
			applies: func(ctx context.Context, sc *selectionContext) (bool, error) {
				if sc.result.IsEntryLevel || sc.hasBankStmt {
					return false, nil
				}
				lannister, err := s.settingsRepo.Lannister(ctx, time.Now())
				if err != nil || lannister == nil {
					return false, err
				}
				sc.lannister = lannister
				return true, nil
			},
			resolve: func(ctx context.Context, sc *selectionContext) (*models.CreditMatrix, error) {
				if !lastDigitAllowed(sc.application.ApplicationID, sc.lannister.AllowedLastDigits) {
					return s.matrixRepo.FindMatrix(ctx, sc.params, "")
				}
				allowed, remaining, err := s.quotaCounter.IncrementIfBelow(ctx, consts.LannisterUsageCounterKey, sc.lannister.Quota)
				if err != nil {
					return nil, err
				}
				if !allowed {
					return s.matrixRepo.FindMatrix(ctx, sc.params, "")
				}
				for _, milestone := range consts.QuotaAlertMilestones {
					if remaining == milestone {
						s.notifier.NotifyQuotaMilestone(ctx, consts.SettingLannisterExperiment, remaining)
						break
					}
				}
				parameter := sc.lannister.CreditMatrixParameter
				if parameter == "" {
					parameter = consts.MatrixParamGoldfish
				}
				return s.matrixRepo.FindMatrix(ctx, sc.params, parameter)
			},
		},
		{
			name: BranchBrickRevival,
			applies: func(ctx context.Context, sc *selectionContext) (bool, error) {
				return sc.tags[consts.TagBrickRevival], nil
			},
			resolve: func(ctx context.Context, sc *selectionContext) (*models.CreditMatrix, error) {
				return s.matrixRepo.FindMatrix(ctx, sc.params, "")
			},
		},
		{
			name: BranchClikModel,
			applies: func(ctx context.Context, sc *selectionContext) (bool, error) {
				return sc.tags[consts.TagClikModelPassed] && sc.result.IsSemiGood, nil
			},
			resolve: func(ctx context.Context, sc *selectionContext) (*models.CreditMatrix, error) {
				sc.params.CreditMatrixType = ""
				return s.matrixRepo.FindMatrix(ctx, sc.params, consts.MatrixParamClikModel)
			},
		},
		{
			name: BranchSemiGood,
			applies: func(ctx context.Context, sc *selectionContext) (bool, error) {
				return sc.result.IsSemiGood, nil
			},
			resolve: func(ctx context.Context, sc *selectionContext) (*models.CreditMatrix, error) {
				sc.params.CreditMatrixType = ""
				return s.matrixRepo.FindMatrix(ctx, sc.params, consts.MatrixParamSemiGood)
			},
		},
		{
			name: BranchShopee,
			applies: func(ctx context.Context, sc *selectionContext) (bool, error) {
				return sc.tags[consts.TagShopeeWhitelist], nil
			},
			resolve: func(ctx context.Context, sc *selectionContext) (*models.CreditMatrix, error) {
				if sc.tags[consts.TagShopeeAnomaly] {
					logger.Warn(ctx, "MatrixSelector : application %d rejected by shopee anomaly", sc.application.ApplicationID)
					sc.result.Rejected = true
					return nil, nil
				}
				whitelist, err := s.settingsRepo.ShopeeWhitelist(ctx)
				if err != nil {
					return nil, err
				}
				parameter := consts.MatrixParamShopeeWhitelist
				if whitelist != nil {
					if whitelist.CreditMatrixType != "" {
						sc.params.CreditMatrixType = whitelist.CreditMatrixType
					}
					if whitelist.CreditMatrixParameter != "" {
						parameter = whitelist.CreditMatrixParameter
					}
				}
				return s.matrixRepo.FindMatrix(ctx, sc.params, parameter)
			},
		},
		{
			name: BranchEntryLevel,
			applies: func(ctx context.Context, sc *selectionContext) (bool, error) {
				if !sc.tags[consts.TagAutodebitPending] && !sc.tags[consts.TagBPJSFound] {
					return false, nil
				}
				return s.settingsRepo.IsSettingActive(ctx, consts.SettingHighRisk)
			},
			resolve: func(ctx context.Context, sc *selectionContext) (*models.CreditMatrix, error) {
				sc.params.CreditMatrixType = consts.MatrixTypeJulo1EntryLevel
				sc.result.IsEntryLevel = true
				return s.matrixRepo.FindMatrix(ctx, sc.params, "")
			},
		},
		{
			name: BranchGoodFDCBypass,
			applies: func(ctx context.Context, sc *selectionContext) (bool, error) {
				if sc.result.IsEntryLevel {
					return false, nil
				}
				if !sc.tags[consts.TagGoodFDCBypass] && !sc.tags[consts.TagOfflineLowPGood] {
					return false, nil
				}
				return s.settingsRepo.IsSettingActive(ctx, consts.SettingOrionFDCLimitGeneration)
			},
			resolve: func(ctx context.Context, sc *selectionContext) (*models.CreditMatrix, error) {
				return s.matrixRepo.FindMatrix(ctx, sc.params, consts.MatrixParamGoodFDCBypass)
			},
		},
		{
			name: BranchTokoscore,
			applies: func(ctx context.Context, sc *selectionContext) (bool, error) {
				return sc.tags[consts.TagTokoscoreRevival], nil
			},
			resolve: func(ctx context.Context, sc *selectionContext) (*models.CreditMatrix, error) {
				revival, err := s.settingsRepo.TokoscoreRevival(ctx)
				if err != nil {
					return nil, err
				}
				parameter := consts.MatrixParamTokoscore
				if revival != nil {
					if revival.CreditMatrixType != "" {
						sc.params.CreditMatrixType = revival.CreditMatrixType
					}
					if revival.CreditMatrixParameter != "" {
						parameter = revival.CreditMatrixParameter
					}
				}
				return s.matrixRepo.FindMatrix(ctx, sc.params, parameter)
			},
		},
		{
			name: BranchLeverageBank,
			applies: func(ctx context.Context, sc *selectionContext) (bool, error) {
				return sc.hasBankStmt, nil
			},
			resolve: func(ctx context.Context, sc *selectionContext) (*models.CreditMatrix, error) {
				return s.matrixRepo.FindMatrix(ctx, sc.params, consts.MatrixParamLeverageBankStmt)
			},
		},
		{
			name: BranchDefault,
			applies: func(ctx context.Context, sc *selectionContext) (bool, error) {
				return true, nil
			},
			resolve: func(ctx context.Context, sc *selectionContext) (*models.CreditMatrix, error) {
				return s.matrixRepo.FindMatrix(ctx, sc.params, "")
			},
		},
	}
}

// buildBaseParams resolves the lookup parameters before any branch
// override. Partnership leadgen replaces the matrix type outright; the
// standard resolution takes the first true condition in priority order.
func (s *MatrixSelectorService) buildBaseParams(ctx context.Context, application *models.Application, score *models.CreditScore, tags map[string]bool) (models.MatrixParams, error) {
	modelResult, err := s.creditModelRepo.ResultByApplication(ctx, application)
	if err != nil {
		return models.MatrixParams{}, err
	}
	if modelResult == nil {
		return models.MatrixParams{}, consts.ErrorCreditModelNotFound
	}

	params := models.MatrixParams{
		PGood:           modelResult.PGood,
		IsSalaried:      isSalariedJobType(application.JobType),
		IsPremiumArea:   application.IsPremiumArea,
		IsFDC:           modelResult.HasFDC,
		TransactionType: consts.TransactionTypeSelf,
	}

	leadgen, err := s.settingsRepo.PartnershipLeadgen(ctx)
	if err != nil {
		return params, err
	}
	if leadgen != nil && application.StatusID == leadgen.StatusID && partnerListed(application.PartnerName, leadgen.Partners) {
		params.CreditMatrixType = leadgen.CreditMatrixType
		return params, nil
	}

	switch {
	case application.IsJulover:
		params.CreditMatrixType = consts.MatrixTypeJulover
	case application.IsJuloOneIOS:
		params.CreditMatrixType = consts.MatrixTypeJulo1IOS
	case application.IsJuloStarter:
		params.CreditMatrixType = consts.MatrixTypeJuloStarter
	case tags[consts.TagEntryLevelForced] || (score != nil && score.CreditMatrixType == consts.MatrixTypeJulo1EntryLevel):
		params.CreditMatrixType = consts.MatrixTypeJulo1EntryLevel
	case application.IsProven:
		params.CreditMatrixType = consts.MatrixTypeProven
	case application.IsRepeatedMTL:
		params.CreditMatrixType = consts.MatrixTypeRepeatedMTL
	default:
		params.CreditMatrixType = consts.MatrixTypeJulo1
	}
	return params, nil
}

func lastDigitAllowed(applicationID int64, allowed []int) bool {
	last := int(applicationID % 10)
	for _, digit := range allowed {
		if digit == last {
			return true
		}
	}
	return false
}

func partnerListed(partner string, partners []string) bool {
	for _, name := range partners {
		if name == partner {
			return true
		}
	}
	return false
}

var salariedJobTypes = map[string]bool{
	"Pegawai swasta": true,
	"Pegawai negeri": true,
	"TNI/Polri":      true,
}

func isSalariedJobType(jobType string) bool {
	return salariedJobTypes[jobType]
}

package store

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/db"
	"globe/dodrio_credit_limit/internal/pkg/logger"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

var validate = validator.New()

type FeatureSettingRepository struct {
	settingRepo    *MongoRepository[models.FeatureSetting]
	experimentRepo *MongoRepository[models.ExperimentSetting]
}

func NewFeatureSettingRepository() *FeatureSettingRepository {
	return &FeatureSettingRepository{
		settingRepo:    NewMongoRepository[models.FeatureSetting](db.MDB.Database.Collection(consts.FeatureSettingsCollection)),
		experimentRepo: NewMongoRepository[models.ExperimentSetting](db.MDB.Database.Collection(consts.ExperimentSettingsCollection)),
	}
}

// ActiveSetting returns the named setting when present and active, nil
// otherwise. Absence is not an error.
func (r *FeatureSettingRepository) ActiveSetting(ctx context.Context, name string) (*models.FeatureSetting, error) {
	result, err := r.settingRepo.Read(ctx, bson.M{"featureName": name, "isActive": true})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// ActiveExperiment returns the named experiment only when active and
// inside its date window at now.
func (r *FeatureSettingRepository) ActiveExperiment(ctx context.Context, code string, now time.Time) (*models.ExperimentSetting, error) {
	result, err := r.experimentRepo.Read(ctx, bson.M{
		"code":      code,
		"isActive":  true,
		"startDate": bson.M{"$lte": now},
		"endDate":   bson.M{"$gte": now},
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// decodeParams unmarshals raw parameters into out and validates the
// result. Settings with broken parameters are treated as absent so a bad
// config push degrades to defaults instead of failing the pipeline.
func decodeParams(ctx context.Context, name string, raw bson.Raw, out interface{}) bool {
	if raw == nil {
		return false
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		logger.Error(ctx, "FeatureSetting : %s parameters unmarshal failed %v", name, err)
		return false
	}
	if err := validate.Struct(out); err != nil {
		logger.Error(ctx, "FeatureSetting : %s parameters invalid %v", name, err)
		return false
	}
	return true
}

func (r *FeatureSettingRepository) AffordabilityThreshold(ctx context.Context) (*models.AffordabilityThresholdParams, error) {
	setting, err := r.ActiveSetting(ctx, consts.SettingCreditLimitRejectAffordability)
	if err != nil || setting == nil {
		return nil, err
	}
	var params models.AffordabilityThresholdParams
	if !decodeParams(ctx, setting.FeatureName, setting.Parameters, &params) {
		return nil, nil
	}
	return &params, nil
}

// ExperimentThreshold returns the affordability threshold recorded by
// the active scoring experiment, nil when no experiment is running.
func (r *FeatureSettingRepository) ExperimentThreshold(ctx context.Context) (*int64, error) {
	experiment, err := r.ActiveExperiment(ctx, consts.SettingAffordabilityExperiment, time.Now())
	if err != nil || experiment == nil {
		return nil, err
	}
	var params models.AffordabilityExperimentParams
	if !decodeParams(ctx, experiment.Code, experiment.Parameters, &params) {
		return nil, nil
	}
	return &params.Threshold, nil
}

// AdjustmentFactors returns the configured bands, or the hardcoded
// fallback bands when the setting is absent or broken.
func (r *FeatureSettingRepository) AdjustmentFactors(ctx context.Context) (models.LimitAdjustmentFactorParams, error) {
	fallback := models.LimitAdjustmentFactorParams{
		HighPGood:   models.AdjustmentBand{MinPGood: consts.AdjustmentHighMinPGood, Factor: consts.AdjustmentHighFactor},
		MediumPGood: models.AdjustmentBand{MinPGood: consts.AdjustmentMediumMinPGood, Factor: consts.AdjustmentMediumFactor},
		LowPGood:    models.AdjustmentBand{Factor: consts.AdjustmentLowFactor},
	}
	setting, err := r.ActiveSetting(ctx, consts.SettingLimitAdjustmentFactor)
	if err != nil {
		return fallback, err
	}
	if setting == nil {
		return fallback, nil
	}
	var params models.LimitAdjustmentFactorParams
	if !decodeParams(ctx, setting.FeatureName, setting.Parameters, &params) {
		return fallback, nil
	}
	return params, nil
}

func (r *FeatureSettingRepository) RoundingDownFloor(ctx context.Context) (*models.RoundingDownValueParams, error) {
	setting, err := r.ActiveSetting(ctx, consts.SettingRoundingDownValue)
	if err != nil || setting == nil {
		return nil, err
	}
	var params models.RoundingDownValueParams
	if !decodeParams(ctx, setting.FeatureName, setting.Parameters, &params) {
		return nil, nil
	}
	return &params, nil
}

func (r *FeatureSettingRepository) EntryLevelLimit(ctx context.Context) (*models.EntryLevelLimitParams, error) {
	setting, err := r.ActiveSetting(ctx, consts.SettingEntryLevelLimit)
	if err != nil || setting == nil {
		return nil, err
	}
	var params models.EntryLevelLimitParams
	if !decodeParams(ctx, setting.FeatureName, setting.Parameters, &params) {
		return nil, nil
	}
	return &params, nil
}

func (r *FeatureSettingRepository) LBSBypass(ctx context.Context) (*models.LBSBypassParams, error) {
	setting, err := r.ActiveSetting(ctx, consts.SettingLBS130Bypass)
	if err != nil || setting == nil {
		return nil, err
	}
	var params models.LBSBypassParams
	if !decodeParams(ctx, setting.FeatureName, setting.Parameters, &params) {
		return nil, nil
	}
	return &params, nil
}

func (r *FeatureSettingRepository) Lannister(ctx context.Context, now time.Time) (*models.LannisterParams, error) {
	experiment, err := r.ActiveExperiment(ctx, consts.SettingLannisterExperiment, now)
	if err != nil || experiment == nil {
		return nil, err
	}
	var params models.LannisterParams
	if !decodeParams(ctx, experiment.Code, experiment.Parameters, &params) {
		return nil, nil
	}
	return &params, nil
}

// LeverageBankStatement always returns usable parameters; zero-valued
// fields from the stored document get the documented defaults.
func (r *FeatureSettingRepository) LeverageBankStatement(ctx context.Context) (models.LeverageBankStatementParams, error) {
	params := models.LeverageBankStatementParams{
		Multiplier:        consts.LBSDefaultMultiplier,
		MinRejectionLimit: consts.LBSDefaultMinRejectionLimit,
		LimitCap:          consts.LBSDefaultLimitCap,
	}
	setting, err := r.ActiveSetting(ctx, consts.SettingLeverageBankStatement)
	if err != nil {
		return params, err
	}
	if setting == nil {
		return params, nil
	}
	var stored models.LeverageBankStatementParams
	if !decodeParams(ctx, setting.FeatureName, setting.Parameters, &stored) {
		return params, nil
	}
	if stored.Multiplier > 0 {
		params.Multiplier = stored.Multiplier
	}
	if stored.MinRejectionLimit > 0 {
		params.MinRejectionLimit = stored.MinRejectionLimit
	}
	if stored.LimitCap > 0 {
		params.LimitCap = stored.LimitCap
	}
	return params, nil
}

func (r *FeatureSettingRepository) PartnershipLeadgen(ctx context.Context) (*models.PartnershipLeadgenParams, error) {
	setting, err := r.ActiveSetting(ctx, consts.SettingPartnershipLeadgen)
	if err != nil || setting == nil {
		return nil, err
	}
	var params models.PartnershipLeadgenParams
	if !decodeParams(ctx, setting.FeatureName, setting.Parameters, &params) {
		return nil, nil
	}
	return &params, nil
}

func (r *FeatureSettingRepository) ShopeeWhitelist(ctx context.Context) (*models.ShopeeWhitelistParams, error) {
	setting, err := r.ActiveSetting(ctx, consts.SettingShopeeWhitelist)
	if err != nil || setting == nil {
		return nil, err
	}
	var params models.ShopeeWhitelistParams
	if !decodeParams(ctx, setting.FeatureName, setting.Parameters, &params) {
		return nil, nil
	}
	return &params, nil
}

func (r *FeatureSettingRepository) TokoscoreRevival(ctx context.Context) (*models.TokoscoreRevivalParams, error) {
	setting, err := r.ActiveSetting(ctx, consts.SettingTokoscoreRevival)
	if err != nil || setting == nil {
		return nil, err
	}
	var params models.TokoscoreRevivalParams
	if !decodeParams(ctx, setting.FeatureName, setting.Parameters, &params) {
		return nil, nil
	}
	return &params, nil
}

func (r *FeatureSettingRepository) OfflineActivation(ctx context.Context) (*models.OfflineActivationParams, error) {
	setting, err := r.ActiveSetting(ctx, consts.SettingOfflineActivation)
	if err != nil || setting == nil {
		return nil, err
	}
	var params models.OfflineActivationParams
	if !decodeParams(ctx, setting.FeatureName, setting.Parameters, &params) {
		return nil, nil
	}
	return &params, nil
}

// IsSettingActive is the boolean shortcut for settings used as pure
// toggles (high risk, orion).
func (r *FeatureSettingRepository) IsSettingActive(ctx context.Context, name string) (bool, error) {
	setting, err := r.ActiveSetting(ctx, name)
	if err != nil {
		return false, err
	}
	return setting != nil, nil
}

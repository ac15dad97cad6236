package services

import (
	"context"
	"fmt"
	"time"

	"globe/dodrio_credit_limit/internal/pkg/consts"
	"globe/dodrio_credit_limit/internal/pkg/logger"
	"globe/dodrio_credit_limit/internal/pkg/models"
)

type ChannelingConfigRepo interface {
	ConfigByLender(ctx context.Context, lenderCode string) (*models.ChannelingConfig, error)
}

// RACResult is the checker verdict. Version echoes the config version the
// verdict was produced against.
type RACResult struct {
	Passed  bool
	Reason  string
	Version int
}

type RACService struct {
	configRepo ChannelingConfigRepo
	now        func() time.Time
}

func NewRACService(configRepo ChannelingConfigRepo) *RACService {
	return &RACService{
		configRepo: configRepo,
		now:        time.Now,
	}
}

// CheckApplication validates the borrower-level criteria in order,
// returning on the first failure. The reason strings are asserted on
// verbatim by downstream consumers.
func (s *RACService) CheckApplication(ctx context.Context, application *models.Application, lenderCode string) (RACResult, error) {
	config, err := s.configRepo.ConfigByLender(ctx, lenderCode)
	if err != nil {
		return RACResult{}, err
	}
	if config == nil {
		return RACResult{Reason: consts.RACNotSet}, nil
	}

	result := RACResult{Version: config.Version}
	rac := config.RAC

	if rac.MotherMaidenNameCheck && application.MotherMaidenName == "" {
		result.Reason = consts.RACMotherMaidenNameNotSet
		return result, nil
	}

	if rac.MinAge > 0 || rac.MaxAge > 0 {
		if application.DOB == nil {
			result.Reason = fmt.Sprintf(consts.RACCannotPassMinAge, rac.MinAge)
			return result, nil
		}
		age := yearsSince(*application.DOB, s.now())
		if rac.MinAge > 0 && age < rac.MinAge {
			result.Reason = fmt.Sprintf(consts.RACCannotPassMinAge, rac.MinAge)
			return result, nil
		}
		// Max age is exclusive: a borrower turning the limit today fails.
		if rac.MaxAge > 0 && age >= rac.MaxAge {
			result.Reason = fmt.Sprintf(consts.RACCannotPassMaxAge, rac.MaxAge)
			return result, nil
		}
	}

	if len(rac.JobTypes) > 0 && !containsString(rac.JobTypes, application.JobType) {
		result.Reason = fmt.Sprintf(consts.RACJobTypeNotAllowed, application.JobType)
		return result, nil
	}

	if rac.MinWorktimeMonths > 0 {
		if application.JobStart == nil || monthsSince(*application.JobStart, s.now()) < rac.MinWorktimeMonths {
			result.Reason = fmt.Sprintf(consts.RACCannotPassMinWorktime, rac.MinWorktimeMonths)
			return result, nil
		}
	}

	if rac.MinIncome > 0 && int64(application.MonthlyIncome) < rac.MinIncome {
		result.Reason = fmt.Sprintf(consts.RACCannotPassMinIncome, rac.MinIncome)
		return result, nil
	}

	if rac.IncomeProofRequired && !application.HasIncomeProof {
		result.Reason = consts.RACIncomeProofNotFound
		return result, nil
	}

	if !application.HasKTPImage || !application.HasSelfieImage {
		result.Reason = consts.RACKTPOrSelfieNotFound
		return result, nil
	}

	if rac.DukcapilCheckRequired && !(application.DukcapilNamePass && application.DukcapilBirthdayPass) {
		result.Reason = consts.RACDukcapilNotPassed
		return result, nil
	}

	result.Passed = true
	return result, nil
}

// CheckLoan validates the loan-level criteria after the borrower-level
// checks have passed.
func (s *RACService) CheckLoan(ctx context.Context, application *models.Application, loan models.ChannelingLoan, lenderCode string) (RACResult, error) {
	config, err := s.configRepo.ConfigByLender(ctx, lenderCode)
	if err != nil {
		return RACResult{}, err
	}
	if config == nil {
		return RACResult{Reason: consts.RACNotSet}, nil
	}

	result := RACResult{Version: config.Version}
	rac := config.RAC

	if rac.MinLoan > 0 && loan.LoanAmount < rac.MinLoan {
		result.Reason = fmt.Sprintf(consts.RACCannotPassMinLoan, rac.MinLoan)
		return result, nil
	}
	if rac.MaxLoan > 0 && loan.LoanAmount > rac.MaxLoan {
		result.Reason = fmt.Sprintf(consts.RACCannotPassMaxLoan, rac.MaxLoan)
		return result, nil
	}

	if rac.TenorType != "" && loan.TenorType != rac.TenorType {
		result.Reason = fmt.Sprintf(consts.RACTenorTypeNotMatched, loan.TenorType)
		return result, nil
	}
	if rac.MinTenor > 0 && loan.Tenor < rac.MinTenor {
		result.Reason = fmt.Sprintf(consts.RACCannotPassMinTenor, rac.MinTenor)
		return result, nil
	}
	if rac.MaxTenor > 0 && loan.Tenor > rac.MaxTenor {
		result.Reason = fmt.Sprintf(consts.RACCannotPassMaxTenor, rac.MaxTenor)
		return result, nil
	}

	ceiling := rac.MaxRatio
	if ceiling <= 0 {
		ceiling = consts.InstallmentRatioCeiling
	}
	if application.MonthlyIncome > 0 {
		ratio := float64(loan.InstallmentAmount) / application.MonthlyIncome
		if ratio > ceiling {
			result.Reason = fmt.Sprintf(consts.RACCannotPassRatio, ceiling)
			return result, nil
		}
	}

	if config.DueDate.IsExclusionActive {
		for _, day := range config.DueDate.ExclusionDays {
			if loan.DueDate.Day() == day {
				result.Reason = fmt.Sprintf(consts.RACDueDateExcluded, day)
				return result, nil
			}
		}
	}

	if len(rac.TransactionMethods) > 0 && !containsInt(rac.TransactionMethods, loan.TransactionMethod) {
		result.Reason = fmt.Sprintf(consts.RACTransactionNotAllowed, loan.TransactionMethod)
		return result, nil
	}

	if rac.RejectMotherEqualsName && application.MotherMaidenName != "" && application.MotherMaidenName == application.FullName {
		result.Reason = consts.RACMotherNameEqualsName
		return result, nil
	}

	if application.Address == "" || application.Zipcode == "" {
		result.Reason = consts.RACAddressIncomplete
		return result, nil
	}

	logger.Debug(ctx, "RAC : loan for application %d passed lender %s criteria", loan.ApplicationID, lenderCode)
	result.Passed = true
	return result, nil
}

func yearsSince(from, now time.Time) int {
	years := now.Year() - from.Year()
	if now.Month() < from.Month() || (now.Month() == from.Month() && now.Day() < from.Day()) {
		years--
	}
	return years
}

func monthsSince(from, now time.Time) int {
	months := (now.Year()-from.Year())*12 + int(now.Month()) - int(from.Month())
	if now.Day() < from.Day() {
		months--
	}
	return months
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func containsInt(values []int, target int) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

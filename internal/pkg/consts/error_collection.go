package consts

import "globe/dodrio_credit_limit/internal/pkg/models"

var (
	ErrorApplicationNotFound = &models.CustomError{
		Code:    "DODRIO2_CREDIT_LIMIT_INTERNAL_ERROR_APPLICATION_NOT_FOUND",
		Message: "Application not found",
	}
	ErrorAffordabilityNotFound = &models.CustomError{
		Code:    "DODRIO2_CREDIT_LIMIT_INTERNAL_ERROR_AFFORDABILITY_NOT_FOUND",
		Message: "No affordability history for application",
	}
	ErrorCreditModelNotFound = &models.CustomError{
		Code:    "DODRIO2_CREDIT_LIMIT_INTERNAL_ERROR_CREDIT_MODEL_NOT_FOUND",
		Message: "No credit model result for application",
	}
	ErrorNoMatchingMatrix = &models.CustomError{
		Code:    "DODRIO2_CREDIT_LIMIT_VALIDATION_NO_MATCHING_MATRIX",
		Message: "No credit matrix matches the application parameters",
	}
	ErrorInvalidNIK = &models.CustomError{
		Code:    "DODRIO2_CREDIT_LIMIT_VALIDATION_NIK_INVALID",
		Message: "NIK failed checksum validation",
	}
	ErrorNotAffordable = &models.CustomError{
		Code:    "DODRIO2_CREDIT_LIMIT_VALIDATION_NOT_AFFORDABLE",
		Message: "Affordability value below threshold",
	}
	ErrorAccountLimitConflict = &models.CustomError{
		Code:    "DODRIO2_CREDIT_LIMIT_INTERNAL_ERROR_ACCOUNT_LIMIT_CONFLICT",
		Message: "Account limit update lost the version race after retries",
	}
	ErrorInsufficientAvailableLimit = &models.CustomError{
		Code:    "DODRIO2_CREDIT_LIMIT_VALIDATION_INSUFFICIENT_AVAILABLE_LIMIT",
		Message: "Available limit is lower than the requested amount",
	}
	ErrorMalformedEvent = &models.CustomError{
		Code:    "DODRIO2_CREDIT_LIMIT_VALIDATION_MALFORMED_EVENT",
		Message: "Application status event could not be decoded",
	}
	ErrorSettingParametersInvalid = &models.CustomError{
		Code:    "DODRIO2_CREDIT_LIMIT_INTERNAL_ERROR_SETTING_PARAMETERS_INVALID",
		Message: "Feature setting parameters failed validation",
	}
)

package common

import "time"

// ConvertUTCToWIB converts a UTC time to Western Indonesia Time (UTC+7).
func ConvertUTCToWIB(utcTime time.Time) time.Time {
	loc := time.FixedZone("Asia/Jakarta", 7*60*60)
	return utcTime.In(loc)
}

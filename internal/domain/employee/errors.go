package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmailExists           = errors.New("email already registered")
	ErrInvalidLeaveQuota     = errors.New("invalid leave quota")
	ErrInvalidUsedDays       = errors.New("invalid used days value")
	ErrUsedDaysBelowApproved = errors.New("used days below approved leave days")
	ErrUsedDaysAboveQuota    = errors.New("used days above leave quota")
	ErrNoSalary              = errors.New("employee has no salary configured")
	ErrPhotoRequired         = errors.New("no photo uploaded")
	ErrInvalidPhotoType      = errors.New("photo must be a jpg, jpeg, png or webp file")
)

package employeeprofile

import (
	profileerrors "go-hrms/internal/employeeprofile/errors"
	"go-hrms/internal/shared/dbutil"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if dbutil.IsNotFound(err) {
		return profileerrors.ErrProfileNotFound
	}
	if constraint, ok := dbutil.UniqueViolation(err); ok {
		switch constraint {
		case constraintWorkEmail:
			return profileerrors.ErrWorkEmailExists
		case constraintNationalID:
			return profileerrors.ErrNationalIDExists
		default:
			return profileerrors.ErrProfileExists
		}
	}
	return err
}

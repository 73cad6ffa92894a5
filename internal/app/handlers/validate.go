package handlers

import "github.com/odpi/itinfra/internal/errors"

// ValidateUserID rejects an empty caller identity.
func ValidateUserID(userID, op string) error {
	if userID == "" {
		return errors.NullParameter("userId", op)
	}
	return nil
}

// ValidateGUID rejects an empty unique identifier.
func ValidateGUID(guid, param, op string) error {
	if guid == "" {
		return errors.NullParameter(param, op)
	}
	return nil
}

// ValidateName rejects an empty name parameter.
func ValidateName(name, param, op string) error {
	if name == "" {
		return errors.NullParameter(param, op)
	}
	return nil
}

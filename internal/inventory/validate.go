package inventory

import (
	"errors"

	"github.com/vbonduro/labinv/internal/domain"
)

func (s *SyncStore) validateItem(draft domain.ItemDraft) (domain.ItemFields, error) {
	fields, err := draft.Normalize()
	if err != nil {
		return domain.ItemFields{}, toValidationError(err)
	}
	if _, ok := s.Location(fields.LocationID); !ok {
		return domain.ItemFields{}, &ValidationError{Field: "location_id", Message: "does not match any location"}
	}
	return fields, nil
}

func validateLocation(draft domain.LocationDraft) (domain.LocationFields, error) {
	fields, err := draft.Normalize()
	if err != nil {
		return domain.LocationFields{}, toValidationError(err)
	}
	return fields, nil
}

func toValidationError(err error) error {
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		return &ValidationError{Field: fe.Field, Message: fe.Reason}
	}
	return &ValidationError{Message: err.Error()}
}

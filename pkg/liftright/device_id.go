package liftright

import (
	"fmt"

	z "github.com/Oudwins/zog"
	"github.com/google/uuid"
)

var deviceIDSchema = z.String().Min(1).Required()

// ParseDeviceID accepts every textual uuid form uuid.Parse does, including the
// 32 hex digit form without hyphens. Failures wrap ErrValidation.
func ParseDeviceID(raw string) (uuid.UUID, error) {
	if issues := deviceIDSchema.Validate(&raw); issues != nil {
		return uuid.Nil, wrap("parse device_id", ErrValidation, fmt.Errorf("device_id is required"))
	}

	deviceID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, wrap("parse device_id", ErrValidation, fmt.Errorf("device_id %q is not a uuid: %w", raw, err))
	}
	return deviceID, nil
}

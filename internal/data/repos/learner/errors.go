package learner

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/data/schema"
)

// translateWriteErr turns storage-level constraint failures into schema rejections.
func translateWriteErr(document string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return schema.Reject(document, err)
	}
	return err
}

func notBefore(t, floor time.Time) time.Time {
	if t.Before(floor) {
		return floor
	}
	return t
}

package mapper

import (
	"time"

	"gorm.io/gorm"
)

func softDeleteToPtr(d gorm.DeletedAt) *time.Time {
	if d.Valid {
		t := d.Time
		return &t
	}
	return nil
}

func ptrToSoftDelete(t *time.Time) gorm.DeletedAt {
	if t != nil {
		return gorm.DeletedAt{Time: *t, Valid: true}
	}
	return gorm.DeletedAt{}
}

func updatedAtToPtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t
	return &u
}

func ptrToUpdatedAt(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return time.Time{}
}

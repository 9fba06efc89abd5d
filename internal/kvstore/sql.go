package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/FuadAliah/celtis-pos/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLClient is the part of pkg/db.Client the SQL medium needs.
type SQLClient interface {
	DB() *gorm.DB
	Ping(ctx context.Context) error
}

// SQL stores slots as rows of kv_entries (sqlite or postgres).
type SQL struct {
	client SQLClient
}

// NewSQL binds the medium to an open database client.
func NewSQL(client SQLClient) *SQL {
	return &SQL{client: client}
}

func (s *SQL) db(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return s.client.DB()
	}
	return s.client.DB().WithContext(ctx)
}

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.KVEntry
	err := s.db(ctx).Where("entry_key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	entry := models.KVEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
		}).
		Create(&entry).
		Error
}

func (s *SQL) Delete(ctx context.Context, key string) error {
	return s.db(ctx).Where("entry_key = ?", key).Delete(&models.KVEntry{}).Error
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

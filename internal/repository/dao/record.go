package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrRecordExists   = errors.New("record already exists")
	ErrRecordNotFound = errors.New("record not found")
)

// Record is one row of the partitioned key-value store. Every entity the
// service persists lives in this table, addressed by (table, partition key,
// row key), with its fields serialized as a JSON string bag.
type Record struct {
	ID           uint   `gorm:"primaryKey"`
	Table        string `gorm:"column:table_name;size:64;not null;uniqueIndex:idx_records_key,priority:1"`
	PartitionKey string `gorm:"size:256;not null;uniqueIndex:idx_records_key,priority:2"`
	RowKey       string `gorm:"size:256;not null;uniqueIndex:idx_records_key,priority:3"`
	Fields       string `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Record) TableName() string {
	return "records"
}

// Entity is a decoded record as seen by the repository layer.
type Entity struct {
	PartitionKey string
	RowKey       string
	Fields       map[string]string
}

type RecordDAO struct {
	db *gorm.DB
}

func NewRecordDAO(db *gorm.DB) *RecordDAO {
	return &RecordDAO{
		db: db,
	}
}

func (d *RecordDAO) Insert(ctx context.Context, table, partitionKey, rowKey string, fields map[string]string) error {
	encoded, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	result := d.db.WithContext(ctx).Create(&Record{
		Table:        table,
		PartitionKey: partitionKey,
		RowKey:       rowKey,
		Fields:       string(encoded),
	})
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrRecordExists
		}

		return fmt.Errorf("d.db.Create -> %w", result.Error)
	}

	return nil
}

func (d *RecordDAO) Get(ctx context.Context, table, partitionKey, rowKey string) (Entity, error) {
	var rec Record
	err := d.db.WithContext(ctx).
		Where("table_name = ? AND partition_key = ? AND row_key = ?", table, partitionKey, rowKey).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Entity{}, ErrRecordNotFound
		}

		return Entity{}, fmt.Errorf("d.db.First -> %w", err)
	}

	return decode(rec)
}

func (d *RecordDAO) ListPartition(ctx context.Context, table, partitionKey string) ([]Entity, error) {
	var recs []Record
	err := d.db.WithContext(ctx).
		Where("table_name = ? AND partition_key = ?", table, partitionKey).
		Order("row_key").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("d.db.Find -> %w", err)
	}

	return decodeAll(recs)
}

// Scan walks every row of a table and keeps those matching the predicate.
// This is a linear scan; the storage model carries no secondary indexes.
func (d *RecordDAO) Scan(ctx context.Context, table string, match func(Entity) bool) ([]Entity, error) {
	var recs []Record
	err := d.db.WithContext(ctx).
		Where("table_name = ?", table).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("d.db.Find -> %w", err)
	}

	entities, err := decodeAll(recs)
	if err != nil {
		return nil, err
	}

	var out []Entity
	for _, e := range entities {
		if match(e) {
			out = append(out, e)
		}
	}

	return out, nil
}

// Merge applies updates over the record's existing field bag and saves it.
func (d *RecordDAO) Merge(ctx context.Context, table, partitionKey, rowKey string, updates map[string]string) (Entity, error) {
	existing, err := d.Get(ctx, table, partitionKey, rowKey)
	if err != nil {
		return Entity{}, err
	}

	for k, v := range updates {
		existing.Fields[k] = v
	}

	encoded, err := json.Marshal(existing.Fields)
	if err != nil {
		return Entity{}, fmt.Errorf("json.Marshal -> %w", err)
	}

	err = d.db.WithContext(ctx).Model(&Record{}).
		Where("table_name = ? AND partition_key = ? AND row_key = ?", table, partitionKey, rowKey).
		Update("fields", string(encoded)).Error
	if err != nil {
		return Entity{}, fmt.Errorf("d.db.Update -> %w", err)
	}

	return existing, nil
}

func (d *RecordDAO) Delete(ctx context.Context, table, partitionKey, rowKey string) error {
	result := d.db.WithContext(ctx).
		Where("table_name = ? AND partition_key = ? AND row_key = ?", table, partitionKey, rowKey).
		Delete(&Record{})
	if result.Error != nil {
		return fmt.Errorf("d.db.Delete -> %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func decode(rec Record) (Entity, error) {
	fields := map[string]string{}
	if err := json.Unmarshal([]byte(rec.Fields), &fields); err != nil {
		return Entity{}, fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return Entity{
		PartitionKey: rec.PartitionKey,
		RowKey:       rec.RowKey,
		Fields:       fields,
	}, nil
}

func decodeAll(recs []Record) ([]Entity, error) {
	entities := make([]Entity, 0, len(recs))
	for _, rec := range recs {
		e, err := decode(rec)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}

	return entities, nil
}

package repository

import (
	"context"

	"github.com/gsc-community/events-api/internal/repository/dao"
)

var (
	ErrRecordExists   = dao.ErrRecordExists
	ErrRecordNotFound = dao.ErrRecordNotFound
)

// Logical tables of the record store. Each mirrors one table of the
// original deployment's storage account.
const (
	TableEvents        = "Events"
	TableRegistrations = "EventRegistrations"
	TableRegEmails     = "EventRegistrationEmails"
	TableRegUsers      = "EventRegistrationUsers"
	TableDemographics  = "EventDemographics"
	TableBadges        = "EventBadges"
	TableVolunteers    = "EventVolunteers"
	TableApplications  = "ChapterApplications"
)

// RecordStore is the partitioned key-value table contract every repository
// is built on: create, point lookup, partition list, predicate scan,
// merge-update and delete, addressed by (table, partition key, row key).
type RecordStore interface {
	Insert(ctx context.Context, table, partitionKey, rowKey string, fields map[string]string) error
	Get(ctx context.Context, table, partitionKey, rowKey string) (dao.Entity, error)
	ListPartition(ctx context.Context, table, partitionKey string) ([]dao.Entity, error)
	Scan(ctx context.Context, table string, match func(dao.Entity) bool) ([]dao.Entity, error)
	Merge(ctx context.Context, table, partitionKey, rowKey string, updates map[string]string) (dao.Entity, error)
	Delete(ctx context.Context, table, partitionKey, rowKey string) error
}

package lootitem

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/KirkDiggler/rpg-loot/internal/entities/loot"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
	"github.com/KirkDiggler/rpg-loot/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-loot/internal/pkg/idgen"
)

// Supported SQL drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// itemRecord is the row shape of loot_items
type itemRecord struct {
	ID                string         `gorm:"column:id;primaryKey"`
	Hash              string         `gorm:"column:hash"`
	Name              string         `gorm:"column:name"`
	ItemType          string         `gorm:"column:item_type"`
	SubType           string         `gorm:"column:sub_type"`
	Tier              string         `gorm:"column:tier"`
	Description       string         `gorm:"column:description"`
	Stats             datatypes.JSON `gorm:"column:stats"`
	MagicalProperties datatypes.JSON `gorm:"column:magical_properties"`
	Lore              string         `gorm:"column:lore"`
	SetName           string         `gorm:"column:set_name"`
	Rarity            int            `gorm:"column:rarity"`
	CreatedAt         time.Time      `gorm:"column:created_at"`
}

func (itemRecord) TableName() string {
	return "loot_items"
}

// OpenDB connects to the database and applies the embedded migrations
func OpenDB(ctx context.Context, driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, errors.InvalidArgumentf("unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, storageError(err, "failed to open database")
	}

	if err := Migrate(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies any pending migrations
func Migrate(ctx context.Context, db *gorm.DB, driver string) error {
	dialect := goose.DialectSQLite3
	if driver == DriverPostgres {
		dialect = goose.DialectPostgres
	}

	sqlDB, err := db.DB()
	if err != nil {
		return storageError(err, "failed to get database handle")
	}
	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "failed to load migrations")
	}

	provider, err := goose.NewProvider(dialect, sqlDB, migrations, goose.WithSlog(slog.Default()))
	if err != nil {
		return errors.Wrap(err, "failed to create migration provider")
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return storageError(err, "failed to apply migrations")
	}
	for _, result := range results {
		slog.InfoContext(ctx, "applied migration",
			"version", result.Source.Version,
			"duration", result.Duration)
	}
	return nil
}

// SQLConfig contains configuration for the SQL loot item repository
type SQLConfig struct {
	DB          *gorm.DB
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate validates the SQLConfig
func (cfg *SQLConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.DB == nil {
		vb.RequiredField("DB")
	}
	if cfg.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if cfg.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type sqlRepository struct {
	db    *gorm.DB
	idGen idgen.Generator
	clock clock.Clock
}

var _ Repository = (*sqlRepository)(nil)

// NewSQL creates a gorm-backed loot item repository. The schema must
// already be migrated; OpenDB does that.
func NewSQL(cfg *SQLConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &sqlRepository{
		db:    cfg.DB,
		idGen: cfg.IDGenerator,
		clock: cfg.Clock,
	}, nil
}

// InsertIfAbsent relies on the unique hash column: a conflicting insert
// affects no rows and the existing record is returned instead.
func (r *sqlRepository) InsertIfAbsent(ctx context.Context, input InsertIfAbsentInput) (*InsertIfAbsentOutput, error) {
	if err := validateInsert(input); err != nil {
		return nil, err
	}

	stored := &loot.StoredItem{
		LootItem:  input.Item,
		ID:        r.idGen.Generate(),
		Hash:      input.Hash,
		CreatedAt: r.clock.Now().UTC(),
	}
	record, err := toRecord(stored)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hash"}},
			DoNothing: true,
		}).
		Create(record)
	if result.Error != nil {
		return nil, storageError(result.Error, "failed to store item")
	}

	if result.RowsAffected == 0 {
		existing, err := r.GetByHash(ctx, GetByHashInput{Hash: input.Hash})
		if err != nil {
			return nil, err
		}
		return &InsertIfAbsentOutput{Item: existing.Item, Created: false}, nil
	}

	slog.DebugContext(ctx, "stored loot item",
		"item_id", stored.ID,
		"hash", stored.Hash,
		"tier", stored.Tier)

	return &InsertIfAbsentOutput{Item: stored, Created: true}, nil
}

func (r *sqlRepository) GetByID(ctx context.Context, input GetByIDInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}
	return r.first(ctx, "id = ?", input.ID)
}

func (r *sqlRepository) GetByHash(ctx context.Context, input GetByHashInput) (*GetOutput, error) {
	if input.Hash == "" {
		return nil, errors.InvalidArgument(errHashEmpty)
	}
	return r.first(ctx, "hash = ?", input.Hash)
}

func (r *sqlRepository) first(ctx context.Context, query string, arg string) (*GetOutput, error) {
	var records []itemRecord
	if err := r.db.WithContext(ctx).Where(query, arg).Limit(1).Find(&records).Error; err != nil {
		return nil, storageError(err, "failed to get item")
	}
	if len(records) == 0 {
		return nil, errors.NotFoundf("item %s not found", arg)
	}

	item, err := fromRecord(&records[0])
	if err != nil {
		return nil, err
	}
	return &GetOutput{Item: item}, nil
}

func (r *sqlRepository) ListByTier(ctx context.Context, input ListByTierInput) (*ListOutput, error) {
	if err := validateTier(input.Tier); err != nil {
		return nil, err
	}
	if err := validateLimit(input.Limit); err != nil {
		return nil, err
	}
	return r.list(ctx, r.db.Where("tier = ?", string(input.Tier)), input.Limit)
}

func (r *sqlRepository) ListBySetName(ctx context.Context, input ListBySetNameInput) (*ListOutput, error) {
	if input.SetName == "" {
		return nil, errors.InvalidArgument(errSetNameEmpty)
	}
	if err := validateLimit(input.Limit); err != nil {
		return nil, err
	}
	return r.list(ctx, r.db.Where("set_name = ?", input.SetName), input.Limit)
}

func (r *sqlRepository) ListAll(ctx context.Context, input ListAllInput) (*ListOutput, error) {
	if err := validateLimit(input.Limit); err != nil {
		return nil, err
	}
	return r.list(ctx, r.db, input.Limit)
}

func (r *sqlRepository) list(ctx context.Context, query *gorm.DB, limit int) (*ListOutput, error) {
	query = query.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []itemRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, storageError(err, "failed to list items")
	}

	items := make([]*loot.StoredItem, 0, len(records))
	for i := range records {
		item, err := fromRecord(&records[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &ListOutput{Items: items}, nil
}

func (r *sqlRepository) CountAll(ctx context.Context, _ CountAllInput) (*CountOutput, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&itemRecord{}).Count(&count).Error; err != nil {
		return nil, storageError(err, "failed to count items")
	}
	return &CountOutput{Count: count}, nil
}

func (r *sqlRepository) CountByTier(ctx context.Context, input CountByTierInput) (*CountOutput, error) {
	if err := validateTier(input.Tier); err != nil {
		return nil, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&itemRecord{}).Where("tier = ?", string(input.Tier)).Count(&count).Error
	if err != nil {
		return nil, storageError(err, "failed to count items")
	}
	return &CountOutput{Count: count}, nil
}

func toRecord(item *loot.StoredItem) (*itemRecord, error) {
	stats, err := json.Marshal(item.Stats)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal stats")
	}
	props := item.MagicalProperties
	if props == nil {
		props = []loot.MagicalProperty{}
	}
	magical, err := json.Marshal(props)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal magical properties")
	}

	return &itemRecord{
		ID:                item.ID,
		Hash:              item.Hash,
		Name:              item.Name,
		ItemType:          string(item.Type),
		SubType:           item.SubType,
		Tier:              string(item.Tier),
		Description:       item.Description,
		Stats:             datatypes.JSON(stats),
		MagicalProperties: datatypes.JSON(magical),
		Lore:              item.Lore,
		SetName:           item.SetName,
		Rarity:            item.Rarity,
		CreatedAt:         item.CreatedAt,
	}, nil
}

func fromRecord(record *itemRecord) (*loot.StoredItem, error) {
	var stats loot.StatBlock
	if err := json.Unmarshal(record.Stats, &stats); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal stats for item %s", record.ID)
	}
	var magical []loot.MagicalProperty
	if err := json.Unmarshal(record.MagicalProperties, &magical); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal magical properties for item %s", record.ID)
	}

	return &loot.StoredItem{
		LootItem: loot.LootItem{
			Name:              record.Name,
			Type:              loot.ItemType(record.ItemType),
			SubType:           record.SubType,
			Tier:              loot.Tier(record.Tier),
			Description:       record.Description,
			Stats:             stats,
			MagicalProperties: magical,
			Lore:              record.Lore,
			SetName:           record.SetName,
			Rarity:            record.Rarity,
		},
		ID:        record.ID,
		Hash:      record.Hash,
		CreatedAt: record.CreatedAt.UTC(),
	}, nil
}

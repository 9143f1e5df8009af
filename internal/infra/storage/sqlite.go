package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"numis_go/internal/domain"
	"numis_go/internal/importer"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage owns the persistent collection: coins, their images, and goals.
// It is the single source of truth for collection state; every read goes
// back to the database, there is no caching layer.
type Storage struct {
	db       *gorm.DB
	notifier domain.Notifier
}

// NewStorage opens (or creates) the SQLite database at path. An empty path
// falls back to the per-user application data directory.
func NewStorage(path string) (*Storage, error) {
	if path == "" {
		var err error
		path, err = defaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve DB path: %w", err)
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto Migration
	if err := db.AutoMigrate(&domain.Coin{}, &domain.CoinImage{}, &domain.Goal{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// SetNotifier registers a change-event sink. Mutations publish to it after
// they commit; a nil notifier disables publishing.
func (s *Storage) SetNotifier(n domain.Notifier) {
	s.notifier = n
}

func (s *Storage) notify(kind string, id uint) {
	if s.notifier != nil {
		s.notifier.CollectionChanged(domain.ChangeEvent{Kind: kind, ID: id})
	}
}

// defaultDBPath resolves the database file path based on OS
func defaultDBPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "NumisGo", "data", "coins.db"), nil
}

// ======================================================================================
// Coin Operations
// ======================================================================================

// CreateCoin validates, persists and returns the id of a new coin. Any
// images attached to the coin are written in the same transaction, so a
// failed create leaves nothing behind.
func (s *Storage) CreateCoin(coin domain.Coin) (uint, error) {
	if err := domain.NormalizeCoin(&coin); err != nil {
		return 0, err
	}
	for i := range coin.Images {
		if err := domain.NormalizeImage(&coin.Images[i]); err != nil {
			return 0, err
		}
	}

	coin.ID = 0
	if err := s.db.Create(&coin).Error; err != nil {
		return 0, domain.NewStorageError("create coin", err)
	}

	s.notify("coin_created", coin.ID)
	return coin.ID, nil
}

// GetAllCoins retrieves every coin in insertion order.
func (s *Storage) GetAllCoins() ([]domain.Coin, error) {
	var coins []domain.Coin
	if err := s.db.Order("id").Find(&coins).Error; err != nil {
		return nil, domain.NewStorageError("list coins", err)
	}
	return coins, nil
}

// GetCoin retrieves one coin by id, nil when it does not exist.
func (s *Storage) GetCoin(id uint) (*domain.Coin, error) {
	var coin domain.Coin
	err := s.db.First(&coin, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // Not found is not an error
	}
	if err != nil {
		return nil, domain.NewStorageError("get coin", err)
	}
	return &coin, nil
}

// UpdateCoin applies a partial patch to an existing coin. Only supplied
// fields change; the merged record is validated the same way as a create.
// Returns false when the id does not exist.
func (s *Storage) UpdateCoin(id uint, patch domain.CoinPatch) (bool, error) {
	var coin domain.Coin
	err := s.db.First(&coin, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, domain.NewStorageError("update coin", err)
	}

	patch.Apply(&coin)
	if err := domain.NormalizeCoin(&coin); err != nil {
		return false, err
	}

	if err := s.db.Save(&coin).Error; err != nil {
		return false, domain.NewStorageError("update coin", err)
	}

	s.notify("coin_updated", id)
	return true, nil
}

// DeleteCoin removes a coin and all of its images. Returns false when the
// id did not exist; deleting twice is harmless.
func (s *Storage) DeleteCoin(id uint) (bool, error) {
	deleted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("coin_id = ?", id).Delete(&domain.CoinImage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Coin{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, domain.NewStorageError("delete coin", err)
	}

	if deleted {
		s.notify("coin_deleted", id)
	}
	return deleted, nil
}

// ======================================================================================
// Image Operations
// ======================================================================================

// AddCoinImage attaches a photograph to an existing coin.
func (s *Storage) AddCoinImage(coinID uint, path, side string) (uint, error) {
	var coin domain.Coin
	err := s.db.First(&coin, coinID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, &domain.ReferentialError{Entity: "coin", ID: coinID}
	}
	if err != nil {
		return 0, domain.NewStorageError("add coin image", err)
	}

	img := domain.CoinImage{CoinID: coinID, ImagePath: path, Side: side}
	if err := domain.NormalizeImage(&img); err != nil {
		return 0, err
	}

	if err := s.db.Create(&img).Error; err != nil {
		return 0, domain.NewStorageError("add coin image", err)
	}

	s.notify("image_added", img.ID)
	return img.ID, nil
}

// GetCoinImages lists a coin's images in insertion order. An unknown coin
// id yields an empty list, mirroring the cascade invariant after deletes.
func (s *Storage) GetCoinImages(coinID uint) ([]domain.CoinImage, error) {
	var images []domain.CoinImage
	if err := s.db.Where("coin_id = ?", coinID).Order("id").Find(&images).Error; err != nil {
		return nil, domain.NewStorageError("list coin images", err)
	}
	return images, nil
}

// DeleteCoinImage removes a single image, false when the id did not exist.
func (s *Storage) DeleteCoinImage(id uint) (bool, error) {
	res := s.db.Delete(&domain.CoinImage{}, id)
	if res.Error != nil {
		return false, domain.NewStorageError("delete coin image", res.Error)
	}
	if res.RowsAffected > 0 {
		s.notify("image_removed", id)
	}
	return res.RowsAffected > 0, nil
}

// ======================================================================================
// Goal Operations
// ======================================================================================

// SaveGoals replaces the entire goal set with the supplied list. The UI
// resubmits every goal on each edit, so this is a full replace: goals not
// in the list are gone afterwards, and an empty list clears everything.
func (s *Storage) SaveGoals(goals []domain.Goal) error {
	for i := range goals {
		if err := domain.NormalizeGoal(&goals[i]); err != nil {
			return err
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM goals").Error; err != nil {
			return err
		}
		for i := range goals {
			goals[i].ID = 0
			if err := tx.Create(&goals[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.NewStorageError("save goals", err)
	}

	s.notify("goals_saved", 0)
	return nil
}

// GetGoals retrieves all collecting goals.
func (s *Storage) GetGoals() ([]domain.Goal, error) {
	var goals []domain.Goal
	if err := s.db.Order("id").Find(&goals).Error; err != nil {
		return nil, domain.NewStorageError("list goals", err)
	}
	return goals, nil
}

// ======================================================================================
// Bulk Import
// ======================================================================================

// ImportCoins normalizes and persists a batch of external rows. Rows fail
// independently: a bad row is recorded in the result and the batch moves
// on, and rows already created stay committed. Only a storage failure
// aborts the remainder.
func (s *Storage) ImportCoins(rows []importer.Row) (importer.Result, error) {
	var result importer.Result

	for i, row := range rows {
		coin, err := importer.NormalizeRow(row)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", importer.RowLabel(row, i), err))
			continue
		}

		if _, err := s.CreateCoin(coin); err != nil {
			if domain.IsStorage(err) {
				return result, err
			}
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", importer.RowLabel(row, i), err))
			continue
		}

		result.Imported++
	}

	return result, nil
}

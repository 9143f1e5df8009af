package app

import (
	"io"
	"log/slog"

	"numis_go/internal/domain"
	"numis_go/internal/importer"
	"numis_go/internal/infra"
	"numis_go/internal/infra/storage"
	"numis_go/internal/notify"
)

// Bootstrap orchestrates the application startup sequence and exposes the
// composed operations the desktop shell calls.
type Bootstrap struct {
	Config  *infra.Config
	Storage *storage.Storage
	Images  *infra.ImageStore
	Hub     *notify.Hub
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, DB,
// image store, change-notification hub).
func (b *Bootstrap) Initialize() error {
	cfg, err := infra.LoadConfig("configs/config.yaml")
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	store, err := storage.NewStorage(cfg.Database.Path)
	if err != nil {
		return err
	}
	b.Storage = store
	slog.Info("database initialized")

	images, err := infra.NewImageStore(cfg.Images.MaxSizePX)
	if err != nil {
		return err
	}
	b.Images = images

	b.Hub = notify.NewHub(logger)
	b.Storage.SetNotifier(b.Hub)
	slog.Info("change notifications ready")

	return nil
}

// AttachImage processes a photograph from the user's filesystem and links
// it to a coin. The coin is checked first so a bad id never leaves an
// orphaned file in the image directory.
func (b *Bootstrap) AttachImage(coinID uint, srcPath, side string) (uint, error) {
	coin, err := b.Storage.GetCoin(coinID)
	if err != nil {
		return 0, err
	}
	if coin == nil {
		return 0, &domain.ReferentialError{Entity: "coin", ID: coinID}
	}

	stored, err := b.Images.Ingest(srcPath, coinID, side)
	if err != nil {
		return 0, err
	}

	return b.Storage.AddCoinImage(coinID, stored, side)
}

// ImportCollection reads delimited rows and bulk-imports them, returning
// the per-row outcome for display.
func (b *Bootstrap) ImportCollection(r io.Reader) (importer.Result, error) {
	rows, err := importer.ReadRows(r)
	if err != nil {
		return importer.Result{}, err
	}

	result, err := b.Storage.ImportCoins(rows)
	slog.Info("import finished",
		slog.Int("imported", result.Imported),
		slog.Int("failed", result.Failed))
	return result, err
}

// ExportCollection writes the whole collection in the canonical delimited
// format, which re-imports cleanly.
func (b *Bootstrap) ExportCollection(w io.Writer) error {
	coins, err := b.Storage.GetAllCoins()
	if err != nil {
		return err
	}
	return importer.ExportCSV(w, coins)
}

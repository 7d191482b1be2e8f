package providers

import (
	"github.com/samber/do/v2"

	"github.com/resenaapp/resena-server/internal/config"
	"github.com/resenaapp/resena-server/internal/logger"
	"github.com/resenaapp/resena-server/internal/media/images"
)

// ProvideCoverStorage provides the book cover image storage.
func ProvideCoverStorage(i do.Injector) (*images.Storage, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storage, err := images.NewStorage(cfg.Data.BasePath)
	if err != nil {
		return nil, err
	}

	log.Info("Cover storage initialized", "path", storage.Path(""))

	return storage, nil
}

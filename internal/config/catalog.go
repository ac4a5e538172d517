package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const DefaultPlaceholderImage = "/img/placeholder.png"

// CatalogConfig carries catalog tunables that operators may change without a restart.
type CatalogConfig struct {
	PlaceholderImage string `mapstructure:"placeholderImage"`
	ListDefaultTake  int    `mapstructure:"listDefaultTake"`
	ListMaxTake      int    `mapstructure:"listMaxTake"`
}

func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		PlaceholderImage: DefaultPlaceholderImage,
		ListDefaultTake:  50,
		ListMaxTake:      200,
	}
}

type CatalogConfigHolder struct {
	current atomic.Value // holds CatalogConfig
}

// NewCatalogConfigHolder reads catalog.yml from the usual locations and
// keeps watching it for changes.
func NewCatalogConfigHolder() (*CatalogConfigHolder, error) {
	return LoadCatalogConfig(
		"/var/lib/storefront/config",
		"/etc/storefront",
		".",
	)
}

func LoadCatalogConfig(paths ...string) (*CatalogConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("catalog")
	v.SetConfigType("yml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultCatalogConfig()
	v.SetDefault("catalog.placeholderImage", defaults.PlaceholderImage)
	v.SetDefault("catalog.listDefaultTake", defaults.ListDefaultTake)
	v.SetDefault("catalog.listMaxTake", defaults.ListMaxTake)

	watch := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		watch = false
	}

	var cfg CatalogConfig
	if err := v.UnmarshalKey("catalog", &cfg); err != nil {
		return nil, err
	}
	if err := validateCatalogConfig(cfg); err != nil {
		return nil, err
	}

	holder := &CatalogConfigHolder{}
	holder.current.Store(cfg)

	if watch {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			var updated CatalogConfig
			if err := v.UnmarshalKey("catalog", &updated); err != nil {
				zap.L().Warn("catalog config reload failed", zap.Error(err))
				return
			}
			if err := validateCatalogConfig(updated); err != nil {
				zap.L().Warn("catalog config ignored", zap.String("file", e.Name), zap.Error(err))
				return
			}
			holder.current.Store(updated)
			zap.L().Info("catalog config reloaded", zap.String("file", e.Name))
		})
	}

	return holder, nil
}

// NewStaticCatalogConfigHolder returns a holder that never reloads.
func NewStaticCatalogConfigHolder(cfg CatalogConfig) *CatalogConfigHolder {
	holder := &CatalogConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *CatalogConfigHolder) Get() CatalogConfig {
	if h == nil {
		return DefaultCatalogConfig()
	}
	return h.current.Load().(CatalogConfig)
}

func validateCatalogConfig(cfg CatalogConfig) error {
	if strings.TrimSpace(cfg.PlaceholderImage) == "" {
		return errors.New("catalog.placeholderImage cannot be empty")
	}
	if cfg.ListMaxTake < 1 {
		return errors.New("catalog.listMaxTake must be at least 1")
	}
	if cfg.ListDefaultTake < 1 || cfg.ListDefaultTake > cfg.ListMaxTake {
		return errors.New("catalog.listDefaultTake must be within [1, listMaxTake]")
	}
	return nil
}

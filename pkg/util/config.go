package util

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

type NetworkConfig struct {
	Place    string `mapstructure:"place"`
	OsmFile  string `mapstructure:"osm_file"`
	CacheDir string `mapstructure:"cache_dir"`
}

type CacheConfig struct {
	Backend  string `mapstructure:"backend"` // file | s3
	S3Bucket string `mapstructure:"s3_bucket"`
	S3Region string `mapstructure:"s3_region"`
}

type FeedConfig struct {
	SegmentsURL    string        `mapstructure:"segments_url"`
	CongestionsURL string        `mapstructure:"congestions_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	SegmentsTTL    time.Duration `mapstructure:"segments_ttl"`
}

type RefreshConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type RoutingConfig struct {
	MaxSnapDistance float64 `mapstructure:"max_snap_distance"` // meter
	RouteCacheSize  int     `mapstructure:"route_cache_size"`
}

type Config struct {
	Network     NetworkConfig `mapstructure:"network"`
	Cache       CacheConfig   `mapstructure:"cache"`
	Feed        FeedConfig    `mapstructure:"feed"`
	Refresh     RefreshConfig `mapstructure:"refresh"`
	Routing     RoutingConfig `mapstructure:"routing"`
	SnapWorkers int           `mapstructure:"snap_workers"`
}

const (
	barcelonaSegmentsURL    = "https://opendata-ajuntament.barcelona.cat/data/dataset/1090983a-1c40-4609-8620-14ad49aae3ab/resource/1d6c814c-70ef-4147-aa16-a49ddb952f72/download/transit_relacio_trams.csv"
	barcelonaCongestionsURL = "https://opendata-ajuntament.barcelona.cat/data/dataset/8319c2b1-4c21-4962-9acd-6db4c5ff1148/resource/2d456eb5-4ea6-4f68-9794-2f3f1a58a933/download"
)

func SetDefaults() {
	viper.SetDefault("network.place", "Barcelona, Catalonia")
	viper.SetDefault("network.osm_file", "./data/barcelona.osm.pbf")
	viper.SetDefault("network.cache_dir", "./data/")

	viper.SetDefault("cache.backend", "file")
	viper.SetDefault("cache.s3_region", "eu-west-1")

	viper.SetDefault("feed.segments_url", barcelonaSegmentsURL)
	viper.SetDefault("feed.congestions_url", barcelonaCongestionsURL)
	viper.SetDefault("feed.timeout", "10s")
	viper.SetDefault("feed.segments_ttl", "1h")

	viper.SetDefault("refresh.interval", "5m")

	viper.SetDefault("routing.max_snap_distance", 1000.0)
	viper.SetDefault("routing.route_cache_size", 1<<14)

	viper.SetDefault("snap_workers", 4)
}

func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

// LoadConfig decodes the viper state (config file, env, bound flags) into a Config.
func LoadConfig() (Config, error) {
	SetDefaults()
	var cfg Config
	err := viper.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"MarketScan/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment" validate:"required"`
	Logging     struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"logging"`
	Server struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Cache struct {
		Backend string `yaml:"backend" default:"disk" validate:"oneof=disk redis"`
		Dir     string `yaml:"dir" default:".marketscan/cache"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Finnhub struct {
		APIKey         string        `yaml:"api_key"`
		BaseURL        string        `yaml:"base_url" default:"https://finnhub.io/api/v1"`
		RequestsPerMin int           `yaml:"requests_per_min" default:"60" validate:"gt=0"`
		Timeout        time.Duration `yaml:"timeout" default:"15s"`
		ClientID       string        `yaml:"client_id" default:"marketscan/1.0"`
	} `yaml:"finnhub"`
	Stooq struct {
		Enabled        bool          `yaml:"enabled" default:"true"`
		BaseURL        string        `yaml:"base_url" default:"https://stooq.com"`
		RequestsPerMin int           `yaml:"requests_per_min" default:"30" validate:"gt=0"`
		Timeout        time.Duration `yaml:"timeout" default:"15s"`
	} `yaml:"stooq"`
	Scan struct {
		IndexTickers []string `yaml:"index_tickers" default:"[\"SPY\",\"QQQ\",\"DIA\"]"`
		TTL          struct {
			Quotes    time.Duration `yaml:"quotes" default:"5m"`
			Movers    time.Duration `yaml:"movers" default:"5m"`
			News      time.Duration `yaml:"news" default:"10m"`
			Sectors   time.Duration `yaml:"sectors" default:"30m"`
			Portfolio time.Duration `yaml:"portfolio" default:"15m"`
		} `yaml:"ttl"`
		Analysis Analysis `yaml:"analysis"`
	} `yaml:"scan"`
	Summarizer struct {
		Enabled bool          `yaml:"enabled"`
		BaseURL string        `yaml:"base_url"`
		APIKey  string        `yaml:"api_key"`
		Timeout time.Duration `yaml:"timeout" default:"20s"`
	} `yaml:"summarizer"`
	Publisher struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic" default:"market.scans"`
		Compression  string   `yaml:"compression" default:"gzip"`
		RequiredAcks int      `yaml:"required_acks" default:"-1"`
	} `yaml:"publisher"`
}

// Analysis holds the policy thresholds of the analysis chain. Values mirror
// the historical defaults but are deliberately configurable.
type Analysis struct {
	SentimentMeanPct  float64  `yaml:"sentiment_mean_pct" default:"0.3"`
	TopMovers         int      `yaml:"top_movers" default:"5" validate:"gt=0"`
	NewsCap           int      `yaml:"news_cap" default:"5" validate:"gt=0"`
	HotSectorPct      float64  `yaml:"hot_sector_pct" default:"1.0"`
	SectorTrendPct    float64  `yaml:"sector_trend_pct" default:"1.5"`
	SectorCap         int      `yaml:"sector_cap" default:"3" validate:"gt=0"`
	VolumeRatio       float64  `yaml:"volume_ratio" default:"2.0"`
	VolumeSignalCap   int      `yaml:"volume_signal_cap" default:"5" validate:"gt=0"`
	EarningsMovePct   float64  `yaml:"earnings_move_pct" default:"10.0"`
	NewsMovePct       float64  `yaml:"news_move_pct" default:"5.0"`
	WatchListCap      int      `yaml:"watch_list_cap" default:"7" validate:"gt=0"`
	WatchListMovers   int      `yaml:"watch_list_movers" default:"3" validate:"gt=0"`
	WatchListNewsSpan int      `yaml:"watch_list_news_span" default:"5" validate:"gt=0"`
	MacroKeywords     []string `yaml:"macro_keywords"`
}

var validate = validator.New()

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Fill defaults before validating
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if len(c.Scan.Analysis.MacroKeywords) == 0 {
		c.Scan.Analysis.MacroKeywords = DefaultMacroKeywords()
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		c.Finnhub.APIKey = v
	}
	if v := os.Getenv("SUMMARIZER_API_KEY"); v != "" {
		c.Summarizer.APIKey = v
	}
	if v := os.Getenv("CACHE_DIR"); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv("INDEX_TICKERS"); v != "" {
		c.Scan.IndexTickers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Publisher.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if len(c.Scan.IndexTickers) == 0 {
		return fmt.Errorf("scan.index_tickers cannot be empty")
	}
	if c.Publisher.Enabled && len(c.Publisher.Brokers) == 0 {
		return fmt.Errorf("publisher.brokers required when publisher is enabled")
	}
	if c.Summarizer.Enabled && c.Summarizer.BaseURL == "" {
		return fmt.Errorf("summarizer.base_url required when summarizer is enabled")
	}
	return nil
}

// DefaultMacroKeywords is the headline vocabulary that marks a story as
// macro-economic rather than corporate.
func DefaultMacroKeywords() []string {
	return []string{
		"fed", "federal reserve", "fomc", "interest rate", "rate cut", "rate hike",
		"inflation", "cpi", "ppi", "deflation",
		"jobs report", "unemployment", "payrolls", "labor market",
		"gdp", "recession", "economy", "economic",
		"tariff", "trade deal", "trade war", "sanctions",
		"treasury", "yield", "bond market",
		"oil price", "crude", "opec", "commodities", "gold price",
		"housing market", "mortgage rate",
		"central bank", "ecb", "boj", "stimulus",
	}
}

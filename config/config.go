package config

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/jhizzard/Strata/curve"
	"github.com/jhizzard/Strata/market"
	"github.com/jhizzard/Strata/pricing"
	"github.com/jhizzard/Strata/scheduler"
)

// Config is the complete valuation configuration: what to value, against
// which market data, and where to record the result.
type Config struct {
	Valuation ValuationConfig `json:"valuation" yaml:"valuation" mapstructure:"valuation"`
	Curves    []CurveConfig   `json:"curves" yaml:"curves" mapstructure:"curves"`
	Fixings   []FixingSeries  `json:"fixings,omitempty" yaml:"fixings,omitempty" mapstructure:"fixings"`
	FX        FXConfig        `json:"fx" yaml:"fx" mapstructure:"fx"`
	Credit    []CreditConfig  `json:"credit,omitempty" yaml:"credit,omitempty" mapstructure:"credit"`
	Journal   JournalConfig   `json:"journal" yaml:"journal" mapstructure:"journal"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
	Schedule  ScheduleConfig  `json:"schedule" yaml:"schedule" mapstructure:"schedule"`
}

// ValuationConfig says what is valued and how.
type ValuationConfig struct {
	// Date is an ISO date; empty or "today" means the current date.
	Date              string `json:"date" yaml:"date" mapstructure:"date"`
	Kind              string `json:"kind" yaml:"kind" mapstructure:"kind"` // "pv" or "fv"
	ReportingCurrency string `json:"reporting_currency,omitempty" yaml:"reporting_currency,omitempty" mapstructure:"reporting_currency"`
	MaxConcurrency    int    `json:"max_concurrency" yaml:"max_concurrency" mapstructure:"max_concurrency"`
	Portfolio         string `json:"portfolio,omitempty" yaml:"portfolio,omitempty" mapstructure:"portfolio"`
}

// CurveConfig describes a discount curve for a currency or a forward curve
// for a rate index. A curve without nodes is flat at Rate.
type CurveConfig struct {
	Kind     string       `json:"kind" yaml:"kind" mapstructure:"kind"` // "discount" or "forward"
	Currency string       `json:"currency,omitempty" yaml:"currency,omitempty" mapstructure:"currency"`
	Index    string       `json:"index,omitempty" yaml:"index,omitempty" mapstructure:"index"`
	Rate     float64      `json:"rate,omitempty" yaml:"rate,omitempty" mapstructure:"rate"`
	Nodes    []NodeConfig `json:"nodes,omitempty" yaml:"nodes,omitempty" mapstructure:"nodes"`
}

// NodeConfig is one curve pillar, placed either by tenor ("3M", "2Y") or by
// date. Factor, when set, is the discount factor or survival probability;
// otherwise Rate is the continuously compounded zero rate or hazard rate.
type NodeConfig struct {
	Tenor  string  `json:"tenor,omitempty" yaml:"tenor,omitempty" mapstructure:"tenor"`
	Date   string  `json:"date,omitempty" yaml:"date,omitempty" mapstructure:"date"`
	Rate   float64 `json:"rate,omitempty" yaml:"rate,omitempty" mapstructure:"rate"`
	Factor float64 `json:"factor,omitempty" yaml:"factor,omitempty" mapstructure:"factor"`
}

// FixingSeries holds the published fixings of one index.
type FixingSeries struct {
	Index  string        `json:"index" yaml:"index" mapstructure:"index"`
	Values []FixingValue `json:"values" yaml:"values" mapstructure:"values"`
}

type FixingValue struct {
	Date string  `json:"date" yaml:"date" mapstructure:"date"`
	Rate float64 `json:"rate" yaml:"rate" mapstructure:"rate"`
}

// FXConfig holds spot rates and historic FX fixings, quoted as "EUR/USD".
type FXConfig struct {
	Spots   []FxQuote `json:"spots,omitempty" yaml:"spots,omitempty" mapstructure:"spots"`
	Fixings []FxQuote `json:"fixings,omitempty" yaml:"fixings,omitempty" mapstructure:"fixings"`
}

type FxQuote struct {
	Pair string  `json:"pair" yaml:"pair" mapstructure:"pair"`
	Date string  `json:"date,omitempty" yaml:"date,omitempty" mapstructure:"date"`
	Rate float64 `json:"rate" yaml:"rate" mapstructure:"rate"`
}

// CreditConfig is the credit data of one legal entity. Without nodes the
// survival curve has a flat HazardRate.
type CreditConfig struct {
	Entity     string       `json:"entity" yaml:"entity" mapstructure:"entity"`
	HazardRate float64      `json:"hazard_rate,omitempty" yaml:"hazard_rate,omitempty" mapstructure:"hazard_rate"`
	Recovery   float64      `json:"recovery" yaml:"recovery" mapstructure:"recovery"`
	Nodes      []NodeConfig `json:"nodes,omitempty" yaml:"nodes,omitempty" mapstructure:"nodes"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type           string `json:"type" yaml:"type" mapstructure:"type"` // "none", "csv" or "sqlite"
	DBPath         string `json:"db_path,omitempty" yaml:"db_path,omitempty" mapstructure:"db_path"`
	RunsFile       string `json:"runs_file,omitempty" yaml:"runs_file,omitempty" mapstructure:"runs_file"`
	ValuationsFile string `json:"valuations_file,omitempty" yaml:"valuations_file,omitempty" mapstructure:"valuations_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"` // "console" or "json"
}

// ScheduleConfig drives the watch command.
type ScheduleConfig struct {
	Cron       string `json:"cron" yaml:"cron" mapstructure:"cron"`
	RunOnStart bool   `json:"run_on_start" yaml:"run_on_start" mapstructure:"run_on_start"`
}

// Load reads the configuration at path and overlays STRATA_* environment
// variables. With an empty path it looks for strata.yaml in the working
// directory and falls back to the defaults when there is none.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("strata")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("STRATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("valuation.date", def.Valuation.Date)
	v.SetDefault("valuation.kind", def.Valuation.Kind)
	v.SetDefault("valuation.reporting_currency", def.Valuation.ReportingCurrency)
	v.SetDefault("valuation.max_concurrency", def.Valuation.MaxConcurrency)
	v.SetDefault("valuation.portfolio", def.Valuation.Portfolio)
	v.SetDefault("journal.type", def.Journal.Type)
	v.SetDefault("journal.db_path", def.Journal.DBPath)
	v.SetDefault("journal.runs_file", def.Journal.RunsFile)
	v.SetDefault("journal.valuations_file", def.Journal.ValuationsFile)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("schedule.cron", def.Schedule.Cron)
	v.SetDefault("schedule.run_on_start", def.Schedule.RunOnStart)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if len(cfg.Curves) == 0 {
		cfg.Curves = def.Curves
	}

	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "config: invalid")
	}
	return &cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return eris.Wrap(err, "config: marshal")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return eris.Wrap(err, "config: write file")
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := c.ValuationDate(time.Now()); err != nil {
		return err
	}
	if _, err := c.ValueKind(); err != nil {
		return err
	}
	if _, err := c.ReportingCurrency(); err != nil {
		return err
	}
	if c.Valuation.MaxConcurrency < 0 {
		return eris.New("valuation.max_concurrency must not be negative")
	}

	discount := map[market.Currency]bool{}
	forward := map[market.RateIndex]bool{}
	for i, cc := range c.Curves {
		switch strings.ToLower(cc.Kind) {
		case "discount":
			ccy, err := market.ParseCurrency(cc.Currency)
			if err != nil {
				return eris.Wrapf(err, "curves[%d]", i)
			}
			if discount[ccy] {
				return eris.Errorf("curves[%d]: duplicate discount curve for %s", i, ccy)
			}
			discount[ccy] = true
		case "forward":
			idx, err := market.ParseRateIndex(cc.Index)
			if err != nil {
				return eris.Wrapf(err, "curves[%d]", i)
			}
			if forward[idx] {
				return eris.Errorf("curves[%d]: duplicate forward curve for %s", i, idx)
			}
			forward[idx] = true
		default:
			return eris.Errorf("curves[%d].kind must be 'discount' or 'forward'", i)
		}
		if err := validateNodes(cc.Nodes); err != nil {
			return eris.Wrapf(err, "curves[%d]", i)
		}
	}

	for i, fs := range c.Fixings {
		if _, err := market.ParseRateIndex(fs.Index); err != nil {
			return eris.Wrapf(err, "fixings[%d]", i)
		}
		for j, fv := range fs.Values {
			if _, err := market.ParseDate(fv.Date); err != nil {
				return eris.Wrapf(err, "fixings[%d].values[%d]", i, j)
			}
		}
	}

	for i, q := range c.FX.Spots {
		if err := validateQuote(q, false); err != nil {
			return eris.Wrapf(err, "fx.spots[%d]", i)
		}
	}
	for i, q := range c.FX.Fixings {
		if err := validateQuote(q, true); err != nil {
			return eris.Wrapf(err, "fx.fixings[%d]", i)
		}
	}

	for i, cr := range c.Credit {
		if strings.TrimSpace(cr.Entity) == "" {
			return eris.Errorf("credit[%d].entity is required", i)
		}
		if cr.Recovery < 0 || cr.Recovery >= 1 {
			return eris.Errorf("credit[%d].recovery must be in [0, 1)", i)
		}
		if cr.HazardRate < 0 {
			return eris.Errorf("credit[%d].hazard_rate must not be negative", i)
		}
		if err := validateNodes(cr.Nodes); err != nil {
			return eris.Wrapf(err, "credit[%d]", i)
		}
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.RunsFile == "" || c.Journal.ValuationsFile == "" {
			return eris.New("journal runs_file and valuations_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return eris.New("journal db_path required for SQLite type")
		}
	default:
		return eris.New("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return eris.Wrap(err, "log.level")
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return eris.New("log.format must be 'console' or 'json'")
	}

	if c.Schedule.Cron != "" {
		if _, err := scheduler.Parse(c.Schedule.Cron); err != nil {
			return eris.Wrap(err, "schedule.cron")
		}
	}
	return nil
}

func validateNodes(nodes []NodeConfig) error {
	for i, n := range nodes {
		if (n.Tenor == "") == (n.Date == "") {
			return eris.Errorf("nodes[%d] needs exactly one of tenor and date", i)
		}
		if n.Factor < 0 || n.Factor > 1 {
			return eris.Errorf("nodes[%d].factor must be in (0, 1]", i)
		}
	}
	return nil
}

func validateQuote(q FxQuote, dated bool) error {
	if _, err := market.ParseCurrencyPair(q.Pair); err != nil {
		return err
	}
	if !(q.Rate > 0) {
		return eris.Errorf("rate for %s must be positive", q.Pair)
	}
	if dated {
		if _, err := market.ParseDate(q.Date); err != nil {
			return err
		}
	}
	return nil
}

// ValuationDate resolves valuation.date against now.
func (c *Config) ValuationDate(now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(c.Valuation.Date)) {
	case "", "today":
		return market.DateOnly(now), nil
	}
	d, err := market.ParseDate(c.Valuation.Date)
	if err != nil {
		return time.Time{}, eris.Wrap(err, "valuation.date")
	}
	return d, nil
}

func (c *Config) ValueKind() (pricing.ValueKind, error) {
	k, err := pricing.ParseValueKind(c.Valuation.Kind)
	if err != nil {
		return 0, eris.Wrap(err, "valuation.kind")
	}
	return k, nil
}

// ReportingCurrency returns the currency totals are converted into, or ""
// when results stay per currency.
func (c *Config) ReportingCurrency() (market.Currency, error) {
	if c.Valuation.ReportingCurrency == "" {
		return "", nil
	}
	ccy, err := market.ParseCurrency(c.Valuation.ReportingCurrency)
	if err != nil {
		return "", eris.Wrap(err, "valuation.reporting_currency")
	}
	return ccy, nil
}

// BuildEnvironment turns the market data section into an environment with
// curves based on the valuation date.
func (c *Config) BuildEnvironment(valuationDate time.Time) (*pricing.MarketEnvironment, error) {
	base := market.DateOnly(valuationDate)
	b := pricing.MarketEnvironmentBuilder{
		ValuationDate:  base,
		DiscountCurves: map[market.Currency]*curve.Curve{},
		IndexCurves:    map[market.RateIndex]*curve.Curve{},
		Fixings:        map[market.RateIndex]map[time.Time]float64{},
		FxSpots:        map[market.CurrencyPair]float64{},
		FxFixings:      map[market.CurrencyPair]map[time.Time]float64{},
		SurvivalCurves: map[string]*curve.Curve{},
		RecoveryRates:  map[string]float64{},
	}

	for i, cc := range c.Curves {
		crv, err := buildCurve(base, cc.Rate, cc.Nodes, false)
		if err != nil {
			return nil, eris.Wrapf(err, "config: curves[%d]", i)
		}
		if strings.EqualFold(cc.Kind, "forward") {
			idx, err := market.ParseRateIndex(cc.Index)
			if err != nil {
				return nil, eris.Wrapf(err, "config: curves[%d]", i)
			}
			b.IndexCurves[idx] = crv
			continue
		}
		ccy, err := market.ParseCurrency(cc.Currency)
		if err != nil {
			return nil, eris.Wrapf(err, "config: curves[%d]", i)
		}
		b.DiscountCurves[ccy] = crv
	}

	for _, fs := range c.Fixings {
		idx, err := market.ParseRateIndex(fs.Index)
		if err != nil {
			return nil, eris.Wrap(err, "config: fixings")
		}
		series := b.Fixings[idx]
		if series == nil {
			series = map[time.Time]float64{}
			b.Fixings[idx] = series
		}
		for _, fv := range fs.Values {
			d, err := market.ParseDate(fv.Date)
			if err != nil {
				return nil, eris.Wrapf(err, "config: fixings %s", idx)
			}
			series[d] = fv.Rate
		}
	}

	for _, q := range c.FX.Spots {
		pair, err := market.ParseCurrencyPair(q.Pair)
		if err != nil {
			return nil, eris.Wrap(err, "config: fx spots")
		}
		b.FxSpots[pair] = q.Rate
	}
	for _, q := range c.FX.Fixings {
		pair, err := market.ParseCurrencyPair(q.Pair)
		if err != nil {
			return nil, eris.Wrap(err, "config: fx fixings")
		}
		d, err := market.ParseDate(q.Date)
		if err != nil {
			return nil, eris.Wrapf(err, "config: fx fixings %s", pair)
		}
		series := b.FxFixings[pair]
		if series == nil {
			series = map[time.Time]float64{}
			b.FxFixings[pair] = series
		}
		series[d] = q.Rate
	}

	for _, cr := range c.Credit {
		crv, err := buildCurve(base, cr.HazardRate, cr.Nodes, true)
		if err != nil {
			return nil, eris.Wrapf(err, "config: credit %s", cr.Entity)
		}
		b.SurvivalCurves[cr.Entity] = crv
		b.RecoveryRates[cr.Entity] = cr.Recovery
	}

	env, err := b.Build()
	if err != nil {
		return nil, eris.Wrap(err, "config: build environment")
	}
	return env, nil
}

func buildCurve(base time.Time, rate float64, nodes []NodeConfig, survival bool) (*curve.Curve, error) {
	if len(nodes) == 0 {
		if survival {
			return curve.NewFlatHazardCurve(base, rate)
		}
		return curve.NewFlatCurve(base, rate)
	}

	factors := make(map[time.Time]float64, len(nodes))
	for i, n := range nodes {
		d, err := n.date(base)
		if err != nil {
			return nil, eris.Wrapf(err, "nodes[%d]", i)
		}
		f := n.Factor
		if f == 0 {
			f = math.Exp(-n.Rate * curve.YearFraction(base, d))
		}
		factors[d] = f
	}
	if survival {
		return curve.NewSurvivalCurve(base, factors)
	}
	return curve.NewCurveFromDFs(base, factors)
}

func (n NodeConfig) date(base time.Time) (time.Time, error) {
	if n.Date != "" {
		return market.ParseDate(n.Date)
	}
	f, err := market.ParseFrequency(n.Tenor)
	if err != nil {
		return time.Time{}, err
	}
	if f == market.FreqTerm {
		return time.Time{}, eris.Errorf("tenor %q is not a point on a curve", n.Tenor)
	}
	return base.AddDate(0, f.Months(), 0), nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Valuation: ValuationConfig{
			Date:           "today",
			Kind:           "pv",
			MaxConcurrency: 8,
		},
		Curves: []CurveConfig{
			{Kind: "discount", Currency: "USD", Rate: 0.04},
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Schedule: ScheduleConfig{
			Cron: "0 0 18 * * 1-5",
		},
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

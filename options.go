package grouptable

import "github.com/rs/zerolog"

// A GroupByOption configures a GroupBy() call.
// Available options: GroupByIgnoreIndex, GroupByLogger.
type GroupByOption func(*groupByConfig)

// groupByConfig is the default GroupBy() config: secondary indexes are used when they match the keys,
// and events are written to the package logger.
type groupByConfig struct {
	ignoreIndex bool
	logger      zerolog.Logger
}

// GroupByIgnoreIndex sorts the keys even if the Table has a secondary index on the key columns.
func GroupByIgnoreIndex() GroupByOption {
	return func(cfg *groupByConfig) {
		cfg.ignoreIndex = true
	}
}

// GroupByLogger replaces the logger used by GroupBy().
func GroupByLogger(logger zerolog.Logger) GroupByOption {
	return func(cfg *groupByConfig) {
		cfg.logger = logger
	}
}

func newGroupByConfig(options []GroupByOption) *groupByConfig {
	cfg := &groupByConfig{logger: defaultLogger}
	for _, option := range options {
		option(cfg)
	}
	return cfg
}

// An AggregateOption configures a Table Aggregate() call.
// Available options: AggregateStrict, AggregateLogger.
type AggregateOption func(*aggregateConfig)

// aggregateConfig is the default Aggregate() config: a column that cannot be aggregated is
// logged as a warning and left out of the result.
type aggregateConfig struct {
	strict bool
	logger zerolog.Logger
}

// AggregateStrict returns a Table with an error if any column cannot be aggregated,
// instead of dropping the column from the result.
func AggregateStrict() AggregateOption {
	return func(cfg *aggregateConfig) {
		cfg.strict = true
	}
}

// AggregateLogger replaces the logger that receives warnings about dropped columns.
func AggregateLogger(logger zerolog.Logger) AggregateOption {
	return func(cfg *aggregateConfig) {
		cfg.logger = logger
	}
}

func newAggregateConfig(options []AggregateOption) *aggregateConfig {
	cfg := &aggregateConfig{logger: defaultLogger}
	for _, option := range options {
		option(cfg)
	}
	return cfg
}

// A RenderOption configures Render().
// Available options: RenderMaxRows.
type RenderOption func(*renderConfig)

// renderConfig is the default Render() config: at most 50 rows are printed.
type renderConfig struct {
	maxRows int
}

// RenderMaxRows sets the maximum number of rows printed before the middle rows are replaced with "...".
// Negative values are treated as 0.
func RenderMaxRows(n int) RenderOption {
	return func(cfg *renderConfig) {
		cfg.maxRows = n
	}
}

func newRenderConfig(options []RenderOption) *renderConfig {
	cfg := &renderConfig{maxRows: 50}
	for _, option := range options {
		option(cfg)
	}
	if cfg.maxRows < 0 {
		cfg.maxRows = 0
	}
	return cfg
}

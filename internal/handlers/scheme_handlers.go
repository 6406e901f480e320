package handlers

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/justitia-lab/shardscope/api"
	config "github.com/justitia-lab/shardscope/configs"
	"github.com/justitia-lab/shardscope/internal/loader"
	"github.com/justitia-lab/shardscope/internal/reducer"
)

// schemeCache memoizes one analysis pass per server lifetime. The input files
// are static experiment outputs, so there is nothing to invalidate.
type schemeCache struct {
	once      sync.Once
	summaries []reducer.SchemeSummary
	skipped   []reducer.SkippedScheme
	tables    map[string]*reducer.DerivedTable
}

var cache schemeCache

func loadAll() {
	cache.tables = make(map[string]*reducer.DerivedTable)
	opts := reducer.DeriveOptions{
		QueueCeilingSec:   config.Cfg.Analysis.QueueCeilingSec,
		ConfirmCeilingSec: config.Cfg.Analysis.ConfirmCeilingSec,
	}

	dirs := make(map[string]string, len(config.Cfg.Schemes))
	names := make([]string, 0, len(config.Cfg.Schemes))
	for _, s := range config.Cfg.Schemes {
		dirs[s.Name] = s.Dir
		names = append(names, s.Name)
	}

	cache.summaries, cache.skipped = reducer.AggregateSchemes(names, func(name string) (*reducer.DerivedTable, error) {
		path, err := loader.ResolveDataFile(dirs[name], "Tx_Details.csv")
		if err != nil {
			return nil, err
		}
		table, err := loader.LoadTxDetails(path)
		if err != nil {
			return nil, err
		}
		derived := reducer.Derive(table, opts)
		cache.tables[name] = derived
		return derived, nil
	})
	log.Info().Int("schemes", len(cache.summaries)).Int("skipped", len(cache.skipped)).Msg("scheme summaries computed")
}

// GetSchemes returns every configured scheme's summary plus the skip list.
func GetSchemes(c *gin.Context) {
	cache.once.Do(loadAll)
	c.JSON(200, gin.H{
		"schemes": cache.summaries,
		"skipped": cache.skipped,
	})
}

// GetSchemeQuantiles returns the fee-quantile bins and monotonicity report
// for one scheme's cross-shard transactions.
func GetSchemeQuantiles(c *gin.Context) {
	cache.once.Do(loadAll)
	name := c.Param("name")

	table, ok := cache.tables[name]
	if !ok {
		api.NotFoundErrorHandler(c, fmt.Errorf("unknown or skipped scheme %q", name))
		return
	}

	bins, err := reducer.BinByFee(reducer.FeeLatencyPoints(table), config.Cfg.Analysis.QuantileBins)
	if err != nil {
		api.BadRequestErrorHandler(c, err)
		return
	}
	c.JSON(200, gin.H{
		"bins":         bins,
		"monotonicity": reducer.CheckMonotonicity(bins),
	})
}

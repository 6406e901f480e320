package cmd

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	configs "github.com/justitia-lab/shardscope/configs"
	"github.com/justitia-lab/shardscope/internal/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve computed scheme summaries over HTTP",
	Long: "Starts a read-only HTTP server exposing the cross-scheme summaries and " +
		"per-scheme fee-quantile statistics as JSON.",
	Run: func(cmd *cobra.Command, args []string) {
		RunServe(cmd, args)
	},
}

func RunServe(cmd *cobra.Command, args []string) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/v1")
	{
		v1.GET("/schemes", handlers.GetSchemes)
		v1.GET("/schemes/:name/quantiles", handlers.GetSchemeQuantiles)
	}

	host := configs.Cfg.API.Host
	port := configs.Cfg.API.Port
	if port == 0 {
		port = 3320
	}
	addr := fmt.Sprintf("%s:%d", host, port)
	log.Info().Str("addr", addr).Msg("Serving scheme summaries")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

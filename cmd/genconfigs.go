package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/justitia-lab/shardscope/internal/loader"
)

var (
	genConfigsOutDir string

	genConfigsCmd = &cobra.Command{
		Use:   "genconfigs [baseConfig.json]",
		Short: "Generate the five standard subsidy experiment configs",
		Long: "Writes one simulator paramsConfig per subsidy scheme (Monoxide, R=0, " +
			"R=E(f_B), R=E(f_A)+E(f_B), R=1 ETH/CTX), copying everything except the " +
			"subsidy keys from the base config.",
		Run: func(cmd *cobra.Command, args []string) {
			RunGenConfigs(cmd, args)
		},
	}
)

func init() {
	genConfigsCmd.Flags().StringVar(&genConfigsOutDir, "out", ".", "Directory to write the generated configs to")
}

func RunGenConfigs(cmd *cobra.Command, args []string) {
	base := loader.DefaultSimulatorParams()
	if len(args) > 0 {
		loaded, err := loader.LoadSimulatorParams(args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load base config")
		}
		base = loaded
	} else {
		log.Warn().Msg("No base config given, using simulator defaults")
	}

	for _, v := range loader.StandardVariants() {
		path, err := loader.WriteVariant(base, v, genConfigsOutDir)
		if err != nil {
			log.Fatal().Str("scheme", v.Name).Err(err).Msg("Failed to write config variant")
		}
		log.Info().Str("scheme", v.Name).Str("path", path).Str("description", v.Description).Msg("Wrote config")
	}
}

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Prettify bool   `mapstructure:"prettify"`
}

type AnalysisConfig struct {
	QuantileBins      int     `mapstructure:"quantileBins"`
	QueueCeilingSec   float64 `mapstructure:"queueCeilingSec"`
	ConfirmCeilingSec float64 `mapstructure:"confirmCeilingSec"`
	OutputDir         string  `mapstructure:"outputDir"`
	ParquetExport     bool    `mapstructure:"parquetExport"`
}

// SchemeConfig names one subsidy scheme and the experiment directory that
// holds its simulator output (the directory containing either
// supervisor_measureOutput/ or the CSV files directly).
type SchemeConfig struct {
	Name string `mapstructure:"name"`
	Dir  string `mapstructure:"dir"`
}

type APIConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Schemes  []SchemeConfig `mapstructure:"schemes"`
	API      APIConfig      `mapstructure:"api"`
}

var Cfg Config

// DefaultSchemes mirrors the standard five-experiment layout produced by the
// simulator run scripts. Used when no schemes are configured.
func DefaultSchemes() []SchemeConfig {
	return []SchemeConfig{
		{Name: "Monoxide", Dir: "../expTest_monoxide/result"},
		{Name: "R=0", Dir: "../expTest_R0/result"},
		{Name: "R=E(f_B)", Dir: "../expTest_R_EB/result"},
		{Name: "R=E(f_A)+E(f_B)", Dir: "../expTest_R_EA_EB/result"},
		{Name: "R=1 ETH/CTX", Dir: "../expTest_R_1ETH/result"},
	}
}

func LoadConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file, %s", err)
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./configs")

		// config file is optional for this tool; flags and defaults are enough
		if err := viper.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return fmt.Errorf("error reading config file, %s", err)
			}
		}
	}

	// sets e.g. LOG_LEVEL to log.level
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	viper.AutomaticEnv()

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		return fmt.Errorf("error unmarshalling config: %v", err)
	}

	if Cfg.Analysis.QuantileBins <= 0 {
		Cfg.Analysis.QuantileBins = 20
	}
	if Cfg.Analysis.QueueCeilingSec <= 0 {
		Cfg.Analysis.QueueCeilingSec = 1000
	}
	if Cfg.Analysis.ConfirmCeilingSec <= 0 {
		Cfg.Analysis.ConfirmCeilingSec = 500
	}
	if Cfg.Analysis.OutputDir == "" {
		Cfg.Analysis.OutputDir = "./analysis_output"
	}
	if len(Cfg.Schemes) == 0 {
		Cfg.Schemes = DefaultSchemes()
	}

	return nil
}

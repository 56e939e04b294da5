package main

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"gitlab.mdcatapult.io/informatics/software-engineering/annotation-validation/lib"
)

// config structure
type validationAPIConfig struct {
	LogLevel string `mapstructure:"log_level"`
	Server   struct {
		HttpPort int `mapstructure:"http_port"`
	}
	Workers        int `mapstructure:"workers"`
	RequestTimeout int `mapstructure:"request_timeout"`
}

var config validationAPIConfig

func initConfig() {
	// Set default config values
	err := lib.InitializeConfig("./config/validation-api.yml", map[string]interface{}{
		"log_level": "info",
		"server": map[string]interface{}{
			"http_port": 8080,
		},
		"workers":         0,
		"request_timeout": 60,
	}, &config)
	if err != nil {
		panic(err)
	}

	// Unmarshal the viper config into our struct.
	err = viper.Unmarshal(&config)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

func main() {
	initConfig()
	go lib.HandleInterrupt()

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(lib.JsonLogFormatter), gin.Recovery())

	c := controller{
		workers: config.Workers,
		timeout: time.Duration(config.RequestTimeout) * time.Second,
	}
	s := server{controller: c}
	s.RegisterRoutes(r)

	log.Info().Int("port", config.Server.HttpPort).Msg("ready to accept requests")
	if err := r.Run(fmt.Sprintf(":%d", config.Server.HttpPort)); err != nil {
		log.Fatal().Err(err).Send()
	}
}

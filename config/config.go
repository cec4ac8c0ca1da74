package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Service  ServiceConfig  `mapstructure:"service"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	RPC      RPCConfig      `mapstructure:"rpc"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	Database DatabaseConfig `mapstructure:"database"`
}

type ServiceConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	SocketURL   string `mapstructure:"socket_url"`
	Nickname    string `mapstructure:"nickname"`
	Room        string `mapstructure:"room"`
	Password    string `mapstructure:"password"`
	IsSpectator bool   `mapstructure:"is_spectator"`
}

type MonitorConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Address   string `mapstructure:"address"`
	Namespace string `mapstructure:"namespace"`
}

type RPCConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

type ArchiveConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Driver  string `mapstructure:"driver"` // "gorm" or "pq"
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("service.base_url", "https://bingosync.com")
	viper.SetDefault("service.socket_url", "wss://sockets.bingosync.com/broadcast")
	viper.SetDefault("monitor.namespace", "bingoclient")
	viper.SetDefault("monitor.address", ":9100")
	viper.SetDefault("rpc.address", "127.0.0.1:7201")
	viper.SetDefault("archive.driver", "gorm")

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}

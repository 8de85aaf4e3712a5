package main

import (
	"bookcatalog/internal/config"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const defaultMigrationsDir = "db/migrations"

// migrateConfig resolves settings as --dir flag, then MIGRATIONS_DIR, then
// the default. The DSN follows the same DB_* variables as the API.
type migrateConfig struct {
	v *viper.Viper
}

func newMigrateConfig(flags *pflag.FlagSet) (*migrateConfig, error) {
	config.LoadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("migrations_dir", defaultMigrationsDir)
	if err := v.BindPFlag("migrations_dir", flags.Lookup("dir")); err != nil {
		return nil, err
	}
	return &migrateConfig{v: v}, nil
}

func (c *migrateConfig) migrationsDir() string {
	return c.v.GetString("migrations_dir")
}

func (c *migrateConfig) dsn() string {
	return config.Load().Database.ConnString()
}

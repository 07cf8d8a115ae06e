package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Configuration struct {
	// Name of this node, used in logs only.
	Name string
	// Domain is the hostname (including port when non-standard) under which
	// this node is known to its peers. Author uids minted here start with it.
	Domain string
	Https  bool
	// Port the HTTP server listens on.
	Port uint16
	// DbUrl is the path or connection string of the sqlite database.
	DbUrl string
	// MigrationsFolder holds the golang-migrate SQL files.
	MigrationsFolder string
	// PageSize is the default number of posts per page; SizeLimit caps what a
	// caller may request through the size query parameter.
	PageSize  int
	SizeLimit int
	// PeerTimeout bounds every outbound call to a peer. A peer that does not
	// answer within it is treated as unreachable.
	PeerTimeout time.Duration
	// Debug, if true, lowers the log level and logs all HTTP requests.
	Debug bool
}

// Scheme returns the transport scheme this node advertises for its own urls.
func (c *Configuration) Scheme() string {
	if c.Https {
		return "https"
	}
	return "http"
}

// AuthorUid builds the canonical uid of a local author.
func (c *Configuration) AuthorUid(id string) string {
	return c.Domain + "/author/" + id
}

func ReadConfig() (Configuration, error) {
	v := viper.New()
	v.SetConfigName("node")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/socialdistribution")

	v.SetDefault("name", "socialdistribution")
	v.SetDefault("domain", "localhost:8080")
	v.SetDefault("https", false)
	v.SetDefault("port", 8080)
	v.SetDefault("dburl", "node.db")
	v.SetDefault("migrationsfolder", "migrations")
	v.SetDefault("pagesize", 10)
	v.SetDefault("sizelimit", 50)
	v.SetDefault("peertimeout", "10s")
	v.SetDefault("debug", false)

	v.SetEnvPrefix("node")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, the defaults and environment cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Configuration{}, err
		}
	}

	var c Configuration
	err := v.Unmarshal(&c)
	return c, err
}

package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Rules bundle key in Redis; the engine falls back to compiled-in
	// defaults when the key is absent.
	RulesRedisKey string

	// Hard system caps, sourced separately from the rules bundle.
	MaxLoanAmount float64
	MaxTermMonths int

	// Staff recipients for operational notifications.
	StaffIDs []string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "microlend"),
		MySQLUser: getenv("MYSQL_USER", "microlend"),
		MySQLPass: getenv("MYSQL_PASS", "microlend"),

		RedisAddr:     getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs:  300,
		RulesRedisKey: getenv("RULES_REDIS_KEY", "lending:rules:bundle"),

		MaxLoanAmount: 50000,
		MaxTermMonths: 60,
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	if v := os.Getenv("SYSTEM_MAX_LOAN_AMOUNT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.MaxLoanAmount = f
		}
	}
	if v := os.Getenv("SYSTEM_MAX_TERM_MONTHS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxTermMonths = n
		}
	}
	if v := os.Getenv("STAFF_IDS"); v != "" {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				c.StaffIDs = append(c.StaffIDs, id)
			}
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.MaxLoanAmount <= 0 || c.MaxTermMonths <= 0 {
		return errors.New("system caps must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime is needed for DATETIME columns
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"loanledger-backend/internal/ledger"
)

type Config struct {
	AppPort string

	AdminToken   string
	AdminAccount string

	TreasuryAccount string
	LenderFeeBps    uint32
	BorrowerFeeBps  uint32

	DBDriver string // "mysql" | "sqlite"
	DBDSN    string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort: getenv("APP_PORT", "8080"),

		AdminToken:   getenv("ADMIN_TOKEN", ""),
		AdminAccount: getenv("ADMIN_ACCOUNT", "00000000000000000000000000000000"),

		TreasuryAccount: getenv("TREASURY_ACCOUNT", "ffffffffffffffffffffffffffffffff"),
		LenderFeeBps:    uint32(getenvInt("LENDER_FEE_BPS", 100)),
		BorrowerFeeBps:  uint32(getenvInt("BORROWER_FEE_BPS", 50)),

		DBDriver: getenv("DB_DRIVER", "sqlite"),
		DBDSN:    getenv("DB_DSN", "loanledger.db"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "loanledger"),
		MySQLUser: getenv("MYSQL_USER", "loanledger"),
		MySQLPass: getenv("MYSQL_PASS", "loanledger"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getenvInt("REDIS_DB", 0),
		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
	}
	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.TreasuryAccount == "" {
		return errors.New("missing TREASURY_ACCOUNT")
	}
	if c.LenderFeeBps > ledger.MaxFeeBps {
		return fmt.Errorf("LENDER_FEE_BPS %d above cap %d", c.LenderFeeBps, ledger.MaxFeeBps)
	}
	if c.BorrowerFeeBps > ledger.MaxFeeBps {
		return fmt.Errorf("BORROWER_FEE_BPS %d above cap %d", c.BorrowerFeeBps, ledger.MaxFeeBps)
	}
	if c.DBDriver == "mysql" {
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

// DSN resolves the database connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "mysql" {
		// multiStatements=true is handy for migrations; parseTime needed for DATETIME
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
			c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
	}
	return c.DBDSN
}

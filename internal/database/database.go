package database

import (
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	// Registers the cgo-free "sqlite" driver the local path below opens.
	_ "modernc.org/sqlite"
)

// Connect opens the database behind dsn. A postgres:// scheme selects the
// postgres driver; any other value is treated as a sqlite file path, which
// keeps local development and the seed tool dependency free.
//
// Timestamps are written in UTC on both drivers so booking date ranges
// compare consistently regardless of where the API runs.
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Printf("level=info msg=database connect driver=postgres")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Printf("level=info msg=database connect driver=sqlite path=%s", dsn)
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

package storage

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib" // register the pgx driver

	"github.com/ThamuMnyulwa/multi-agent-data-collector/pkg/models"
)

// PostgresSink mirrors collected records into a hotels table, keyed by URL.
type PostgresSink struct {
	db *sql.DB
}

func NewPostgresSink(db *sql.DB) *PostgresSink {
	return &PostgresSink{db: db}
}

func (s *PostgresSink) Save(result models.CollectionResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO hotels (location, url, name, address, price, quality_score, flag, collected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (url) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			price = EXCLUDED.price,
			quality_score = EXCLUDED.quality_score,
			flag = EXCLUDED.flag,
			collected_at = EXCLUDED.collected_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for _, h := range result.ValidatedHotels {
		if _, err := stmt.Exec(result.Location, h.URL, h.Name, h.Address, h.Price, h.QualityScore, h.Flag, now); err != nil {
			log.Printf("Error inserting %s: %v", h.URL, err)
		}
	}

	return tx.Commit()
}

// WaitForDB opens the database and pings it with retries, since the
// collector often starts before a containerized Postgres is ready.
func WaitForDB(dbURL string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("pgx", dbURL)
		if err == nil {
			if err = db.Ping(); err == nil {
				return db, nil
			}
		}
		log.Printf("Waiting for DB... (%v)", err)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("could not connect to DB after retries: %w", err)
}

package sqlite

import (
	"fmt"
	"strings"

	"github.com/OpenCHAMI/pductl/internal/cache"
	"github.com/OpenCHAMI/pductl/internal/util"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const TABLE_NAME = "pductl_outlet_states"

func CreateOutletStatesIfNotExists(path string) (*sqlx.DB, error) {
	schema := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		host 		TEXT NOT NULL,
		outlet 		INTEGER NOT NULL,
		state 		BOOLEAN NOT NULL,
		source 		TEXT,
		timestamp 	TIMESTAMP,
		PRIMARY KEY (host, outlet)
	);
	`, TABLE_NAME)
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return db, nil
}

// InsertOutletStates records the latest state per (host, outlet), replacing
// any older entry.
func InsertOutletStates(path string, states ...cache.OutletState) error {
	if len(states) == 0 {
		return fmt.Errorf("no outlet states to insert")
	}

	db, err := CreateOutletStatesIfNotExists(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	sql := fmt.Sprintf(`INSERT OR REPLACE INTO %s (host, outlet, state, source, timestamp)
		VALUES (:host, :outlet, :state, :source, :timestamp);`, TABLE_NAME)
	for _, state := range states {
		if _, err := tx.NamedExec(sql, &state); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute transaction: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteOutletStates removes entries matching each state's host and, when
// set, outlet. An entry with only a host removes every outlet of that host.
// A cache that was never written has nothing to delete.
func DeleteOutletStates(path string, states ...cache.OutletState) error {
	if len(states) == 0 {
		return fmt.Errorf("no outlet states to delete")
	}

	// check if path exists first to prevent creating the database
	if _, exists := util.PathExists(path); !exists {
		return nil
	}

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, state := range states {
		where := []string{}
		if state.Host != "" {
			where = append(where, "host=:host")
		}
		if state.Outlet > 0 {
			where = append(where, "outlet=:outlet")
		}
		// skip if neither host nor outlet are specified
		if len(where) == 0 {
			continue
		}
		sql := fmt.Sprintf("DELETE FROM %s WHERE %s;", TABLE_NAME, strings.Join(where, " AND "))
		if _, err := tx.NamedExec(sql, &state); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to execute DELETE transaction: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func GetOutletStates(path string) ([]cache.OutletState, error) {
	// check if path exists first to prevent creating the database
	if _, exists := util.PathExists(path); !exists {
		return nil, fmt.Errorf("no file found")
	}

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	results := []cache.OutletState{}
	query := fmt.Sprintf("SELECT host, outlet, state, source, timestamp FROM %s ORDER BY host ASC, outlet ASC;", TABLE_NAME)
	if err := db.Select(&results, query); err != nil {
		return nil, fmt.Errorf("failed to retrieve outlet states: %w", err)
	}
	return results, nil
}

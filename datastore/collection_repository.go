package datastore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/luciasjperez85-svg/markersinorder/colorspace"
	"github.com/luciasjperez85-svg/markersinorder/models"
)

// Keys under which the collection state is persisted
const (
	ColorsKey    = "colors"
	SortOrderKey = "sortOrder"
)

type CollectionRepository interface {
	GetColors() ([]models.Swatch, error)
	SaveColors(swatches []models.Swatch) error
	GetSortMode() (models.SortMode, error)
	SaveSortMode(mode models.SortMode) error
}

type NoRowsError struct {
	NoRows bool
	Err    error
}

func (nr NoRowsError) Error() string {
	return fmt.Sprintf("%v: no rows returned for scan: %v", nr.NoRows, nr.Err)
}

func (nr NoRowsError) Unwrap() error {
	return nr.Err
}

// CollectionDatabase stores each piece of state as a JSON document keyed by name.
type CollectionDatabase struct {
	database *sql.DB
	dbtype   string
	now      func() time.Time
}

func NewCollectionDatabase(db *sql.DB, dbtype string) (CollectionDatabase, error) {
	if db == nil {
		return CollectionDatabase{}, errors.New("nil database handle")
	}

	var collectionDB CollectionDatabase
	collectionDB.database = db
	collectionDB.dbtype = dbtype
	collectionDB.now = time.Now
	return collectionDB, nil
}

func (cdb CollectionDatabase) getState(key string) (string, error) {
	db := cdb.database

	sqlStatement := Rebind(cdb.dbtype, `
		SELECT state_value
		FROM collection_state
		WHERE state_key = $1`)

	var value string
	err := db.QueryRow(sqlStatement, key).Scan(&value)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", NoRowsError{true, err}
	case err != nil:
		return "", fmt.Errorf("failed to read %s state: %w", key, err)
	}
	return value, nil
}

func (cdb CollectionDatabase) putState(key string, value any) error {
	db := cdb.database

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s state: %w", key, err)
	}

	sqlStatement := Rebind(cdb.dbtype, `
		INSERT INTO collection_state (state_key, state_value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (state_key) DO UPDATE
		SET state_value = EXCLUDED.state_value, updated_at = EXCLUDED.updated_at`)

	if _, err := db.Exec(sqlStatement, key, string(payload), cdb.now().UTC()); err != nil {
		return fmt.Errorf("failed to save %s state: %w", key, err)
	}
	return nil
}

// GetColors returns the stored collection. A missing key yields an empty
// collection; stored entries whose hex no longer validates are dropped.
func (cdb CollectionDatabase) GetColors() ([]models.Swatch, error) {
	raw, err := cdb.getState(ColorsKey)
	var noRows NoRowsError
	if errors.As(err, &noRows) {
		return []models.Swatch{}, nil
	}
	if err != nil {
		return nil, err
	}

	var stored []models.Swatch
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode %s state: %w", ColorsKey, err)
	}

	swatches := make([]models.Swatch, 0, len(stored))
	for _, swatch := range stored {
		hex, err := colorspace.NormalizeHex(swatch.Hex)
		if err != nil {
			continue
		}
		swatch.Hex = hex
		swatches = append(swatches, swatch)
	}
	return swatches, nil
}

func (cdb CollectionDatabase) SaveColors(swatches []models.Swatch) error {
	if swatches == nil {
		swatches = []models.Swatch{}
	}
	return cdb.putState(ColorsKey, swatches)
}

// GetSortMode returns the stored mode, or the default when none is stored
// or the stored value is not recognised.
func (cdb CollectionDatabase) GetSortMode() (models.SortMode, error) {
	raw, err := cdb.getState(SortOrderKey)
	var noRows NoRowsError
	if errors.As(err, &noRows) {
		return models.DefaultSortMode, nil
	}
	if err != nil {
		return "", err
	}

	var stored string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return models.DefaultSortMode, nil
	}

	mode, err := models.ParseSortMode(stored)
	if err != nil {
		return models.DefaultSortMode, nil
	}
	return mode, nil
}

func (cdb CollectionDatabase) SaveSortMode(mode models.SortMode) error {
	parsed, err := models.ParseSortMode(string(mode))
	if err != nil {
		return err
	}
	return cdb.putState(SortOrderKey, string(parsed))
}

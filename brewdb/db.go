package brewdb

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-errors/errors"
	"go.etcd.io/bbolt"
)

const (
	dbName           = "brew.db"
	dbFilePermission = 0600
)

var (
	settingsBucket = []byte("settings")
	vendsBucket    = []byte("vends")

	nameKey            = []byte("name")
	defaultBeverageKey = []byte("defaultBeverage")
)

const (
	DefaultName     = "Brew"
	DefaultBeverage = "coffee"
)

// DB persists the dispenser settings and the history of vends.
type DB struct {
	*bbolt.DB
	path string
}

// Open opens brew.db inside dataDir, creating the directory and buckets if needed.
func Open(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, errors.Errorf("Could not create data dir %v: %v", dataDir, err)
	}

	path := filepath.Join(dataDir, dbName)

	bdb, err := bbolt.Open(path, dbFilePermission, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Errorf("Could not open %v: %v", path, err)
	}

	db := &DB{
		DB:   bdb,
		path: path,
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range [][]byte{settingsBucket, vendsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		_ = bdb.Close()
		return nil, errors.Errorf("Could not create buckets: %v", err)
	}

	return db, nil
}

// Path returns the location of the database file
func (db *DB) Path() string {
	return db.path
}

func (db *DB) GetName() (string, error) {
	name := DefaultName

	if _, err := db.getJSON(settingsBucket, nameKey, &name); err != nil {
		return "", err
	}

	return name, nil
}

func (db *DB) SetName(name string) error {
	return db.setJSON(settingsBucket, nameKey, name)
}

func (db *DB) GetDefaultBeverage() (string, error) {
	beverage := DefaultBeverage

	if _, err := db.getJSON(settingsBucket, defaultBeverageKey, &beverage); err != nil {
		return "", err
	}

	return beverage, nil
}

func (db *DB) SetDefaultBeverage(beverage string) error {
	return db.setJSON(settingsBucket, defaultBeverageKey, beverage)
}

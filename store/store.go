// Package store connects to the data store that persists sessions and
// settings
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pokertime/pokertime/internal/osutil"
)

const bucketName = "kv"

var errAlreadyRunning = errors.New(
	"is pokertime already running? Only one instance can be active at a time",
)

// Client is a BoltDB database client.
type Client struct {
	db   *bolt.DB
	path string
}

// Load returns a copy of the value stored under key.
func (c *Client) Load(key string) ([]byte, error) {
	var value []byte

	err := c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketName)).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}

		// bolt values are only valid for the life of the transaction
		value = append([]byte(nil), v...)

		return nil
	})

	return value, err
}

// Save stores value under key, replacing any previous value.
func (c *Client) Save(key string, value []byte) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), value)
	})
}

// Close releases the database file lock.
func (c *Client) Close() error {
	return c.db.Close()
}

// Shutdown closes the client when its owning dependency graph is torn down.
func (c *Client) Shutdown() error {
	return c.Close()
}

// Path returns the location of the database file.
func (c *Client) Path() string {
	return c.path
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), osutil.DirPermission); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the bucket for storing data if it does not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{
		db:   db,
		path: dbPath,
	}, nil
}

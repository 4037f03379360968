package patchserver

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

var bApplications = []byte("applications")

// DB is a thin wrapper around a Bolt database, centralizing the functions
// that persist the audit history of applied patches. Grounded on
// thehowl-diffy's pkg/db.DB (same sync.Once-guarded bucket init, same
// "open bucket lazily on first use" shape).
type DB struct {
	DB *bbolt.DB

	err  error
	once sync.Once
}

func (d *DB) init() error {
	d.once.Do(d._init)
	return d.err
}

func (d *DB) _init() {
	err := d.DB.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bApplications)
		return err
	})
	if err != nil {
		d.err = fmt.Errorf("initialization error: %w", err)
	}
}

// FileOutcome records the per-file result of one application.
type FileOutcome struct {
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	Error string `json:"error,omitempty"`
}

// Application is one persisted record of a POST /apply call.
type Application struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Outcomes  []FileOutcome `json:"outcomes"`
	Failed    bool          `json:"failed"`
}

func (d *DB) PutApplication(a Application) error {
	if err := d.init(); err != nil {
		return err
	}
	encoded, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return d.DB.Batch(func(tx *bbolt.Tx) error {
		return tx.Bucket(bApplications).Put([]byte(a.ID), encoded)
	})
}

func (d *DB) GetApplication(id string) (Application, bool, error) {
	if err := d.init(); err != nil {
		return Application{}, false, err
	}
	var buf []byte
	err := d.DB.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bApplications).Get([]byte(id))
		buf = append(buf, data...)
		return nil
	})
	if err != nil || len(buf) == 0 {
		return Application{}, false, err
	}
	var a Application
	if err := json.Unmarshal(buf, &a); err != nil {
		return Application{}, false, err
	}
	return a, true, nil
}

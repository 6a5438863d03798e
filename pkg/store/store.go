// Package store keeps the command history in a bbolt database. It is used
// instead of the plain text history file when the history path ends in
// ".db".
package store

import (
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"src.sqlterm.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[store] ")

const bucketCmd = "cmd"

// Functions run in one transaction when a database is opened.
var initDB = map[string]func(*bolt.Tx) error{
	"initialize command history table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	},
}

// DB is an open history database. It is a histutil.Persister and a
// histutil.Appender.
type DB struct {
	db *bolt.DB
}

// Open opens the database at path, creating it if necessary. It fails rather
// than wait when another process holds the database.
func Open(path string) (*DB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Println("opened", path)
	return &DB{db}, nil
}

// Close closes the database.
func (s *DB) Close() error {
	return s.db.Close()
}

// AddCmd appends a command and returns its sequence number.
func (s *DB) AddCmd(cmd string) (int, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(cmd))
	})
	return int(seq), err
}

// Cmds returns all commands, oldest first.
func (s *DB) Cmds() ([]string, error) {
	var cmds []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketCmd)).ForEach(func(_, v []byte) error {
			cmds = append(cmds, string(v))
			return nil
		})
	})
	return cmds, err
}

// Replace rewrites the history with cmds in one transaction. Sequence numbers
// keep increasing across rewrites.
func (s *DB) Replace(cmds []string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCmd))
		var keys [][]byte
		err := b.ForEach(func(k, _ []byte) error {
			keys = append(keys, append([]byte(nil), k...))
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		for _, cmd := range cmds {
			seq, err := b.NextSequence()
			if err != nil {
				return err
			}
			if err := b.Put(marshalSeq(seq), []byte(cmd)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load is the same as Cmds.
func (s *DB) Load() ([]string, error) { return s.Cmds() }

// Save is the same as Replace.
func (s *DB) Save(lines []string) error { return s.Replace(lines) }

// Append adds lines with AddCmd, making DB a histutil.Appender.
func (s *DB) Append(lines ...string) error {
	for _, line := range lines {
		if _, err := s.AddCmd(line); err != nil {
			return err
		}
	}
	return nil
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

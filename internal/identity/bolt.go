package identity

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	sessionBucket = "session"
	userKey       = "user"
)

// BoltSessions implements Store on top of a bbolt file, the persisted
// key-value session store the interface reads its identity from.
type BoltSessions struct {
	db *bbolt.DB
}

// NewBoltSessions opens (or creates) the session database at path.
func NewBoltSessions(path string) (*BoltSessions, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening session db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating session bucket: %w", err)
	}

	return &BoltSessions{db: db}, nil
}

// CurrentUser returns the connected user. A missing or malformed record is
// an error: the caller is expected to have established a session first.
func (s *BoltSessions) CurrentUser() (User, error) {
	var user User
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(sessionBucket)).Get([]byte(userKey))
		if data == nil {
			return fmt.Errorf("no user connected")
		}
		if err := json.Unmarshal(data, &user); err != nil {
			return fmt.Errorf("unmarshaling user record: %w", err)
		}
		return nil
	})
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// SetCurrentUser records the connected user.
func (s *BoltSessions) SetCurrentUser(user User) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshaling user record: %w", err)
		}
		return tx.Bucket([]byte(sessionBucket)).Put([]byte(userKey), data)
	})
}

// Clear removes the session record.
func (s *BoltSessions) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Delete([]byte(userKey))
	})
}

// Close closes the session database.
func (s *BoltSessions) Close() error {
	return s.db.Close()
}

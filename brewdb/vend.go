package brewdb

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/go-errors/errors"
	"go.etcd.io/bbolt"
)

// Vend is a completed vend as it was issued to the machine
type Vend struct {
	ID       uint64          `json:"id"`
	Beverage string          `json:"beverage"`
	Options  map[string]bool `json:"options"`
	Steps    []string        `json:"steps"`
	Time     time.Time       `json:"time"`
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// AddVend stores vend and assigns its ID.
func (db *DB) AddVend(vend *Vend) error {
	return db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(vendsBucket)
		if err != nil {
			return err
		}

		id, err := bucket.NextSequence()
		if err != nil {
			return errors.Errorf("Could not get next vend id: %v", err)
		}

		vend.ID = id

		payload, err := json.Marshal(vend)
		if err != nil {
			return errors.Errorf("Could not marshal vend: %v", err)
		}

		return bucket.Put(itob(id), payload)
	})
}

// ListVends returns up to limit vends, most recent first. A limit of zero or
// less returns every vend.
func (db *DB) ListVends(limit int) ([]*Vend, error) {
	vends := []*Vend{}

	err := db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(vendsBucket)
		if bucket == nil {
			return nil
		}

		c := bucket.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(vends) >= limit {
				break
			}

			vend := &Vend{}
			if err := json.Unmarshal(v, vend); err != nil {
				return errors.Errorf("Could not unmarshal vend %x: %v", k, err)
			}

			vends = append(vends, vend)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return vends, nil
}

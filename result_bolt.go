package tossup

import (
	"fmt"
	"time"

	"github.com/ugorji/go/codec"
	"go.etcd.io/bbolt"
)

const boltResultStoreBucketSimulations = "simulations"

var msgpackHandle = &codec.MsgpackHandle{}

// BoltResultStore is a ResultStore that uses bbolt as a backend. Records are
// encoded with msgpack and keyed by their big-endian ID.
type BoltResultStore struct {
	db *bbolt.DB
}

func NewBoltResultStore(db *bbolt.DB) *BoltResultStore {
	return &BoltResultStore{db: db}
}

// OpenBoltResultStore opens (or creates) the database file at path.
func OpenBoltResultStore(path string) (*BoltResultStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return NewBoltResultStore(db), nil
}

func (s *BoltResultStore) encodeRecord(record *SimulationRecord) ([]byte, error) {
	var out []byte
	if err := codec.NewEncoderBytes(&out, msgpackHandle).Encode(record); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BoltResultStore) decodeRecord(in []byte) (*SimulationRecord, error) {
	var record SimulationRecord
	if err := codec.NewDecoderBytes(in, msgpackHandle).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *BoltResultStore) Put(record *SimulationRecord) (uint64, error) {
	var id uint64
	err := s.db.Update(func(t *bbolt.Tx) error {
		bucket, err := t.CreateBucketIfNotExists([]byte(boltResultStoreBucketSimulations))
		if err != nil {
			return err
		}
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		stored := *record
		stored.ID = seq
		b, err := s.encodeRecord(&stored)
		if err != nil {
			return err
		}
		if err := bucket.Put(EncodeUint64(seq), b); err != nil {
			return err
		}
		id = seq
		record.ID = seq
		return nil
	})
	return id, err
}

func (s *BoltResultStore) Get(id uint64) (*SimulationRecord, error) {
	var record *SimulationRecord
	err := s.db.View(func(t *bbolt.Tx) error {
		bucket := t.Bucket([]byte(boltResultStoreBucketSimulations))
		if bucket == nil {
			return fmt.Errorf("%w: %d", ErrSimulationNotFound, id)
		}
		value := bucket.Get(EncodeUint64(id))
		if value == nil {
			return fmt.Errorf("%w: %d", ErrSimulationNotFound, id)
		}
		r, err := s.decodeRecord(value)
		if err != nil {
			return err
		}
		record = r
		return nil
	})
	return record, err
}

// List returns every record in ID order.
func (s *BoltResultStore) List() ([]*SimulationRecord, error) {
	records := []*SimulationRecord{}
	err := s.db.View(func(t *bbolt.Tx) error {
		bucket := t.Bucket([]byte(boltResultStoreBucketSimulations))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_, value []byte) error {
			r, err := s.decodeRecord(value)
			if err != nil {
				return err
			}
			records = append(records, r)
			return nil
		})
	})
	return records, err
}

func (s *BoltResultStore) Close() error {
	return s.db.Close()
}

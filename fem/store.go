// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cpmech/gomat/mdl/state"
	"github.com/cpmech/gosl/chk"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// Store saves checkpoints of domains in a badger database. Keys are "ckpt/<run>/<step>"
type Store struct {
	Run string     // run identifier (uuid)
	Enc string     // encoder type
	db  *badger.DB // database
}

// OpenStore opens a store in dir (in-memory if dir is empty) for run. A new run identifier is
// generated if run is empty
func OpenStore(dir, run, enctype string) (o *Store, err error) {
	if run == "" {
		run = uuid.NewString()
	} else if _, err = uuid.Parse(run); err != nil {
		return nil, chk.Err("run identifier %q is invalid:\n%v", run, err)
	}
	if enctype == "" {
		enctype = "gob"
	}
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, chk.Err("cannot open checkpoint store:\n%v", err)
	}
	return &Store{Run: run, Enc: enctype, db: db}, nil
}

// Close closes the database
func (o *Store) Close() error {
	return o.db.Close()
}

// prefix returns the prefix of keys of this run
func (o *Store) prefix() string {
	return "ckpt/" + o.Run + "/"
}

// key returns the key of step
func (o *Store) key(step int) []byte {
	return []byte(fmt.Sprintf("%s%08d", o.prefix(), step))
}

// Save saves the full state (history included) of dom at step
func (o *Store) Save(step int, dom *Domain) (err error) {
	if step < 0 || step >= 1e8 {
		return chk.Err("step must be in [0, 1e8). step = %d is invalid", step)
	}
	var buf bytes.Buffer
	err = dom.Encode(state.NewEncoder(&buf, o.Enc), false)
	if err != nil {
		return
	}
	return o.db.Update(func(txn *badger.Txn) error {
		return txn.Set(o.key(step), buf.Bytes())
	})
}

// Load loads the state of dom saved at step
func (o *Store) Load(step int, dom *Domain) (err error) {
	var val []byte
	err = o.db.View(func(txn *badger.Txn) error {
		item, e := txn.Get(o.key(step))
		if e != nil {
			return e
		}
		val, e = item.ValueCopy(nil)
		return e
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return chk.Err("checkpoint of step %d of run %s does not exist", step, o.Run)
	}
	if err != nil {
		return
	}
	return dom.Decode(state.NewDecoder(bytes.NewReader(val), o.Enc), false)
}

// Steps returns the saved steps of this run in ascending order
func (o *Store) Steps() (steps []int, err error) {
	prefix := []byte(o.prefix())
	err = o.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
			key := strings.TrimPrefix(string(it.Item().Key()), string(prefix))
			step, e := strconv.Atoi(key)
			if e != nil {
				return chk.Err("key %q of checkpoint is invalid", it.Item().Key())
			}
			steps = append(steps, step)
		}
		return nil
	})
	return
}

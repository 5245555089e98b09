package draft

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

const draftKeyPrefix = "draft:"

// BadgerStore keeps drafts in a local BadgerDB.
type BadgerStore struct {
	db  *badger.DB
	log *logger.Logger
	now func() time.Time
}

type BadgerOption func(*BadgerStore)

// WithClock overrides the time source used for UpdatedAt.
func WithClock(now func() time.Time) BadgerOption {
	return func(s *BadgerStore) { s.now = now }
}

func NewBadgerStore(db *badger.DB, baseLog *logger.Logger, opts ...BadgerOption) *BadgerStore {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	s := &BadgerStore{
		db:  db,
		log: baseLog.With("store", "DraftBadgerStore"),
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// OpenBadger opens the draft database under dir, or an in-memory one when dir is empty.
func OpenBadger(dir string) (*badger.DB, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
	}
	opts = opts.WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open draft store: %w", err)
	}
	return db, nil
}

func draftKey(userID int64, flow FlowType) []byte {
	return []byte(draftKeyPrefix + strconv.FormatInt(userID, 10) + ":" + string(flow))
}

func (s *BadgerStore) Save(ctx context.Context, userID int64, flow FlowType, step *int, partial map[string]any) (*Draft, error) {
	if err := checkKey(userID, flow); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *Draft
	err := s.db.Update(func(txn *badger.Txn) error {
		prev, err := s.read(txn, userID, flow)
		if err != nil {
			return err
		}
		out = merge(prev, userID, flow, step, partial, s.now())
		data, err := json.Marshal(out)
		if err != nil {
			return fmt.Errorf("marshal draft: %w", err)
		}
		if err := txn.Set(draftKey(userID, flow), data); err != nil {
			return fmt.Errorf("set draft: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) Load(ctx context.Context, userID int64, flow FlowType) (*Draft, error) {
	if err := checkKey(userID, flow); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *Draft
	err := s.db.View(func(txn *badger.Txn) error {
		d, err := s.read(txn, userID, flow)
		out = d
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) Clear(ctx context.Context, userID int64, flow FlowType) error {
	if err := checkKey(userID, flow); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(draftKey(userID, flow)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete draft: %w", err)
		}
		return nil
	})
}

// read returns nil for a missing, unparseable, or foreign-version draft.
func (s *BadgerStore) read(txn *badger.Txn, userID int64, flow FlowType) (*Draft, error) {
	item, err := txn.Get(draftKey(userID, flow))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	var d Draft
	if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &d) }); err != nil {
		s.log.Warn("discarding unreadable draft", "user_id", userID, "flow_type", flow, "error", err)
		return nil, nil
	}
	if d.Version != DraftVersion {
		s.log.Info("discarding draft with stale version", "user_id", userID, "flow_type", flow, "version", d.Version)
		return nil, nil
	}
	if d.Data == nil {
		d.Data = map[string]any{}
	}
	return &d, nil
}

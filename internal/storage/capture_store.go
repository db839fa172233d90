package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/annel0/protobridge/internal/logging"
	"github.com/annel0/protobridge/internal/protocol/packettype"
	"github.com/annel0/protobridge/internal/protocol/version"
)

var (
	ErrNotReady        = errors.New("storage: хранилище не готово")
	ErrSessionNotFound = errors.New("storage: сессия не найдена")
)

// SessionInfo - заголовок записанной сессии.
type SessionInfo struct {
	ID       uuid.UUID        `json:"id"`
	Revision version.Revision `json:"revision"`
	Started  time.Time        `json:"started"`
}

// Frame - записанный кадр соединения.
type Frame struct {
	Seq       uint64               `json:"seq"`
	Direction packettype.Direction `json:"direction"`
	Time      time.Time            `json:"time"`
	Data      []byte               `json:"data"`
}

// CaptureStore хранит кадры соединений для последующего разбора.
// Ключи: session:<uuid> - заголовок, frame:<uuid>:<seq> - кадры по порядку.
type CaptureStore struct {
	db      *badger.DB
	dbPath  string
	mutex   sync.RWMutex
	isReady bool
	seqs    map[uuid.UUID]*badger.Sequence
	log     *logging.Logger
}

// NewCaptureStore открывает хранилище в каталоге dataPath/capture.
func NewCaptureStore(dataPath string) (*CaptureStore, error) {
	dbPath := filepath.Join(dataPath, "capture")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB
	return openCaptureStore(opts, dbPath)
}

// NewMemoryCaptureStore открывает хранилище в памяти.
func NewMemoryCaptureStore() (*CaptureStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openCaptureStore(opts, "")
}

func openCaptureStore(opts badger.Options, dbPath string) (*CaptureStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}
	return &CaptureStore{
		db:      db,
		dbPath:  dbPath,
		isReady: true,
		seqs:    make(map[uuid.UUID]*badger.Sequence),
		log:     logging.GetCaptureLogger(),
	}, nil
}

// Close освобождает счётчики и закрывает хранилище
func (cs *CaptureStore) Close() error {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	if !cs.isReady {
		return nil
	}
	cs.isReady = false
	for id, seq := range cs.seqs {
		if err := seq.Release(); err != nil {
			cs.log.Warn("ошибка освобождения счётчика сессии %s: %v", id, err)
		}
	}
	cs.seqs = nil
	return cs.db.Close()
}

func sessionKey(id uuid.UUID) []byte {
	return []byte("session:" + id.String())
}

func framePrefix(id uuid.UUID) []byte {
	return []byte("frame:" + id.String() + ":")
}

func frameKey(id uuid.UUID, seq uint64) []byte {
	return []byte(fmt.Sprintf("frame:%s:%020d", id, seq))
}

// BeginSession записывает заголовок сессии.
func (cs *CaptureStore) BeginSession(id uuid.UUID, rev version.Revision) error {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	if !cs.isReady {
		return ErrNotReady
	}
	data, err := json.Marshal(SessionInfo{ID: id, Revision: rev, Started: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("ошибка сериализации сессии: %w", err)
	}
	if err := cs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(id), data)
	}); err != nil {
		return fmt.Errorf("ошибка сохранения сессии в BadgerDB: %w", err)
	}
	if _, ok := cs.seqs[id]; !ok {
		seq, err := cs.db.GetSequence([]byte("seq:"+id.String()), 128)
		if err != nil {
			return fmt.Errorf("ошибка создания счётчика кадров: %w", err)
		}
		cs.seqs[id] = seq
	}
	cs.log.Debug("начата запись сессии %s (%s)", id, rev)
	return nil
}

// Record сохраняет кадр и возвращает его порядковый номер.
func (cs *CaptureStore) Record(id uuid.UUID, dir packettype.Direction, data []byte) (uint64, error) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isReady {
		return 0, ErrNotReady
	}
	seq, ok := cs.seqs[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	n, err := seq.Next()
	if err != nil {
		return 0, fmt.Errorf("ошибка получения номера кадра: %w", err)
	}
	value, err := json.Marshal(Frame{Seq: n, Direction: dir, Time: time.Now().UTC(), Data: data})
	if err != nil {
		return 0, fmt.Errorf("ошибка сериализации кадра: %w", err)
	}
	if err := cs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(frameKey(id, n), value)
	}); err != nil {
		return 0, fmt.Errorf("ошибка сохранения кадра в BadgerDB: %w", err)
	}
	return n, nil
}

// Session возвращает заголовок сессии.
func (cs *CaptureStore) Session(id uuid.UUID) (SessionInfo, error) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isReady {
		return SessionInfo{}, ErrNotReady
	}
	var info SessionInfo
	err := cs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &info)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return SessionInfo{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return SessionInfo{}, fmt.Errorf("ошибка чтения сессии из BadgerDB: %w", err)
	}
	return info, nil
}

// Sessions возвращает заголовки всех записанных сессий.
func (cs *CaptureStore) Sessions() ([]SessionInfo, error) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isReady {
		return nil, ErrNotReady
	}
	var out []SessionInfo
	err := cs.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte("session:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var info SessionInfo
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &info)
			}); err != nil {
				return err
			}
			out = append(out, info)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения сессий из BadgerDB: %w", err)
	}
	return out, nil
}

// Iterate обходит кадры сессии по возрастанию номера. Обход прерывается
// ошибкой visit или отменой ctx.
func (cs *CaptureStore) Iterate(ctx context.Context, id uuid.UUID, visit func(Frame) error) error {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	if !cs.isReady {
		return ErrNotReady
	}
	return cs.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := framePrefix(id)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var f Frame
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &f)
			}); err != nil {
				return fmt.Errorf("ошибка десериализации кадра: %w", err)
			}
			if err := visit(f); err != nil {
				return err
			}
		}
		return nil
	})
}

package ledger

import (
	"context"
	"sync"
	"time"
)

// メモリ実装。単一プロセスの開発・テスト向け。
// 期限切れはLookup時に遅延削除する。
type MemoryLedger struct {
	mu     sync.Mutex
	values map[string][]byte
	expiry map[string]time.Time
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		values: make(map[string][]byte),
		expiry: make(map[string]time.Time),
	}
}

func (l *MemoryLedger) Lookup(_ context.Context, key string) ([]byte, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	exp, ok := l.expiry[key]
	if !ok {
		return nil, false, nil
	}
	if !time.Now().Before(exp) {
		// 期限切れは掃除してミス扱い
		delete(l.values, key)
		delete(l.expiry, key)
		return nil, false, nil
	}

	v, ok := l.values[key]
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

func (l *MemoryLedger) Store(_ context.Context, key string, value []byte, ttl time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.values[key] = value
	l.expiry[key] = time.Now().Add(ttl)
	return nil
}

package repository

import (
	"context"
	"time"
)

// 冪等化用の短TTLキャッシュ。
// あくまでキャッシュであって正ではない（TTL切れ後の再実行はDB側の制約で止める）。
// 値はシリアライズ済みの応答をそのまま入れる。
type IdempotencyLedger interface {
	Lookup(ctx context.Context, key string) ([]byte, bool, error)
	Store(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

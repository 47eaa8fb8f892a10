package testutil

import (
	"Scribe/config"
	"Scribe/dao"
	"Scribe/pkg/database"
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Config 测试配置，数据库为内存 sqlite
func Config(t *testing.T) *config.Config {
	t.Helper()
	conf, err := config.Parse([]byte(`
jwt:
  secret: test-secret
database:
  driver: sqlite
  database: ":memory:"
`))
	require.NoError(t, err)
	return conf
}

// NewDB 建好全部表的内存数据库
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewDB(Config(t))
	require.NoError(t, err)
	require.NoError(t, dao.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewRedis 基于 miniredis 的客户端
func NewRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })
	return rds, mr
}

// MemoryStorage 内存对象存储
type MemoryStorage struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Objects: map[string][]byte{}, Types: map[string]string{}}
}

func (m *MemoryStorage) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = buf.Bytes()
	m.Types[key] = contentType
	return nil
}

func (m *MemoryStorage) URL(_ context.Context, key string) (string, error) {
	return "https://cdn.test/" + key, nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	delete(m.Types, key)
	return nil
}

func (m *MemoryStorage) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Objects[key]
	return ok
}

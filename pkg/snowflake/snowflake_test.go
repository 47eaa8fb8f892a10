package snowflake

import (
	"sync"
	"testing"
)

func TestGenID(t *testing.T) {
	if id := GenID(); id <= 0 {
		t.Fatalf("expected id > 0, got %d", id)
	}
}

// 主键在多个 goroutine 同时插入时不能重复
func TestGenID_ConcurrentUnique(t *testing.T) {
	const (
		workers = 16
		each    = 2000
	)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[int64]struct{}, workers*each)
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]int64, 0, each)
			for i := 0; i < each; i++ {
				local = append(local, GenID())
			}
			mu.Lock()
			for _, id := range local {
				ids[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(ids) != workers*each {
		t.Fatalf("duplicate ids: want %d unique, got %d", workers*each, len(ids))
	}
}

// 按时间排序依赖 ID 单调递增
func TestGenID_Increasing(t *testing.T) {
	prev := GenID()
	for i := 0; i < 1000; i++ {
		curr := GenID()
		if curr <= prev {
			t.Fatalf("ids not increasing: prev=%d curr=%d", prev, curr)
		}
		prev = curr
	}
}

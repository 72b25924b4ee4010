package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// scriptStub satisfies redis.Scripter with an in-memory counter per key,
// mirroring what the limiter script evaluates server-side.
type scriptStub struct {
	counts map[string]int64
	err    error
}

func newScriptStub() *scriptStub {
	return &scriptStub{counts: make(map[string]int64)}
}

func (s *scriptStub) run(keys []string) *redis.Cmd {
	if s.err != nil {
		return redis.NewCmdResult(nil, s.err)
	}
	s.counts[keys[0]]++
	return redis.NewCmdResult(s.counts[keys[0]], nil)
}

func (s *scriptStub) Eval(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return s.run(keys)
}

func (s *scriptStub) EvalSha(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return s.run(keys)
}

func (s *scriptStub) EvalRO(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return s.run(keys)
}

func (s *scriptStub) EvalShaRO(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return s.run(keys)
}

func (s *scriptStub) ScriptExists(context.Context, ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult([]bool{true}, nil)
}

func (s *scriptStub) ScriptLoad(context.Context, string) *redis.StringCmd {
	return redis.NewStringResult("sha", nil)
}

func TestResetLimiter_QuotaBoundary(t *testing.T) {
	l := NewResetLimiter(newScriptStub(), 3, 15*time.Minute)

	for i := 1; i <= 3; i++ {
		allowed, err := l.Allow(context.Background(), "a@x.com")
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if !allowed {
			t.Fatalf("request %d inside the quota was denied", i)
		}
	}

	allowed, err := l.Allow(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("request over quota: %v", err)
	}
	if allowed {
		t.Fatalf("request over the quota was allowed")
	}
}

func TestResetLimiter_KeysIndependent(t *testing.T) {
	l := NewResetLimiter(newScriptStub(), 1, 15*time.Minute)

	if allowed, _ := l.Allow(context.Background(), "a@x.com"); !allowed {
		t.Fatalf("first request for a@x.com denied")
	}
	if allowed, _ := l.Allow(context.Background(), "b@x.com"); !allowed {
		t.Fatalf("b@x.com throttled by a@x.com's quota")
	}
}

func TestResetLimiter_StoreErrorSurfaced(t *testing.T) {
	stub := newScriptStub()
	stub.err = errors.New("connection refused")
	l := NewResetLimiter(stub, 3, 15*time.Minute)

	if _, err := l.Allow(context.Background(), "a@x.com"); err == nil {
		t.Fatalf("expected store error to surface")
	}
}

package asyncx_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/asyncx"
)

func TestRunAwaitTwice(t *testing.T) {
	f := asyncx.Run(func() (int, error) { return 7, nil })
	for i := 0; i < 2; i++ {
		if v, err := f.Await(); v != 7 || err != nil {
			t.Fatalf("Await = %d, %v", v, err)
		}
	}
}

func TestAllSettledKeepsOrder(t *testing.T) {
	boom := errors.New("boom")
	res := asyncx.AllSettled(context.Background(),
		func(context.Context) (string, error) { time.Sleep(5 * time.Millisecond); return "a", nil },
		func(context.Context) (string, error) { return "", boom },
	)
	if len(res) != 2 || !res[0].OK() || res[0].Value != "a" || !errors.Is(res[1].Err, boom) {
		t.Fatalf("res = %+v", res)
	}
}

func TestWithTimeoutExpires(t *testing.T) {
	_, err := asyncx.WithTimeout(context.Background(), 10*time.Millisecond, func(ctx context.Context) (int, error) {
		time.Sleep(200 * time.Millisecond)
		return 1, nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	calls := 0
	v, err := asyncx.RetryWithBackoff(context.Background(), 3, time.Millisecond, func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("flaky")
		}
		return calls, nil
	})
	if err != nil || v != 3 {
		t.Fatalf("v=%d err=%v", v, err)
	}
}

package broadcast

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/m3rciful/hotelbot/internal/model"
)

type staticUsers []model.User

func (u staticUsers) ListAll(ctx context.Context) ([]model.User, error) {
	return u, nil
}

type failingUsers struct{ err error }

func (u failingUsers) ListAll(ctx context.Context) ([]model.User, error) {
	return nil, u.err
}

func makeUsers(n int) staticUsers {
	users := make(staticUsers, n)
	for i := range users {
		users[i] = model.User{TelegramID: int64(i + 1)}
	}
	return users
}

func TestBroadcastAllDelivered(t *testing.T) {
	var delivered []int64
	s := NewScheduler(makeUsers(5), SenderFunc(func(chatID int64, text string) error {
		if text != "hello" {
			t.Fatalf("text = %q", text)
		}
		delivered = append(delivered, chatID)
		return nil
	}), 0)

	result, err := s.Broadcast(context.Background(), "hello")
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if result.Sent != 5 || result.Failed != 0 {
		t.Fatalf("result = %+v", result)
	}
	if result.Errors != nil {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(delivered) != 5 {
		t.Fatalf("delivered = %v", delivered)
	}
}

func TestBroadcastCountsFailures(t *testing.T) {
	s := NewScheduler(makeUsers(6), SenderFunc(func(chatID int64, text string) error {
		if chatID%2 == 0 {
			return fmt.Errorf("blocked by user %d", chatID)
		}
		return nil
	}), 0)

	result, err := s.Broadcast(context.Background(), "hi")
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if result.Sent != 3 || result.Failed != 3 {
		t.Fatalf("result = %+v", result)
	}
	if result.Sent+result.Failed != 6 {
		t.Fatalf("tally does not cover all recipients: %+v", result)
	}
	if result.Errors == nil {
		t.Fatal("expected aggregated errors")
	}
}

func TestBroadcastListFailure(t *testing.T) {
	boom := errors.New("db down")
	s := NewScheduler(failingUsers{err: boom}, SenderFunc(func(int64, string) error {
		t.Fatal("sender must not run when listing fails")
		return nil
	}), 0)

	_, err := s.Broadcast(context.Background(), "hi")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestBroadcastCancelCountsRemainder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	sent := 0
	s := NewScheduler(makeUsers(10), SenderFunc(func(chatID int64, text string) error {
		sent++
		if sent == 3 {
			cancel()
		}
		return nil
	}), 10*time.Millisecond)

	result, err := s.Broadcast(ctx, "hi")
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if result.Sent != 3 {
		t.Fatalf("sent = %d, want 3", result.Sent)
	}
	if result.Sent+result.Failed != 10 {
		t.Fatalf("tally does not cover all recipients: %+v", result)
	}
	if result.Errors == nil {
		t.Fatal("expected the cancellation recorded in errors")
	}
}

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sngm3741/jobboard/api/internal/jobs/application"
	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

func TestGuardUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	guard := NewWithClient(client, 0)
	defer guard.Close()

	if guard.ttl != 24*time.Hour {
		t.Fatalf("default ttl = %s", guard.ttl)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := guard.Reserve(ctx, "k"); !domain.IsKind(err, domain.ErrKindStoreUnavailable) {
		t.Fatalf("Reserve: expected STORE_UNAVAILABLE, got %v", err)
	}
	if err := guard.MarkInserted(ctx, "k", "app"); !domain.IsKind(err, domain.ErrKindStoreUnavailable) {
		t.Fatalf("MarkInserted: expected STORE_UNAVAILABLE, got %v", err)
	}
	if err := guard.Complete(ctx, "k", "app"); !domain.IsKind(err, domain.ErrKindStoreUnavailable) {
		t.Fatalf("Complete: expected STORE_UNAVAILABLE, got %v", err)
	}
	if err := guard.Ping(ctx); err == nil {
		t.Fatal("Ping should fail without a server")
	}
}

func TestReservationFromReply(t *testing.T) {
	tests := []struct {
		name  string
		reply []string
		want  application.Reservation
	}{
		{name: "new key", reply: []string{"reserved", ""}, want: application.Reservation{Reserved: true}},
		{name: "inserted key", reply: []string{"resume", "app-1"}, want: application.Reservation{Reserved: true, ApplicationID: "app-1"}},
		{name: "pending key", reply: []string{"pending", ""}, want: application.Reservation{}},
		{name: "completed key", reply: []string{"done", "app-1"}, want: application.Reservation{ApplicationID: "app-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reservationFromReply(tt.reply)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	for _, reply := range [][]string{nil, {"reserved"}, {"unknown", "x"}} {
		if _, err := reservationFromReply(reply); !domain.IsKind(err, domain.ErrKindStoreUnavailable) {
			t.Fatalf("reply %v: expected STORE_UNAVAILABLE, got %v", reply, err)
		}
	}
}

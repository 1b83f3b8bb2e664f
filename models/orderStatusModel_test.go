package models

import (
	"strings"
	"testing"
	"time"
)

func TestParseOrderStatus(t *testing.T) {
	for _, status := range AllStatuses {
		parsed, err := ParseOrderStatus(string(status))
		if err != nil {
			t.Errorf("ParseOrderStatus(%q) failed: %v", status, err)
		}
		if parsed != status {
			t.Errorf("ParseOrderStatus(%q) = %q", status, parsed)
		}
	}

	for _, raw := range []string{"", "shipped", "PENDING", "done"} {
		if _, err := ParseOrderStatus(raw); err == nil {
			t.Errorf("ParseOrderStatus(%q) should fail", raw)
		}
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusPending, StatusPreparing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusReady, false},
		{StatusPending, StatusCompleted, false},
		{StatusPreparing, StatusReady, true},
		{StatusPreparing, StatusCancelled, true},
		{StatusPreparing, StatusCompleted, false},
		{StatusPreparing, StatusPending, false},
		{StatusReady, StatusCompleted, true},
		{StatusReady, StatusCancelled, false},
		{StatusReady, StatusPreparing, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPreparing, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := map[OrderStatus]bool{
		StatusPending:   false,
		StatusPreparing: false,
		StatusReady:     false,
		StatusCompleted: true,
		StatusCancelled: true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestStampEntrySetsOnce(t *testing.T) {
	order := &Order{}
	first := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	if stamped := order.StampEntry(StatusReady, first); stamped == nil {
		t.Fatal("first entry into ready should stamp readyAt")
	}
	if order.ReadyAt == nil || !order.ReadyAt.Equal(first) {
		t.Fatalf("readyAt = %v, want %v", order.ReadyAt, first)
	}

	if stamped := order.StampEntry(StatusReady, later); stamped != nil {
		t.Error("second entry into ready should not restamp readyAt")
	}
	if !order.ReadyAt.Equal(first) {
		t.Errorf("readyAt changed to %v after repeated entry", order.ReadyAt)
	}
}

func TestStampEntryIgnoresStatusesWithoutTimestamp(t *testing.T) {
	order := &Order{}
	if stamped := order.StampEntry(StatusPreparing, time.Now()); stamped != nil {
		t.Error("preparing has no entry timestamp")
	}
	if order.ReadyAt != nil || order.CompletedAt != nil {
		t.Error("no timestamp fields should be set")
	}
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)
	number := NewOrderNumber(now)

	if !strings.HasPrefix(number, "ORD-20240501-") {
		t.Errorf("order number %q missing date prefix", number)
	}
	suffix := strings.TrimPrefix(number, "ORD-20240501-")
	if len(suffix) != 6 {
		t.Errorf("order number suffix %q should be 6 digits", suffix)
	}
}

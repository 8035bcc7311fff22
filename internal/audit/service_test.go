package audit

import (
	"context"
	"testing"
)

func TestAppend_RequiresActionAndStatus(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.Append(context.Background(), Entry{Status: StatusSuccess}); err == nil {
		t.Fatalf("expected error for missing action")
	}
	if err := svc.Append(context.Background(), Entry{Action: ActionLogin, Status: "ok"}); err == nil {
		t.Fatalf("expected error for invalid status")
	}
}

func TestAppend_FillsIDAndTimestamp(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	err := svc.Append(context.Background(), Entry{
		UserID:    5,
		Username:  "alice",
		Action:    ActionLogin,
		Status:    StatusSuccess,
		IPAddress: "1.2.3.4",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	got := repo.Entries()
	if len(got) != 1 {
		t.Fatalf("expected 1 entry")
	}
	if got[0].ID == "" || got[0].CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp filled: %+v", got[0])
	}
	if got[0].IPAddress != "1.2.3.4" {
		t.Fatalf("expected ip captured")
	}
}

func TestRecord_IsDetachedAndBestEffort(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // the write must survive request cancellation

	svc.Record(ctx, Entry{Username: "alice", Action: ActionLogin, Status: StatusFail})
	svc.Wait()

	if len(repo.Entries()) != 1 {
		t.Fatalf("expected entry recorded despite cancelled request context")
	}
}

func TestRecord_SwallowsInvalidEntries(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	// Must not panic or propagate.
	svc.Record(context.Background(), Entry{})
	svc.Wait()
}

func TestList_Pagination(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	for i := 0; i < 5; i++ {
		if err := svc.Append(context.Background(), Entry{Username: "alice", Action: ActionLogin, Status: StatusSuccess}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, total, err := svc.List(context.Background(), Query{Current: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 || len(got) != 2 {
		t.Fatalf("expected total 5 page of 2, got total=%d len=%d", total, len(got))
	}
}

package postgres

import (
	"context"
	"testing"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/testutil"
)

func TestCatalogRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewCatalogRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)

	roomID := testutil.InsertRoom(t, ctx, pool, "Aula", 10)
	testutil.InsertRoom(t, ctx, pool, "VIP", 8)

	now := at(10, 0)
	testutil.InsertReservation(t, ctx, pool, roomID, "alice", at(8, 0), at(9, 0))
	ongoing := testutil.InsertReservation(t, ctx, pool, roomID, "bob", at(9, 30), at(10, 30))
	later := testutil.InsertReservation(t, ctx, pool, roomID, "alice", at(13, 0), at(14, 0))

	summaries, err := repo.ListRoomSummaries(ctx, now)
	if err != nil {
		t.Fatalf("list summaries: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(summaries))
	}
	for _, s := range summaries {
		want := 0
		if s.ID == roomID {
			want = 2
		}
		if s.UpcomingReservations != want {
			t.Fatalf("room %s: expected %d upcoming, got %d", s.Name, want, s.UpcomingReservations)
		}
	}

	upcoming, err := repo.ListUpcomingByRoom(ctx, roomID, now)
	if err != nil {
		t.Fatalf("list upcoming: %v", err)
	}
	if len(upcoming) != 2 || upcoming[0].ID != ongoing || upcoming[1].ID != later {
		t.Fatalf("unexpected upcoming: %+v", upcoming)
	}

	mine, err := repo.ListReservationsByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != later {
		t.Fatalf("expected newest first, got %+v", mine)
	}

	if _, err := repo.GetRoom(ctx, "not-a-uuid"); err != domain.ErrRoomNotFound {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
	room, err := repo.GetRoom(ctx, roomID)
	if err != nil || room.Name != "Aula" {
		t.Fatalf("unexpected room %+v, err %v", room, err)
	}
}

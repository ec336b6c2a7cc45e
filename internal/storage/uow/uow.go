// Package uow stages reservation writes for stores without native
// transactions. Writes become visible to reads in the same unit of work and
// are applied by the store on commit only.
package uow

import (
	"context"

	"github.com/Daps2831/sistem-reservasi-ruang-rapat/internal/domain"
)

type txKey struct{}

type Tx struct {
	inserts []domain.Reservation
	deletes map[string]struct{}
}

// Begin returns a context carrying a fresh unit of work.
func Begin(ctx context.Context) (context.Context, *Tx) {
	tx := &Tx{deletes: make(map[string]struct{})}
	return context.WithValue(ctx, txKey{}, tx), tx
}

// From returns the unit of work carried by ctx, or nil.
func From(ctx context.Context) *Tx {
	tx, _ := ctx.Value(txKey{}).(*Tx)
	return tx
}

func (t *Tx) Insert(r domain.Reservation) {
	t.inserts = append(t.inserts, r)
}

// Delete stages removal of a committed reservation. Deleting a reservation
// staged in this unit of work just drops the insert; the store never sees it.
func (t *Tx) Delete(id string) {
	for i, r := range t.inserts {
		if r.ID == id {
			t.inserts = append(t.inserts[:i], t.inserts[i+1:]...)
			return
		}
	}
	t.deletes[id] = struct{}{}
}

func (t *Tx) Inserts() []domain.Reservation {
	return append([]domain.Reservation(nil), t.inserts...)
}

func (t *Tx) Deletes() []string {
	ids := make([]string, 0, len(t.deletes))
	for id := range t.deletes {
		ids = append(ids, id)
	}
	return ids
}

func (t *Tx) Deleted(id string) bool {
	_, ok := t.deletes[id]
	return ok
}

// Inserted returns the staged reservation with id, if any.
func (t *Tx) Inserted(id string) (domain.Reservation, bool) {
	for _, r := range t.inserts {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Reservation{}, false
}

// Visible overlays staged writes on committed reservations.
func (t *Tx) Visible(committed []domain.Reservation) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(committed)+len(t.inserts))
	for _, r := range committed {
		if t.Deleted(r.ID) {
			continue
		}
		out = append(out, r)
	}
	return append(out, t.inserts...)
}

package snapshot

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/budget-engine/internal/domain"
)

// CompareSnapshots diffs snapshot id1 (old) against id2 (new). Line items
// present only in id2 are added, only in id1 removed.
func (s *Service) CompareSnapshots(ctx context.Context, id1, id2 uuid.UUID) (*domain.SnapshotComparison, error) {
	older, err := s.snapshots.GetByID(ctx, id1)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", id1, err)
	}
	newer, err := s.snapshots.GetByID(ctx, id2)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", id2, err)
	}
	return compare(older, newer), nil
}

// CompareWithBaseline diffs the budget's baseline against the given snapshot.
func (s *Service) CompareWithBaseline(ctx context.Context, snapshotID uuid.UUID) (*domain.SnapshotComparison, error) {
	snap, err := s.snapshots.GetByID(ctx, snapshotID)
	if err != nil {
		return nil, err
	}

	baseline, err := s.snapshots.GetBaseline(ctx, snap.BudgetID)
	if err != nil {
		return nil, fmt.Errorf("load baseline of budget %s: %w", snap.BudgetID, err)
	}
	return compare(baseline, snap), nil
}

func compare(older, newer *domain.BudgetSnapshot) *domain.SnapshotComparison {
	result := domain.CompareStates(older.Data, newer.Data)
	result.SnapshotID1 = older.ID
	result.SnapshotID2 = newer.ID
	return &result
}

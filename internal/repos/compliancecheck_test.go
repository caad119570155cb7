package repos

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/adcomply/adcomply-backend/internal/types"
)

func seedCheck(t *testing.T, repo ComplianceCheckRepo, userID uuid.UUID, status string, score int) *types.ComplianceCheck {
	t.Helper()
	result, err := json.Marshal(map[string]any{
		"overall_status": status,
		"summary":        "seeded",
		"issues":         []any{},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	row := &types.ComplianceCheck{
		ID:              uuid.New(),
		UserID:          userID,
		ContentText:     "Limited time offer!",
		ContentType:     "text",
		Platform:        "instagram",
		OverallStatus:   status,
		ComplianceScore: score,
		ResultJSON:      datatypes.JSON(result),
	}
	saved, err := repo.Create(context.Background(), nil, row)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return saved
}

func TestComplianceCheckRepo_SaveThenGet(t *testing.T) {
	db := testDB(t)
	repo := NewComplianceCheckRepo(db, testRepoLogger(t))
	userID := uuid.New()

	saved := seedCheck(t, repo, userID, "compliant", 100)

	got, err := repo.GetByID(context.Background(), nil, userID, saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatalf("expected row")
	}
	if got.ContentText != saved.ContentText ||
		got.OverallStatus != saved.OverallStatus ||
		got.ComplianceScore != saved.ComplianceScore ||
		got.Platform != saved.Platform {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, saved)
	}
	if string(got.ResultJSON) == "" {
		t.Fatalf("expected stored verdict json")
	}
}

func TestComplianceCheckRepo_GetScopedToOwner(t *testing.T) {
	db := testDB(t)
	repo := NewComplianceCheckRepo(db, testRepoLogger(t))
	owner := uuid.New()
	saved := seedCheck(t, repo, owner, "compliant", 100)

	got, err := repo.GetByID(context.Background(), nil, uuid.New(), saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("non-owner must not see the row")
	}
}

func TestComplianceCheckRepo_ListNewestFirst(t *testing.T) {
	db := testDB(t)
	repo := NewComplianceCheckRepo(db, testRepoLogger(t))
	userID := uuid.New()

	first := seedCheck(t, repo, userID, "compliant", 100)
	second := seedCheck(t, repo, userID, "non_compliant", 60)

	rows, err := repo.ListByUser(context.Background(), nil, userID, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID != second.ID || rows[1].ID != first.ID {
		t.Fatalf("expected newest first, got %v then %v", rows[0].ID, rows[1].ID)
	}
}

func TestComplianceCheckRepo_ListHonorsLimit(t *testing.T) {
	db := testDB(t)
	repo := NewComplianceCheckRepo(db, testRepoLogger(t))
	userID := uuid.New()
	for i := 0; i < 3; i++ {
		seedCheck(t, repo, userID, "compliant", 100)
	}

	rows, err := repo.ListByUser(context.Background(), nil, userID, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestComplianceCheckRepo_DeleteIdempotentAndScoped(t *testing.T) {
	db := testDB(t)
	repo := NewComplianceCheckRepo(db, testRepoLogger(t))
	owner := uuid.New()
	saved := seedCheck(t, repo, owner, "compliant", 100)

	// A non-owner delete is a silent no-op.
	if err := repo.DeleteByID(context.Background(), nil, uuid.New(), saved.ID); err != nil {
		t.Fatalf("non-owner delete: %v", err)
	}
	got, err := repo.GetByID(context.Background(), nil, owner, saved.ID)
	if err != nil || got == nil {
		t.Fatalf("row must survive a non-owner delete: %v", err)
	}

	if err := repo.DeleteByID(context.Background(), nil, owner, saved.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	got, err = repo.GetByID(context.Background(), nil, owner, saved.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("expected row gone")
	}

	// Deleting again succeeds.
	if err := repo.DeleteByID(context.Background(), nil, owner, saved.ID); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
}

func TestComplianceCheckRepo_UpdateNotes(t *testing.T) {
	db := testDB(t)
	repo := NewComplianceCheckRepo(db, testRepoLogger(t))
	owner := uuid.New()
	saved := seedCheck(t, repo, owner, "compliant", 100)

	matched, err := repo.UpdateNotes(context.Background(), nil, owner, saved.ID, "check with legal")
	if err != nil {
		t.Fatalf("update notes: %v", err)
	}
	if matched != 1 {
		t.Fatalf("expected 1 matched row, got %d", matched)
	}

	got, err := repo.GetByID(context.Background(), nil, owner, saved.ID)
	if err != nil || got == nil {
		t.Fatalf("get: %v", err)
	}
	if got.Notes != "check with legal" {
		t.Fatalf("expected notes updated, got %q", got.Notes)
	}
	// Only notes change.
	if got.OverallStatus != saved.OverallStatus || got.ComplianceScore != saved.ComplianceScore {
		t.Fatalf("notes update must not touch the verdict")
	}

	matched, err = repo.UpdateNotes(context.Background(), nil, uuid.New(), saved.ID, "hijack")
	if err != nil {
		t.Fatalf("update notes: %v", err)
	}
	if matched != 0 {
		t.Fatalf("non-owner update must match nothing, got %d", matched)
	}
}

package services

import (
	"errors"
	"testing"

	"github.com/clubstack/backend/internal/models"
)

func setupTrainingTest(t *testing.T) (*TrainingService, *Scope, *models.Player, *models.Training, *models.TrainingCharacteristic) {
	t.Helper()

	db := newTestDB(t)
	tenantID := seedTenant(t, db, "lions")
	scope := &Scope{UserID: 1, TenantID: tenantID, Role: models.RoleTrainer}

	playerSvc := NewPlayerService(db)
	player := seedPlayer(t, db, playerSvc, scope, "Leo", "Lion")

	svc := NewTrainingService(db)
	training, err := svc.Create(scope, &CreateTrainingRequest{Date: "2026-03-10", Notes: "passing drills"})
	if err != nil {
		t.Fatalf("create training: %v", err)
	}

	char, err := svc.CreateCharacteristic(scope, &CharacteristicRequest{Name: "Passing"})
	if err != nil {
		t.Fatalf("create characteristic: %v", err)
	}

	return svc, scope, player, training, char
}

func TestMarkAttendanceUpserts(t *testing.T) {
	svc, scope, player, training, _ := setupTrainingTest(t)

	first, err := svc.MarkAttendance(scope, training.ID, &MarkAttendanceRequest{
		PlayerID: player.ID,
		Status:   models.AttendanceAbsent,
	})
	if err != nil {
		t.Fatalf("mark attendance: %v", err)
	}

	// Marking the same player again updates the existing row.
	second, err := svc.MarkAttendance(scope, training.ID, &MarkAttendanceRequest{
		PlayerID: player.ID,
		Status:   models.AttendancePresent,
		Notes:    "arrived late",
	})
	if err != nil {
		t.Fatalf("remark attendance: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("remark created new row %s, want update of %s", second.ID, first.ID)
	}
	if second.Status != models.AttendancePresent {
		t.Errorf("status = %s, want present", second.Status)
	}

	sheet, err := svc.ListAttendance(scope, training.ID)
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if len(sheet) != 1 {
		t.Errorf("attendance rows = %d, want 1", len(sheet))
	}
}

func TestMarkAttendanceRejectsUnknownStatus(t *testing.T) {
	svc, scope, player, training, _ := setupTrainingTest(t)

	_, err := svc.MarkAttendance(scope, training.ID, &MarkAttendanceRequest{
		PlayerID: player.ID,
		Status:   "maybe",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestEvaluateRequiresPresence(t *testing.T) {
	svc, scope, player, training, char := setupTrainingTest(t)

	req := &EvaluatePlayerRequest{
		PlayerID:         player.ID,
		CharacteristicID: char.ID,
		Score:            7,
	}

	// No attendance at all.
	if _, err := svc.EvaluatePlayer(scope, training.ID, req); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("no attendance: error = %v, want ErrInvalidInput", err)
	}

	// Absent players cannot be scored either.
	if _, err := svc.MarkAttendance(scope, training.ID, &MarkAttendanceRequest{
		PlayerID: player.ID, Status: models.AttendanceAbsent,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.EvaluatePlayer(scope, training.ID, req); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("absent: error = %v, want ErrInvalidInput", err)
	}

	// Present unlocks evaluation.
	if _, err := svc.MarkAttendance(scope, training.ID, &MarkAttendanceRequest{
		PlayerID: player.ID, Status: models.AttendancePresent,
	}); err != nil {
		t.Fatal(err)
	}
	eval, err := svc.EvaluatePlayer(scope, training.ID, req)
	if err != nil {
		t.Fatalf("evaluate present player: %v", err)
	}
	if eval.Score != 7 {
		t.Errorf("score = %d, want 7", eval.Score)
	}
}

func TestEvaluateUpsertsPerCharacteristic(t *testing.T) {
	svc, scope, player, training, char := setupTrainingTest(t)

	if _, err := svc.MarkAttendance(scope, training.ID, &MarkAttendanceRequest{
		PlayerID: player.ID, Status: models.AttendancePresent,
	}); err != nil {
		t.Fatal(err)
	}

	first, err := svc.EvaluatePlayer(scope, training.ID, &EvaluatePlayerRequest{
		PlayerID: player.ID, CharacteristicID: char.ID, Score: 5,
	})
	if err != nil {
		t.Fatal(err)
	}

	second, err := svc.EvaluatePlayer(scope, training.ID, &EvaluatePlayerRequest{
		PlayerID: player.ID, CharacteristicID: char.ID, Score: 9,
	})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Errorf("rescore created new row, want update")
	}
	if second.Score != 9 {
		t.Errorf("score = %d, want 9", second.Score)
	}

	evals, err := svc.ListEvaluations(scope, training.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(evals) != 1 {
		t.Errorf("evaluations = %d, want 1", len(evals))
	}
}

func TestPlayerScopeSeesOwnRowsOnly(t *testing.T) {
	svc, scope, player, training, char := setupTrainingTest(t)

	teammate := seedPlayer(t, svc.db, NewPlayerService(svc.db), scope, "Max", "Mane")
	for _, p := range []*models.Player{player, teammate} {
		if _, err := svc.MarkAttendance(scope, training.ID, &MarkAttendanceRequest{
			PlayerID: p.ID, Status: models.AttendancePresent,
		}); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.EvaluatePlayer(scope, training.ID, &EvaluatePlayerRequest{
			PlayerID: p.ID, CharacteristicID: char.ID, Score: 6,
		}); err != nil {
			t.Fatal(err)
		}
	}

	playerScope := &Scope{
		UserID:   2,
		TenantID: scope.TenantID,
		Role:     models.RolePlayer,
		PlayerID: &player.ID,
	}

	sheet, err := svc.ListAttendance(playerScope, training.ID)
	if err != nil {
		t.Fatalf("list attendance: %v", err)
	}
	if len(sheet) != 1 || sheet[0].PlayerID != player.ID {
		t.Errorf("attendance rows = %d, want only the caller's own row", len(sheet))
	}

	evals, err := svc.ListEvaluations(playerScope, training.ID)
	if err != nil {
		t.Fatalf("list evaluations: %v", err)
	}
	if len(evals) != 1 || evals[0].PlayerID != player.ID {
		t.Errorf("evaluation rows = %d, want only the caller's own row", len(evals))
	}

	// A player membership with no linked roster entry sees nothing.
	unlinked := &Scope{UserID: 3, TenantID: scope.TenantID, Role: models.RolePlayer}
	sheet, err = svc.ListAttendance(unlinked, training.ID)
	if err != nil {
		t.Fatalf("list attendance unlinked: %v", err)
	}
	if len(sheet) != 0 {
		t.Errorf("unlinked player sees %d attendance rows, want 0", len(sheet))
	}
}

func TestDeleteTrainingCascades(t *testing.T) {
	svc, scope, player, training, char := setupTrainingTest(t)

	if _, err := svc.MarkAttendance(scope, training.ID, &MarkAttendanceRequest{
		PlayerID: player.ID, Status: models.AttendancePresent,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.EvaluatePlayer(scope, training.ID, &EvaluatePlayerRequest{
		PlayerID: player.ID, CharacteristicID: char.ID, Score: 6,
	}); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(scope, training.ID); err != nil {
		t.Fatalf("delete training: %v", err)
	}

	var attendance, evals int64
	svc.db.Model(&models.TrainingAttendance{}).Where("training_id = ?", training.ID).Count(&attendance)
	svc.db.Model(&models.PlayerEvaluation{}).Where("training_id = ?", training.ID).Count(&evals)
	if attendance != 0 || evals != 0 {
		t.Errorf("children left behind: attendance=%d evals=%d", attendance, evals)
	}
}

func TestDeleteCharacteristicInUse(t *testing.T) {
	svc, scope, player, training, char := setupTrainingTest(t)

	if _, err := svc.MarkAttendance(scope, training.ID, &MarkAttendanceRequest{
		PlayerID: player.ID, Status: models.AttendancePresent,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.EvaluatePlayer(scope, training.ID, &EvaluatePlayerRequest{
		PlayerID: player.ID, CharacteristicID: char.ID, Score: 6,
	}); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteCharacteristic(scope, char.ID); !errors.Is(err, ErrConflict) {
		t.Errorf("delete in-use characteristic error = %v, want ErrConflict", err)
	}
}

func TestTrainingListDateFilter(t *testing.T) {
	svc, scope, _, _, _ := setupTrainingTest(t)

	if _, err := svc.Create(scope, &CreateTrainingRequest{Date: "2026-05-01"}); err != nil {
		t.Fatal(err)
	}

	all, err := svc.List(scope, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("all trainings = %d, want 2", len(all))
	}

	may, err := svc.List(scope, &TrainingListRequest{From: "2026-04-01"})
	if err != nil {
		t.Fatal(err)
	}
	if len(may) != 1 {
		t.Errorf("filtered trainings = %d, want 1", len(may))
	}
}

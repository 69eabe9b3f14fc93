package services

import (
	"errors"
	"testing"

	"github.com/clubstack/backend/internal/models"
)

func setupMatchTest(t *testing.T) (*MatchService, *Scope, *models.Player, *models.Match) {
	t.Helper()

	db := newTestDB(t)
	tenantID := seedTenant(t, db, "lions")
	scope := &Scope{UserID: 1, TenantID: tenantID, Role: models.RoleMatchSupervisor}

	playerSvc := NewPlayerService(db)
	player := seedPlayer(t, db, playerSvc, scope, "Leo", "Lion")

	svc := NewMatchService(db)
	match, err := svc.Create(scope, &CreateMatchRequest{
		Date:     "2026-04-18",
		Opponent: "FC Tigers",
		IsHome:   true,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	return svc, scope, player, match
}

func TestMatchScoreRecording(t *testing.T) {
	svc, scope, _, match := setupMatchTest(t)

	if match.Played() {
		t.Error("new match reported as played")
	}

	updated, err := svc.RecordScore(scope, match.ID, &RecordScoreRequest{ScoreUs: 3, ScoreThem: 1})
	if err != nil {
		t.Fatalf("record score: %v", err)
	}
	if !updated.Played() {
		t.Error("scored match not reported as played")
	}
	if *updated.ScoreUs != 3 || *updated.ScoreThem != 1 {
		t.Errorf("score = %d:%d, want 3:1", *updated.ScoreUs, *updated.ScoreThem)
	}
}

func TestRecordStatUpserts(t *testing.T) {
	svc, scope, player, match := setupMatchTest(t)

	first, err := svc.RecordStat(scope, match.ID, &RecordStatRequest{
		PlayerID:      player.ID,
		MinutesPlayed: 45,
		Goals:         1,
		Notes:         "subbed on at half time",
	})
	if err != nil {
		t.Fatalf("record stat: %v", err)
	}

	second, err := svc.RecordStat(scope, match.ID, &RecordStatRequest{
		PlayerID:      player.ID,
		MinutesPlayed: 90,
		Goals:         2,
		Assists:       1,
		Position:      models.PositionForward,
		Notes:         "played the full match",
	})
	if err != nil {
		t.Fatalf("re-record stat: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("re-record created new row, want update")
	}
	if second.MinutesPlayed != 90 || second.Goals != 2 {
		t.Errorf("stat = %d min %d goals, want 90/2", second.MinutesPlayed, second.Goals)
	}

	stats, err := svc.ListStats(scope, match.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 1 {
		t.Errorf("stat lines = %d, want 1", len(stats))
	}
	if stats[0].Notes != "played the full match" {
		t.Errorf("notes = %q, want the re-recorded value", stats[0].Notes)
	}
}

func TestRecordStatValidation(t *testing.T) {
	svc, scope, player, match := setupMatchTest(t)

	if _, err := svc.RecordStat(scope, match.ID, &RecordStatRequest{
		PlayerID: player.ID,
		Position: "sweeper",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad position error = %v, want ErrInvalidInput", err)
	}

	bad := 11
	if _, err := svc.RecordStat(scope, match.ID, &RecordStatRequest{
		PlayerID: player.ID,
		Rating:   &bad,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad rating error = %v, want ErrInvalidInput", err)
	}

	if _, err := svc.RecordStat(scope, match.ID, &RecordStatRequest{
		PlayerID: "no-such-player",
	}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown player error = %v, want ErrNotFound", err)
	}
}

func TestPlayerStatsTotals(t *testing.T) {
	svc, scope, player, match := setupMatchTest(t)

	second, err := svc.Create(scope, &CreateMatchRequest{Date: "2026-04-25", Opponent: "FC Bears"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.RecordStat(scope, match.ID, &RecordStatRequest{
		PlayerID: player.ID, MinutesPlayed: 90, Goals: 2, Assists: 1,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RecordStat(scope, second.ID, &RecordStatRequest{
		PlayerID: player.ID, MinutesPlayed: 60, Goals: 1, YellowCards: 1,
	}); err != nil {
		t.Fatal(err)
	}

	totals, err := svc.PlayerStats(scope, player.ID)
	if err != nil {
		t.Fatalf("player stats: %v", err)
	}
	if totals.Matches != 2 {
		t.Errorf("matches = %d, want 2", totals.Matches)
	}
	if totals.MinutesPlayed != 150 {
		t.Errorf("minutes = %d, want 150", totals.MinutesPlayed)
	}
	if totals.Goals != 3 || totals.Assists != 1 || totals.YellowCards != 1 {
		t.Errorf("totals = %d goals %d assists %d yellows, want 3/1/1",
			totals.Goals, totals.Assists, totals.YellowCards)
	}
}

func TestDeleteMatchCascadesStats(t *testing.T) {
	svc, scope, player, match := setupMatchTest(t)

	if _, err := svc.RecordStat(scope, match.ID, &RecordStatRequest{
		PlayerID: player.ID, MinutesPlayed: 90,
	}); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(scope, match.ID); err != nil {
		t.Fatalf("delete match: %v", err)
	}

	var stats int64
	svc.db.Model(&models.MatchStat{}).Where("match_id = ?", match.ID).Count(&stats)
	if stats != 0 {
		t.Errorf("stat lines left behind: %d", stats)
	}
}

func TestDeleteStat(t *testing.T) {
	svc, scope, player, match := setupMatchTest(t)

	if _, err := svc.RecordStat(scope, match.ID, &RecordStatRequest{
		PlayerID: player.ID, MinutesPlayed: 90,
	}); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteStat(scope, match.ID, player.ID); err != nil {
		t.Fatalf("delete stat: %v", err)
	}
	if err := svc.DeleteStat(scope, match.ID, player.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

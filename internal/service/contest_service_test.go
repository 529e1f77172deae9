package service

import "testing"

func TestLeaderboardWithoutRedisIsEmpty(t *testing.T) {
	svc := NewContestService(nil, nil, nil)

	entries, err := svc.Leaderboard("c1", 10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %d, want 0", len(entries))
	}
}

// file: services/access_service_test.go
package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-bet-tips/models"
	"go-bet-tips/services"
)

func pending(id int, tipType models.TipType) models.Prediction {
	return models.Prediction{
		ID: id, MatchName: "Match", League: "League", Tip: "Tip",
		Odds: "1.80", Kickoff: "2026-09-10T18:00:00Z",
		Type: tipType, Result: models.ResultPending,
	}
}

func settled(id int, result models.Result, kickoff string) models.Prediction {
	return models.Prediction{
		ID: id, MatchName: "Match", League: "League", Tip: "Tip",
		Odds: "1.80", Kickoff: kickoff,
		Type: models.TipFree, Result: result,
	}
}

func TestCanViewTip(t *testing.T) {
	approvedUser := &models.User{Role: models.RoleUser, Status: models.StatusApproved}
	pendingUser := &models.User{Role: models.RoleUser, Status: models.StatusPending}
	pendingAdmin := &models.User{Role: models.RoleAdmin, Status: models.StatusPending}

	// FREE is visible under every session
	assert.True(t, services.CanViewTip(nil, models.TipFree))
	assert.True(t, services.CanViewTip(pendingUser, models.TipFree))
	assert.True(t, services.CanViewTip(approvedUser, models.TipFree))

	// VIP needs an authenticated, approved user
	assert.False(t, services.CanViewTip(nil, models.TipVIP))
	assert.False(t, services.CanViewTip(pendingUser, models.TipVIP))
	assert.True(t, services.CanViewTip(approvedUser, models.TipVIP))

	// role does not grant VIP visibility; only status does
	assert.False(t, services.CanViewTip(pendingAdmin, models.TipVIP))
}

func TestIsAdmin_IgnoresStatus(t *testing.T) {
	assert.True(t, services.IsAdmin(&models.User{Role: models.RoleAdmin, Status: models.StatusPending}))
	assert.False(t, services.IsAdmin(&models.User{Role: models.RoleUser, Status: models.StatusApproved}))
	assert.False(t, services.IsAdmin(nil))
}

func TestMatchOfTheDay_PrefersPendingVip(t *testing.T) {
	preds := []models.Prediction{
		pending(1, models.TipFree),
		pending(2, models.TipVIP),
		pending(3, models.TipVIP),
	}
	motd := services.MatchOfTheDay(preds)
	assert.NotNil(t, motd)
	assert.Equal(t, 2, motd.ID, "first pending VIP wins")
}

func TestMatchOfTheDay_FallsBackToFirstPending(t *testing.T) {
	preds := []models.Prediction{
		settled(1, models.ResultWin, "2026-09-01T18:00:00Z"),
		pending(2, models.TipFree),
	}
	motd := services.MatchOfTheDay(preds)
	assert.NotNil(t, motd)
	assert.Equal(t, 2, motd.ID)
}

func TestMatchOfTheDay_NoneWhenNothingPending(t *testing.T) {
	preds := []models.Prediction{settled(1, models.ResultLoss, "2026-09-01T18:00:00Z")}
	assert.Nil(t, services.MatchOfTheDay(preds))
}

func TestBuildHomeView_ExcludesFeaturedFromSlices(t *testing.T) {
	preds := []models.Prediction{
		pending(1, models.TipVIP), // featured
		pending(2, models.TipVIP),
		pending(3, models.TipFree),
	}
	vip := &models.User{Status: models.StatusApproved}
	view := services.BuildHomeView(preds, vip)

	assert.NotNil(t, view.MatchOfTheDay)
	assert.Equal(t, 1, view.MatchOfTheDay.ID)
	for _, p := range view.VipTips {
		assert.NotEqual(t, 1, p.ID, "the featured match never shows twice")
	}
	assert.Len(t, view.VipTips, 1)
	assert.Len(t, view.FreeTips, 1)
	assert.False(t, view.VipLocked)
}

func TestBuildHomeView_CapsSlicesAtFour(t *testing.T) {
	var preds []models.Prediction
	for i := 1; i <= 10; i++ {
		preds = append(preds, pending(i, models.TipFree))
	}
	view := services.BuildHomeView(preds, nil)
	assert.Len(t, view.FreeTips, 4)
}

func TestBuildHomeView_LocksVipForAnonymous(t *testing.T) {
	preds := []models.Prediction{
		pending(1, models.TipFree),
		pending(2, models.TipVIP),
		pending(3, models.TipVIP),
	}
	view := services.BuildHomeView(preds, nil)
	assert.True(t, view.VipLocked)
	assert.Nil(t, view.VipTips, "no VIP data leaks to anonymous visitors")
}

func TestBuildHomeView_RecentResultsNewestFirst(t *testing.T) {
	preds := []models.Prediction{
		settled(1, models.ResultWin, "2026-09-01T18:00:00Z"),
		settled(2, models.ResultLoss, "2026-09-03T18:00:00Z"),
		settled(3, models.ResultWin, "2026-09-02T18:00:00Z"),
	}
	view := services.BuildHomeView(preds, nil)
	assert.Len(t, view.RecentResults, 3)
	assert.Equal(t, 2, view.RecentResults[0].ID)
	assert.Equal(t, 3, view.RecentResults[1].ID)
	assert.Equal(t, 1, view.RecentResults[2].ID)
}

func TestVipTips_WithheldWithoutApproval(t *testing.T) {
	preds := []models.Prediction{pending(1, models.TipVIP)}

	tips, ok := services.VipTips(preds, nil)
	assert.False(t, ok)
	assert.Nil(t, tips)

	tips, ok = services.VipTips(preds, &models.User{Status: models.StatusApproved})
	assert.True(t, ok)
	assert.Len(t, tips, 1)
}

func TestHistoryView_OnlySettled(t *testing.T) {
	preds := []models.Prediction{
		pending(1, models.TipFree),
		settled(2, models.ResultWin, "2026-09-01T18:00:00Z"),
	}
	history := services.HistoryView(preds)
	assert.Len(t, history, 1)
	assert.Equal(t, 2, history[0].ID)
}

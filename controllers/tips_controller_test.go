// controllers/tips_controller_test.go
package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHome_LoadingBeforeBootstrap(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doJSON(http.MethodGet, "/api/home", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["loading"])
}

func TestHome_ErrorStateAfterFailedBootstrap(t *testing.T) {
	env := setupTestEnv(t)
	env.generator.err = errors.New("upstream down")
	_ = env.ingestion.Run(context.Background())

	w := env.doJSON(http.MethodGet, "/api/home", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["success"])
}

func TestVip_AnonymousGetsAccessPromptNotData(t *testing.T) {
	env := setupTestEnv(t)
	env.bootstrap(t)

	w := env.doJSON(http.MethodGet, "/api/tips/vip", nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["accessRequired"])
	assert.NotContains(t, body, "tips", "VIP data never reaches anonymous visitors")
}

func TestVip_PendingUserStillLocked(t *testing.T) {
	env := setupTestEnv(t)
	env.bootstrap(t)
	cookies := env.registerAndLogin(t, "pending@example.com", "")

	w := env.doJSON(http.MethodGet, "/api/tips/vip", nil, cookies)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestVip_ApprovedUserSeesTips(t *testing.T) {
	env := setupTestEnv(t)
	env.bootstrap(t)
	cookies := env.registerAndLogin(t, "vip@example.com", "")
	assert.NoError(t, env.sessions.ToggleVipStatus("vip@example.com"))

	w := env.doJSON(http.MethodGet, "/api/tips/vip", nil, cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	tips := decodeBody(t, w)["tips"].([]interface{})
	assert.Equal(t, 10, len(tips), "half the stub batch is VIP")
}

func TestFree_VisibleToEveryone(t *testing.T) {
	env := setupTestEnv(t)
	env.bootstrap(t)

	w := env.doJSON(http.MethodGet, "/api/tips/free", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	tips := decodeBody(t, w)["tips"].([]interface{})
	assert.Equal(t, 10, len(tips))
}

// Full scenario: empty store, ingestion bootstraps 20 pending predictions,
// an admin settles one, history shows exactly that one and the home page's
// pending views no longer include it.
func TestScenario_SettleOnePrediction(t *testing.T) {
	env := setupTestEnv(t)
	env.bootstrap(t)
	assert.Equal(t, 20, env.predictions.Count())

	adminCookies := env.registerAndLogin(t, "admin@example.com", env.settings.Get().AdminKey)

	target := env.predictions.List()[0]
	w := env.doJSON(http.MethodPut, fmt.Sprintf("/api/admin/predictions/%d", target.ID),
		map[string]string{"result": "WIN"}, adminCookies)
	assert.Equal(t, http.StatusOK, w.Code)

	// history shows exactly the settled item
	w = env.doJSON(http.MethodGet, "/api/tips/history", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	history := decodeBody(t, w)["tips"].([]interface{})
	assert.Len(t, history, 1)
	settled := history[0].(map[string]interface{})
	assert.Equal(t, float64(target.ID), settled["id"])
	assert.Equal(t, "WIN", settled["result"])

	// the home page's pending sections exclude it
	w = env.doJSON(http.MethodGet, "/api/home", nil, adminCookies)
	home := decodeBody(t, w)["home"].(map[string]interface{})
	for _, key := range []string{"freeTips", "vipTips"} {
		list, ok := home[key].([]interface{})
		if !ok {
			continue
		}
		for _, item := range list {
			assert.NotEqual(t, float64(target.ID), item.(map[string]interface{})["id"])
		}
	}
	if motd, ok := home["matchOfTheDay"].(map[string]interface{}); ok {
		assert.NotEqual(t, float64(target.ID), motd["id"])
	}
}

func TestHome_VipSliceLockedForAnonymous(t *testing.T) {
	env := setupTestEnv(t)
	env.bootstrap(t)

	w := env.doJSON(http.MethodGet, "/api/home", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	home := decodeBody(t, w)["home"].(map[string]interface{})
	assert.Equal(t, true, home["vipLocked"])
	_, hasVip := home["vipTips"]
	assert.False(t, hasVip, "the VIP slice is omitted entirely")
	assert.NotNil(t, home["matchOfTheDay"], "the featured match teaser still renders")
}

func TestHistory_EmptyWhileAllPending(t *testing.T) {
	env := setupTestEnv(t)
	env.bootstrap(t)

	w := env.doJSON(http.MethodGet, "/api/tips/history", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	tips := decodeBody(t, w)["tips"].([]interface{})
	assert.Empty(t, tips)
}

// Package services - services/access_service.go
//
// The access-control engine. Every function here is a pure decision over
// (current user, content); nothing is cached between calls.
package services

import (
	"sort"
	"time"

	"go-bet-tips/models"
)

// homeSliceSize caps each home page section.
const homeSliceSize = 4

// CanViewTip decides whether a visitor may see a tip of the given type.
// FREE is visible to everyone. VIP needs an authenticated, approved user;
// the rule checks status only, never role.
func CanViewTip(user *models.User, t models.TipType) bool {
	switch t {
	case models.TipFree:
		return true
	case models.TipVIP:
		return user != nil && user.Status == models.StatusApproved
	}
	return false
}

// IsVip reports whether the visitor has VIP visibility.
func IsVip(user *models.User) bool {
	return user != nil && user.Status == models.StatusApproved
}

// IsAdmin gates the management surfaces. Status is never consulted here.
func IsAdmin(user *models.User) bool {
	return user != nil && user.Role == models.RoleAdmin
}

// MatchOfTheDay picks the single featured prediction: among pending ones,
// the first VIP tip, else the first pending tip, else nothing.
func MatchOfTheDay(predictions []models.Prediction) *models.Prediction {
	var firstPending *models.Prediction
	for i := range predictions {
		p := predictions[i]
		if p.Result != models.ResultPending {
			continue
		}
		if p.Type == models.TipVIP {
			return &p
		}
		if firstPending == nil {
			firstPending = &p
		}
	}
	return firstPending
}

// HomeView is the composed home page payload.
type HomeView struct {
	MatchOfTheDay *models.Prediction  `json:"matchOfTheDay"`
	FreeTips      []models.Prediction `json:"freeTips"`
	VipTips       []models.Prediction `json:"vipTips,omitempty"`
	VipLocked     bool                `json:"vipLocked"`
	RecentResults []models.Prediction `json:"recentResults"`
}

// BuildHomeView assembles the home page: the featured match, up to four
// pending tips of each type (the featured one excluded so it never shows
// twice), and the four most recently kicked-off settled results. The VIP
// slice is withheld from non-VIP viewers.
func BuildHomeView(predictions []models.Prediction, user *models.User) HomeView {
	motd := MatchOfTheDay(predictions)
	motdID := 0
	if motd != nil {
		motdID = motd.ID
	}

	view := HomeView{MatchOfTheDay: motd}
	for _, p := range predictions {
		if p.Result != models.ResultPending || p.ID == motdID {
			continue
		}
		switch p.Type {
		case models.TipFree:
			if len(view.FreeTips) < homeSliceSize {
				view.FreeTips = append(view.FreeTips, p)
			}
		case models.TipVIP:
			if len(view.VipTips) < homeSliceSize {
				view.VipTips = append(view.VipTips, p)
			}
		}
	}

	settled := HistoryView(predictions)
	sort.SliceStable(settled, func(i, j int) bool {
		return kickoffTime(settled[i]).After(kickoffTime(settled[j]))
	})
	if len(settled) > homeSliceSize {
		settled = settled[:homeSliceSize]
	}
	view.RecentResults = settled

	if !IsVip(user) {
		view.VipTips = nil
		view.VipLocked = true
	}
	return view
}

// FreeTips returns all FREE predictions.
func FreeTips(predictions []models.Prediction) []models.Prediction {
	out := []models.Prediction{}
	for _, p := range predictions {
		if p.Type == models.TipFree {
			out = append(out, p)
		}
	}
	return out
}

// VipTips returns all VIP predictions, or nil with ok=false when the
// visitor has no VIP access. Callers must render an access prompt in that
// case, never the data.
func VipTips(predictions []models.Prediction, user *models.User) ([]models.Prediction, bool) {
	if !IsVip(user) {
		return nil, false
	}
	out := []models.Prediction{}
	for _, p := range predictions {
		if p.Type == models.TipVIP {
			out = append(out, p)
		}
	}
	return out, true
}

// HistoryView returns every settled prediction.
func HistoryView(predictions []models.Prediction) []models.Prediction {
	out := []models.Prediction{}
	for _, p := range predictions {
		if p.Result != models.ResultPending {
			out = append(out, p)
		}
	}
	return out
}

// kickoffTime parses the kickoff for ordering only. Unparsable kickoffs
// sort to the end; the string itself is never rewritten.
func kickoffTime(p models.Prediction) time.Time {
	t, err := time.Parse(time.RFC3339, p.Kickoff)
	if err != nil {
		return time.Time{}
	}
	return t
}

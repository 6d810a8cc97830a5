package httptransport

import (
	"net/http"
	"time"

	"stablehand/internal/access"
	"stablehand/internal/domain"
	"stablehand/internal/gateway"
	"stablehand/internal/schedule"
	"stablehand/pkg/platform/httputil"
)

// Views are the wire shapes for reads. Domain structs never leak onto the
// wire directly so the JSON contract can evolve independently of the model.

type userView struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:          u.ID.String(),
		DisplayName: u.DisplayName,
		Phone:       u.Phone,
		Location:    u.Location,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

type eventVisibilityView struct {
	Feeding     bool `json:"feeding"`
	Cleaning    bool `json:"cleaning"`
	RiderAway   bool `json:"rider_away"`
	FarrierAway bool `json:"farrier_away"`
	VetAway     bool `json:"vet_away"`
	Evening     bool `json:"evening"`
}

func toEventVisibilityView(v domain.EventVisibility) eventVisibilityView {
	return eventVisibilityView{
		Feeding:     v.Feeding,
		Cleaning:    v.Cleaning,
		RiderAway:   v.RiderAway,
		FarrierAway: v.FarrierAway,
		VetAway:     v.VetAway,
		Evening:     v.Evening,
	}
}

type stableView struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Location        string              `json:"location,omitempty"`
	EventVisibility eventVisibilityView `json:"event_visibility"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func toStableView(s *domain.Stable) stableView {
	return stableView{
		ID:              s.ID.String(),
		Name:            s.Name,
		Location:        s.Location,
		EventVisibility: toEventVisibilityView(s.Settings.EventVisibility),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

type membershipView struct {
	UserID       string    `json:"user_id"`
	StableID     string    `json:"stable_id"`
	Role         string    `json:"role"`
	CustomRole   string    `json:"custom_role,omitempty"`
	Access       string    `json:"access"`
	DisplayLabel string    `json:"display_label"`
	GrantedAt    time.Time `json:"granted_at"`
}

func toMembershipView(m domain.Membership) membershipView {
	return membershipView{
		UserID:       m.UserID.String(),
		StableID:     m.StableID.String(),
		Role:         m.Role.String(),
		CustomRole:   m.CustomRole,
		Access:       m.Access.String(),
		DisplayLabel: access.DisplayLabel(m),
		GrantedAt:    m.GrantedAt,
	}
}

type paddockImageView struct {
	Data []byte `json:"data,omitempty"`
	MIME string `json:"mime,omitempty"`
	URI  string `json:"uri,omitempty"`
}

type paddockView struct {
	ID        string            `json:"id"`
	StableID  string            `json:"stable_id"`
	Name      string            `json:"name"`
	Season    string            `json:"season"`
	Horses    []string          `json:"horses"`
	Image     *paddockImageView `json:"image,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func toPaddockView(p *domain.Paddock) paddockView {
	v := paddockView{
		ID:        p.ID.String(),
		StableID:  p.StableID.String(),
		Name:      p.Name,
		Season:    string(p.Season),
		Horses:    p.Horses,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Image != nil {
		v.Image = &paddockImageView{Data: p.Image.Data, MIME: p.Image.MIME, URI: p.Image.URI}
	}
	return v
}

type assignmentView struct {
	ID        string    `json:"id"`
	StableID  string    `json:"stable_id"`
	Date      string    `json:"date"`
	Slot      string    `json:"slot"`
	Task      string    `json:"task"`
	Assignee  string    `json:"assignee,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toAssignmentView(a *domain.Assignment) assignmentView {
	return assignmentView{
		ID:        a.ID.String(),
		StableID:  a.StableID.String(),
		Date:      string(a.Date),
		Slot:      string(a.Slot),
		Task:      string(a.Task),
		Assignee:  a.Assignee,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type dayGroupView struct {
	Date        string           `json:"date"`
	Heading     string           `json:"heading"`
	ChipLabel   string           `json:"chip_label"`
	Assignments []assignmentView `json:"assignments"`
}

func toDayGroupView(g schedule.DayGroup) dayGroupView {
	v := dayGroupView{
		Date:        string(g.Date),
		Heading:     schedule.DayHeading(g.Date),
		ChipLabel:   schedule.ChipLabel(g.Date),
		Assignments: make([]assignmentView, 0, len(g.Assignments)),
	}
	for _, a := range g.Assignments {
		v.Assignments = append(v.Assignments, toAssignmentView(a))
	}
	return v
}

type capabilitiesView struct {
	Access                string `json:"access"`
	CanView               bool   `json:"can_view"`
	CanEditSchedule       bool   `json:"can_edit_schedule"`
	CanManagePaddocks     bool   `json:"can_manage_paddocks"`
	CanManageMembers      bool   `json:"can_manage_members"`
	CanEditStableSettings bool   `json:"can_edit_stable_settings"`
	CanManageOnboarding   bool   `json:"can_manage_onboarding"`
}

func toCapabilitiesView(c access.Capabilities) capabilitiesView {
	return capabilitiesView{
		Access:                c.Access.String(),
		CanView:               c.CanView,
		CanEditSchedule:       c.CanEditSchedule,
		CanManagePaddocks:     c.CanManagePaddocks,
		CanManageMembers:      c.CanManageMembers,
		CanEditStableSettings: c.CanEditStableSettings,
		CanManageOnboarding:   c.CanManageOnboarding,
	}
}

// resultEnvelope is the uniform mutation response. Expected business
// failures ride back with a 4xx status but keep the same shape as success.
type resultEnvelope struct {
	OK     bool   `json:"ok"`
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason,omitempty"`
	Data   any    `json:"data,omitempty"`
}

func writeResult(w http.ResponseWriter, res gateway.Result, data any) {
	if !res.OK {
		httputil.WriteJSON(w, httputil.StatusFor(res.Code), resultEnvelope{
			OK:     false,
			Code:   string(res.Code),
			Reason: res.Reason,
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resultEnvelope{OK: true, Data: data})
}

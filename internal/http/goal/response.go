package goal

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finsight/internal/goal"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
)

type goalResponse struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	TargetAmount  string        `json:"target_amount"`
	CurrentAmount string        `json:"current_amount"`
	Percentage    string        `json:"progress_percentage"`
	Achieved      bool          `json:"achieved"`
	StartDate     respond.Date  `json:"start_date"`
	EndDate       *respond.Date `json:"end_date,omitempty"`
	CategoryID    *uuid.UUID    `json:"category_id,omitempty"`
	CategoryName  string        `json:"category_name,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     *time.Time    `json:"updated_at,omitempty"`
}

func toResponse(g *goal.Goal) goalResponse {
	resp := goalResponse{
		ID:            g.ID,
		Name:          g.Name,
		Description:   g.Description,
		TargetAmount:  respond.Money(g.TargetAmount),
		CurrentAmount: respond.Money(g.CurrentAmount),
		Percentage:    respond.Money(g.ProgressPercentage()),
		Achieved:      g.Achieved,
		StartDate:     respond.NewDate(g.StartDate),
		CategoryID:    g.CategoryID,
		CategoryName:  g.CategoryName(),
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}

	if g.EndDate != nil {
		resp.EndDate = new(respond.NewDate(*g.EndDate))
	}

	return resp
}

func toResponseList(goals []*goal.Goal) []goalResponse {
	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toResponse(g)
	}

	return resp
}

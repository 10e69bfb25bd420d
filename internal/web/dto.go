package web

import (
	"time"

	"goalcal/internal/model"
	"goalcal/internal/render"
)

type goalsResponse struct {
	Version  uint64        `json:"version"`
	LoadedAt time.Time     `json:"loaded_at"`
	Goals    []*model.Goal `json:"goals"`
}

type hitResponse struct {
	Hit  bool            `json:"hit"`
	Goal *model.Goal     `json:"goal,omitempty"`
	Bar  *render.BarJSON `json:"bar,omitempty"`
}

package minter

import (
	"github.com/feral-file/ff-minter/internal/domain"
)

// StageController holds the current sale stage. Every stage is reachable from
// every other one and nothing advances it automatically.
type StageController struct {
	stage domain.Stage
}

// NewStageController creates a controller in the paused stage
func NewStageController() *StageController {
	return &StageController{stage: domain.StagePaused}
}

// Current returns the active stage
func (s *StageController) Current() domain.Stage {
	return s.stage
}

// Set switches to the given stage
func (s *StageController) Set(stage domain.Stage) error {
	if !stage.Valid() {
		return domain.ErrInvalidStage
	}
	s.stage = stage
	return nil
}

// Require fails with ErrWrongStage unless the active stage is expected
func (s *StageController) Require(expected domain.Stage) error {
	if s.stage != expected {
		return domain.ErrWrongStage
	}
	return nil
}

package domain

import (
	"time"

	"github.com/framehaus/StudioBookingService/pkg/types"
)

// ScheduleConfig represents the scheduling configuration for a studio.
// Supports hierarchical configuration:
// 1. Layout-specific (studio_id, layout_id)
// 2. Studio-wide (studio_id, NULL)
type ScheduleConfig struct {
	ID                     int64
	StudioID               int64
	LayoutID               *int64 // NULL = config for all layouts of the studio
	OperatingStartTime     types.TimeString
	OperatingEndTime       types.TimeString
	SlotGapMinutes         int
	SessionDurationMinutes *int // configured package duration; NULL = fall back to booking duration
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// DefaultScheduleConfig returns the configuration applied when a studio has no
// stored configuration. Every caller resolving a schedule must fall back to
// this single constructor so defaults cannot drift between code paths.
func DefaultScheduleConfig(studioID int64) *ScheduleConfig {
	return &ScheduleConfig{
		StudioID:           studioID,
		OperatingStartTime: DefaultOperatingStartTime,
		OperatingEndTime:   DefaultOperatingEndTime,
		SlotGapMinutes:     DefaultSlotGapMinutes,
	}
}

// IsStudioWide returns true if this is a studio-wide configuration (not layout-specific)
func (c *ScheduleConfig) IsStudioWide() bool {
	return c.LayoutID == nil
}

// IsLayoutSpecific returns true if this configuration is for a specific layout
func (c *ScheduleConfig) IsLayoutSpecific() bool {
	return c.LayoutID != nil
}

// Window returns the operating window described by this configuration
func (c *ScheduleConfig) Window() OperatingWindow {
	return OperatingWindow{
		StartTime:      c.OperatingStartTime,
		EndTime:        c.OperatingEndTime,
		SlotGapMinutes: c.SlotGapMinutes,
	}
}

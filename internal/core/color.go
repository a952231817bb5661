package core

// Color is a palette slot for a screen cell.
// The platform layer decides the actual terminal color for each slot, so the
// same arena can be themed per phase without touching the simulation.
type Color uint8

// Palette slots used by the arena renderer.
const (
	ColorDefault Color = iota
	ColorFrame
	ColorText
	ColorDim
	ColorPlayer
	ColorStunned
	ColorGood     // items that raise a stat
	ColorBad      // items that drain a stat
	ColorMixed    // items whose outcome is a coin flip
	ColorObstacle // stationary blockers
	ColorPopupGood
	ColorPopupBad
	ColorPopupNeutral
	ColorWarning
	ColorCountdown
)

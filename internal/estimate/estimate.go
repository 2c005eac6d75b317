// Package estimate maps wall dimensions or a house preset to a bill of
// materials (blocks, cement, sand, build days). Constants come from the
// yields the factories quote, not from the catalogue.
package estimate

import "math"

const (
	blockFaceArea     = 0.08  // m² of wall face per block
	breakageAllowance = 1.05  // flat 5% regardless of block type
	sandTonsPerBlock  = 0.009 // tonnes of sand per block produced
	blocksPerCrewDay  = 400
)

// Blocks producible per bag of cement, by block size (inches).
var cementYield = map[string]int{
	"5": 65,
	"6": 55,
	"8": 42,
}

type Estimate struct {
	AreaSqm       float64 `json:"areaSqm"`
	BlocksNeeded  int     `json:"blocksNeeded"`
	BagsOfCement  int     `json:"bagsOfCement"`
	SandTons      float64 `json:"sandTons"`
	EstimatedDays int     `json:"estimatedDays"`
}

type Preset struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Blocks  int     `json:"blocks"`
	AreaSqm float64 `json:"areaSqm"`
}

// Preset block counts are fixed per house size; only the derived cement,
// sand and day figures vary with block type.
var presets = []Preset{
	{ID: "3bed", Label: "3-Bedroom House", Blocks: 3200, AreaSqm: 145},
	{ID: "4bed", Label: "4-Bedroom House", Blocks: 4500, AreaSqm: 190},
	{ID: "5bed", Label: "5-Bedroom House", Blocks: 5800, AreaSqm: 240},
}

// Presets returns the preset table for listing.
func Presets() []Preset { return presets }

func yieldFor(blockType string) int {
	if y, ok := cementYield[blockType]; ok {
		return y
	}
	return cementYield["6"]
}

func derive(blocks int, blockType string, area float64) Estimate {
	bags := int(math.Ceil(float64(blocks) / float64(yieldFor(blockType))))
	sand := math.Round(float64(blocks)*sandTonsPerBlock*10) / 10
	days := int(math.Ceil(float64(blocks) / blocksPerCrewDay))
	return Estimate{
		AreaSqm:       area,
		BlocksNeeded:  blocks,
		BagsOfCement:  bags,
		SandTons:      sand,
		EstimatedDays: days,
	}
}

// FromWall estimates materials for a single wall face.
func FromWall(lengthM, heightM float64, blockType string) Estimate {
	area := lengthM * heightM
	blocks := int(math.Ceil(area / blockFaceArea * breakageAllowance))
	return derive(blocks, blockType, area)
}

// FromPreset estimates materials for a named house preset. An unknown
// preset id falls back to the first preset rather than erroring.
func FromPreset(presetID, blockType string) Estimate {
	p := presets[0]
	for _, cand := range presets {
		if cand.ID == presetID {
			p = cand
			break
		}
	}
	return derive(p.Blocks, blockType, p.AreaSqm)
}

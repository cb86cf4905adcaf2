package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sitewire-labs/cableroute/internal/core/domain"
	"github.com/sitewire-labs/cableroute/internal/core/ports/driving"
)

// File formats accepted by the commands. These mirror the export
// format of the sketching tool; the domain types stay free of
// serialization concerns.

type pointInput struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type lineInput struct {
	ID          string       `json:"id"`
	Points      []pointInput `json:"points"`
	Encoded     string       `json:"encoded,omitempty"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	CableType   string       `json:"cable_type"`
	Diameter    float64      `json:"diameter"`
	StartHeight float64      `json:"start_height"`
	EndHeight   float64      `json:"end_height"`
}

type sketchInput struct {
	Scale struct {
		PixelDistance float64 `json:"pixel_distance"`
		RealDistance  float64 `json:"real_distance"`
		Ratio         float64 `json:"ratio"`
	} `json:"scale"`
	Lines []lineInput `json:"lines"`
}

type objectInput struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Discipline string  `json:"discipline"`
	Position   struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
	} `json:"position"`
	Dimensions struct {
		Width  float64 `json:"width"`
		Depth  float64 `json:"depth"`
		Height float64 `json:"height"`
	} `json:"dimensions"`
	Rotation float64 `json:"rotation"`
	Visible  bool    `json:"visible"`
}

type obstacleInput struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func loadSketch(path string) ([]domain.SupplyLine, domain.ScaleInfo, error) {
	var input sketchInput
	if err := readJSONFile(path, &input); err != nil {
		return nil, domain.ScaleInfo{}, err
	}

	scale := domain.ScaleInfo{
		PixelDistance: input.Scale.PixelDistance,
		RealDistance:  input.Scale.RealDistance,
		Ratio:         input.Scale.Ratio,
	}
	if scale.Ratio == 0 && input.Scale.PixelDistance > 0 {
		scale.Ratio = input.Scale.RealDistance / input.Scale.PixelDistance
	}

	lines := make([]domain.SupplyLine, 0, len(input.Lines))
	for _, l := range input.Lines {
		line := domain.SupplyLine{
			ID:          l.ID,
			From:        l.From,
			To:          l.To,
			CableType:   domain.CableTypeFromString(l.CableType),
			Diameter:    l.Diameter,
			StartHeight: l.StartHeight,
			EndHeight:   l.EndHeight,
		}
		if l.Encoded != "" {
			points, err := converterService.ParseEncodedLine(l.Encoded)
			if err != nil {
				return nil, domain.ScaleInfo{}, fmt.Errorf("line %s: %w", l.ID, err)
			}
			line.Points = points
		} else {
			for _, p := range l.Points {
				line.Points = append(line.Points, domain.Point2D{X: p.X, Y: p.Y})
			}
		}
		lines = append(lines, line)
	}
	return lines, scale, nil
}

func loadObjects(path string) ([]domain.BIMObject, error) {
	var input []objectInput
	if err := readJSONFile(path, &input); err != nil {
		return nil, err
	}

	objects := make([]domain.BIMObject, 0, len(input))
	for _, o := range input {
		objects = append(objects, domain.BIMObject{
			ID:         o.ID,
			Name:       o.Name,
			Type:       domain.BIMObjectType(o.Type),
			Discipline: domain.Discipline(o.Discipline),
			Position:   domain.Point3D{X: o.Position.X, Y: o.Position.Y, Z: o.Position.Z},
			Dimensions: domain.Dimensions{
				Width:  o.Dimensions.Width,
				Depth:  o.Dimensions.Depth,
				Height: o.Dimensions.Height,
			},
			Rotation: o.Rotation,
			Visible:  o.Visible,
		})
	}
	return objects, nil
}

func loadObstacles(path string) ([]driving.Obstacle, error) {
	var input []obstacleInput
	if err := readJSONFile(path, &input); err != nil {
		return nil, err
	}

	obstacles := make([]driving.Obstacle, 0, len(input))
	for _, o := range input {
		obstacles = append(obstacles, driving.Obstacle{
			X:      o.X,
			Y:      o.Y,
			Width:  o.Width,
			Height: o.Height,
		})
	}
	return obstacles, nil
}

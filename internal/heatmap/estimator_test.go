package heatmap

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var surface800x600 = SurfaceDimensions{Width: 800, Height: 600}

func TestEstimateIntensityScenario(t *testing.T) {
	sources := []SourcePoint{{X: 0.5, Y: 0.5, Pressure: 0.9, InfluenceRadius: 0.15}}

	assert.Equal(t, 0.9, EstimateIntensity(r2.Point{X: 400, Y: 300}, sources, surface800x600))
	assert.Equal(t, 0.0, EstimateIntensity(r2.Point{X: 0, Y: 0}, sources, surface800x600))
}

func TestEstimateIntensityEmptySources(t *testing.T) {
	positions := []r2.Point{{X: 0, Y: 0}, {X: 400, Y: 300}, {X: -50, Y: 1e6}}
	for _, p := range positions {
		assert.Equal(t, 0.0, EstimateIntensity(p, nil, surface800x600))
		assert.Equal(t, 0.0, EstimateIntensity(p, []SourcePoint{}, surface800x600))
	}
}

func TestEstimateIntensityHardCutoff(t *testing.T) {
	surface := SurfaceDimensions{Width: 100, Height: 100}
	sources := []SourcePoint{{X: 0.5, Y: 0.5, Pressure: 0.7, InfluenceRadius: 0.1}}

	// exactly at the influence distance contributes nothing
	assert.Equal(t, 0.0, EstimateIntensity(r2.Point{X: 60, Y: 50}, sources, surface))
	assert.Equal(t, 0.0, EstimateIntensity(r2.Point{X: 75, Y: 50}, sources, surface))
	assert.InDelta(t, 0.7, EstimateIntensity(r2.Point{X: 59, Y: 50}, sources, surface), 1e-12)
}

func TestEstimateIntensityOutsideSurface(t *testing.T) {
	sources := []SourcePoint{NewSourcePoint(0, 0, 0.8)}

	// influence distance is 90, so a point just off the corner still sees the source
	v := EstimateIntensity(r2.Point{X: -10, Y: -10}, sources, surface800x600)
	assert.InDelta(t, 0.8, v, 1e-12)
	assert.Equal(t, 0.0, EstimateIntensity(r2.Point{X: -100, Y: -100}, sources, surface800x600))
}

func TestEstimateIntensityIsWeightedAverage(t *testing.T) {
	sources := []SourcePoint{
		NewSourcePoint(0.5, 0.5, 0.6),
		NewSourcePoint(0.52, 0.5, 0.6),
	}

	v := EstimateIntensity(r2.Point{X: 404, Y: 300}, sources, surface800x600)
	assert.InDelta(t, 0.6, v, 1e-12)
}

func TestEstimateIntensityNearerSourceDominates(t *testing.T) {
	sources := []SourcePoint{
		NewSourcePoint(0.5, 0.5, 0.2),
		NewSourcePoint(0.55, 0.5, 1.0),
	}

	nearLow := EstimateIntensity(r2.Point{X: 402, Y: 300}, sources, surface800x600)
	nearHigh := EstimateIntensity(r2.Point{X: 438, Y: 300}, sources, surface800x600)

	assert.Less(t, nearLow, 0.6)
	assert.Greater(t, nearHigh, 0.6)
}

func TestEstimateIntensityBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		n := rng.Intn(12)
		sources := make([]SourcePoint, n)
		for j := range sources {
			sources[j] = SourcePoint{
				X:               rng.Float64(),
				Y:               rng.Float64(),
				Pressure:        rng.Float64(),
				InfluenceRadius: 0.01 + rng.Float64()*0.99,
			}
		}
		pos := r2.Point{X: rng.Float64()*1000 - 100, Y: rng.Float64()*800 - 100}

		v := EstimateIntensity(pos, sources, surface800x600)
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0+1e-12)
	}
}

func TestEstimateIntensityOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sources := make([]SourcePoint, 9)
	for i := range sources {
		sources[i] = SourcePoint{
			X:               0.4 + rng.Float64()*0.2,
			Y:               0.4 + rng.Float64()*0.2,
			Pressure:        rng.Float64(),
			InfluenceRadius: 0.2 + rng.Float64()*0.3,
		}
	}
	pos := r2.Point{X: 410, Y: 290}
	want := EstimateIntensity(pos, sources, surface800x600)
	require.Greater(t, want, 0.0)

	for i := 0; i < 20; i++ {
		shuffled := append([]SourcePoint(nil), sources...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.InDelta(t, want, EstimateIntensity(pos, shuffled, surface800x600), 1e-12)
	}
}

func TestEstimateIntensityConcurrent(t *testing.T) {
	sources := []SourcePoint{NewSourcePoint(0.5, 0.5, 0.9), NewSourcePoint(0.3, 0.9, 0.4)}
	pos := r2.Point{X: 410, Y: 310}
	want := EstimateIntensity(pos, sources, surface800x600)

	var wg sync.WaitGroup
	results := make([]float64, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = EstimateIntensity(pos, sources, surface800x600)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want, r)
	}
}

func TestSourcePointValidate(t *testing.T) {
	tests := []struct {
		name    string
		point   SourcePoint
		wantErr bool
	}{
		{"default radius", NewSourcePoint(0.5, 0.5, 0.5), false},
		{"full radius", SourcePoint{X: 1, Y: 0, Pressure: 1, InfluenceRadius: 1}, false},
		{"zero radius", SourcePoint{X: 0.5, Y: 0.5, Pressure: 0.5}, true},
		{"negative radius", SourcePoint{X: 0.5, Y: 0.5, Pressure: 0.5, InfluenceRadius: -0.1}, true},
		{"radius above one", SourcePoint{X: 0.5, Y: 0.5, Pressure: 0.5, InfluenceRadius: 1.5}, true},
		{"pressure above one", SourcePoint{X: 0.5, Y: 0.5, Pressure: 1.2, InfluenceRadius: 0.15}, true},
		{"x outside", SourcePoint{X: -0.1, Y: 0.5, Pressure: 0.5, InfluenceRadius: 0.15}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.point.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSource)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSurfaceDimensionsValidate(t *testing.T) {
	assert.NoError(t, surface800x600.Validate())
	assert.ErrorIs(t, SurfaceDimensions{Width: 0, Height: 10}.Validate(), ErrInvalidSurface)
	assert.ErrorIs(t, SurfaceDimensions{Width: 10, Height: -1}.Validate(), ErrInvalidSurface)
	assert.ErrorIs(t, SurfaceDimensions{Width: math.NaN(), Height: 10}.Validate(), ErrInvalidSurface)
	assert.Equal(t, 600.0, surface800x600.MinDimension())
}

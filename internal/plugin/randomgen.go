package plugin

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/serieslab/inspector/internal/series"
	"github.com/serieslab/inspector/internal/session"
	"github.com/serieslab/inspector/pkg/timeutil"
)

// demoPoints is the length of a generated demo series.
const demoPoints = 10000

// RandomGen injects random-walk demo series, mainly for trying the
// tool without real data. Generated items match the session's locked
// index kind; an empty session gets a time-indexed walk.
type RandomGen struct {
	log   zerolog.Logger
	rng   *rand.Rand
	model *session.Model
	count int
}

// NewRandomGen builds the demo-data plugin.
func NewRandomGen(deps Deps) *RandomGen {
	return &RandomGen{
		log: deps.Log.With().Str("component", "randomgen").Logger(),
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (p *RandomGen) Name() string { return "randomgen" }

func (p *RandomGen) Attach(m *session.Model) error {
	p.model = m
	return nil
}

func (p *RandomGen) Detach() {}

// AddDemoItem generates and adds one random-walk series.
func (p *RandomGen) AddDemoItem() (*session.DataItem, error) {
	kind := series.KindTime
	if k, locked := p.model.IndexKind(); locked {
		kind = k
	}

	index := make([]float64, demoPoints)
	values := make([]float64, demoPoints)
	switch kind {
	case series.KindTime:
		start := timeutil.ToDomain(time.Now().Add(-demoPoints * time.Second))
		step := timeutil.DurationToDomain(time.Second)
		for i := range index {
			index[i] = start + float64(i)*step
		}
	default:
		for i := range index {
			index[i] = float64(i)
		}
	}
	walk := 0.0
	for i := range values {
		walk += p.rng.Float64()*2 - 1
		values[i] = walk
	}

	s, err := series.FromDomain(kind, index, values)
	if err != nil {
		return nil, fmt.Errorf("building demo series: %w", err)
	}

	p.count++
	name := fmt.Sprintf("demo %d", p.count)
	it, err := p.model.AddItem(s, name, map[string]string{"source": "demo", "run": name})
	if err != nil {
		return nil, err
	}
	p.log.Info().Str("name", name).Msg("demo item added")
	return it, nil
}

package metrics

import (
	"time"
)

// SearchStats counts the work done by one search call. The searcher owns one value per call
// and passes it down the recursion by pointer.
type SearchStats struct {
	Visited int64 // Every recursive entry (minimax) or tree step (MCTS)
	Created int64 // Nodes materialized for the first time
}

func (s *SearchStats) Add(other SearchStats) {
	s.Visited += other.Visited
	s.Created += other.Created
}

type SearchMetric struct {
	Engine      string
	Duration    time.Duration
	Visited     int64
	Created     int64
	Episodes    int
	Value       float64 // Minimax root value, or the chosen child's win rate for MCTS
	IsTreeReset bool
}

// Rate returns the number of nodes visited per millisecond.
func (m SearchMetric) Rate() float64 {
	ms := float64(m.Duration) / float64(time.Millisecond)
	if ms == 0 {
		return 0
	}
	return float64(m.Visited) / ms
}

type MoveMetric struct {
	Step   int
	Player string
	Cell   int
	SearchMetric
}

type GameMetric struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Outcome    string
}

type Collector interface {
	Start(engine string)
	SetTreeReset(value bool)
	AddStats(stats SearchStats)
	AddEpisode()
	SetValue(value float64)
	Complete() SearchMetric
}

type collector struct {
	engine      string
	startTime   time.Time
	stats       SearchStats
	episodes    int
	value       float64
	isTreeReset bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(engine string) {
	*m = collector{engine: engine, startTime: time.Now()}
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset = value
}

func (m *collector) AddStats(stats SearchStats) {
	m.stats.Add(stats)
}

func (m *collector) AddEpisode() {
	m.episodes++
}

func (m *collector) SetValue(value float64) {
	m.value = value
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Engine:      m.engine,
		Duration:    time.Since(m.startTime),
		Visited:     m.stats.Visited,
		Created:     m.stats.Created,
		Episodes:    m.episodes,
		Value:       m.value,
		IsTreeReset: m.isTreeReset,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(engine string)        {}
func (m *dummyCollector) SetTreeReset(value bool)    {}
func (m *dummyCollector) AddStats(stats SearchStats) {}
func (m *dummyCollector) AddEpisode()                {}
func (m *dummyCollector) SetValue(value float64)     {}
func (m *dummyCollector) Complete() SearchMetric     { return SearchMetric{} }

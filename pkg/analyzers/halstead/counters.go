// Package halstead derives Halstead size and effort measures from operator
// and operand counts collected in a single tree pass.
package halstead

import "math"

// Divisors from the classic Halstead formulas.
const (
	difficultyDivisor = 2.0
	timeDivisor       = 18.0
	bugsDivisor       = 3000.0

	// Volume is undefined below a vocabulary of two.
	minVocabulary = 2
)

// Counters tracks operator and operand occurrences for one scope. Distinct
// counts fall out of the map sizes, totals out of the summed values.
type Counters struct {
	Operators map[string]int
	Operands  map[string]int
}

// NewCounters creates empty Counters.
func NewCounters() *Counters {
	return &Counters{
		Operators: make(map[string]int),
		Operands:  make(map[string]int),
	}
}

// AddOperator records one operator occurrence under key.
func (c *Counters) AddOperator(key string) {
	c.Operators[key]++
}

// AddOperand records one operand occurrence under key.
func (c *Counters) AddOperand(key string) {
	c.Operands[key]++
}

// Metrics holds the derived Halstead measures for one scope.
type Metrics struct {
	DistinctOperators int     `json:"distinct_operators" yaml:"distinct_operators"`
	DistinctOperands  int     `json:"distinct_operands"  yaml:"distinct_operands"`
	TotalOperators    int     `json:"total_operators"    yaml:"total_operators"`
	TotalOperands     int     `json:"total_operands"     yaml:"total_operands"`
	Vocabulary        int     `json:"vocabulary"         yaml:"vocabulary"`
	Length            int     `json:"length"             yaml:"length"`
	EstimatedLength   float64 `json:"estimated_length"   yaml:"estimated_length"`
	Volume            float64 `json:"volume"             yaml:"volume"`
	Difficulty        float64 `json:"difficulty"         yaml:"difficulty"`
	Effort            float64 `json:"effort"             yaml:"effort"`
	TimeToProgram     float64 `json:"time_to_program"    yaml:"time_to_program"`
	DeliveredBugs     float64 `json:"delivered_bugs"     yaml:"delivered_bugs"`
}

// Derive computes the full metric set from the raw counts. Degenerate
// inputs produce zeros rather than NaN: volume needs a vocabulary of at
// least two, difficulty needs at least one distinct operand.
func (c *Counters) Derive() Metrics {
	m := Metrics{
		DistinctOperators: len(c.Operators),
		DistinctOperands:  len(c.Operands),
		TotalOperators:    sumCounts(c.Operators),
		TotalOperands:     sumCounts(c.Operands),
	}

	m.Vocabulary = m.DistinctOperators + m.DistinctOperands
	m.Length = m.TotalOperators + m.TotalOperands

	if m.DistinctOperators > 0 {
		m.EstimatedLength += float64(m.DistinctOperators) * math.Log2(float64(m.DistinctOperators))
	}

	if m.DistinctOperands > 0 {
		m.EstimatedLength += float64(m.DistinctOperands) * math.Log2(float64(m.DistinctOperands))
	}

	if m.Vocabulary >= minVocabulary {
		m.Volume = float64(m.Length) * math.Log2(float64(m.Vocabulary))
	}

	if m.DistinctOperands > 0 {
		m.Difficulty = (float64(m.DistinctOperators) / difficultyDivisor) *
			(float64(m.TotalOperands) / float64(m.DistinctOperands))
	}

	m.Effort = m.Difficulty * m.Volume
	m.TimeToProgram = m.Effort / timeDivisor
	m.DeliveredBugs = m.Volume / bugsDivisor

	return m
}

func sumCounts(m map[string]int) int {
	sum := 0
	for _, count := range m {
		sum += count
	}

	return sum
}

package stats

// Level grades an evaluation.
type Level int

const (
	LevelNeutral Level = iota
	LevelGood
	LevelFair
	LevelPoor
	LevelNotable
)

// Evaluation is a human label for a metric value.
type Evaluation struct {
	Label string `json:"label"`
	Level Level  `json:"level"`
}

// Metric is one row of a file report.
type Metric struct {
	Name       string     `json:"name"`
	Value      int        `json:"value"`
	Evaluation Evaluation `json:"evaluation"`
}

// Metrics returns the graded metrics of s in display order.
func (s *FileStats) Metrics() []Metric {
	return []Metric{
		{"Lines", s.Lines, evalLines(s.Lines)},
		{"Functions", s.Functions, evalFunctions(s.Functions)},
		{"Types", s.Types, evalTypes(s.Types)},
		{"Imports", s.Imports, evalImports(s.Imports)},
		{"Comment lines", s.Comments, evalComments(s.CommentRatio())},
		{"Doc comments", s.DocComments, evalDocs(s.DocComments, s.Functions, s.Types)},
		{"Concurrent functions", s.Concurrent, evalConcurrent(s.Concurrent, s.Functions)},
	}
}

func evalLines(n int) Evaluation {
	switch {
	case n < 50:
		return Evaluation{"excellent", LevelGood}
	case n < 200:
		return Evaluation{"good", LevelFair}
	default:
		return Evaluation{"large", LevelPoor}
	}
}

func evalFunctions(n int) Evaluation {
	switch {
	case n == 0:
		return Evaluation{"no functions", LevelPoor}
	case n <= 5:
		return Evaluation{"optimal", LevelGood}
	case n <= 15:
		return Evaluation{"normal", LevelFair}
	default:
		return Evaluation{"too many", LevelPoor}
	}
}

func evalTypes(n int) Evaluation {
	switch {
	case n == 0:
		return Evaluation{"no types", LevelNeutral}
	case n <= 3:
		return Evaluation{"good", LevelGood}
	case n <= 8:
		return Evaluation{"normal", LevelFair}
	default:
		return Evaluation{"too many", LevelPoor}
	}
}

func evalImports(n int) Evaluation {
	switch {
	case n <= 5:
		return Evaluation{"few", LevelGood}
	case n <= 15:
		return Evaluation{"normal", LevelFair}
	default:
		return Evaluation{"many", LevelPoor}
	}
}

func evalComments(ratio float64) Evaluation {
	switch {
	case ratio < 0.1:
		return Evaluation{"few comments", LevelPoor}
	case ratio < 0.3:
		return Evaluation{"normal", LevelFair}
	default:
		return Evaluation{"well documented", LevelGood}
	}
}

func evalDocs(docs, funcs, types int) Evaluation {
	switch {
	case docs == 0:
		return Evaluation{"undocumented", LevelPoor}
	case docs <= max(1, (funcs+types)/2):
		return Evaluation{"partial", LevelFair}
	default:
		return Evaluation{"well documented", LevelGood}
	}
}

func evalConcurrent(n, funcs int) Evaluation {
	switch {
	case n == 0:
		return Evaluation{"sequential", LevelNeutral}
	case n <= funcs/2:
		return Evaluation{"balanced", LevelGood}
	default:
		return Evaluation{"heavily concurrent", LevelNotable}
	}
}

package stats

// MaxScore is the highest achievable score.
const MaxScore = 6

// Score is a 0..6 quality score.
type Score int

var scoreLabels = [MaxScore + 1]string{
	"needs improvement",
	"needs changes",
	"satisfactory",
	"good",
	"very good",
	"excellent",
	"outstanding",
}

// Label returns the descriptive label of the score.
func (s Score) Label() string {
	if s < 0 || s > MaxScore {
		return "unknown"
	}
	return scoreLabels[s]
}

// Level maps the score onto an evaluation level: 4+ good, 2-3 fair, else poor.
func (s Score) Level() Level {
	switch {
	case s >= 4:
		return LevelGood
	case s >= 2:
		return LevelFair
	default:
		return LevelPoor
	}
}

// Score rates a single file.
func (s *FileStats) Score() Score {
	score := 0
	if s.Lines < 200 {
		score++
	}
	if s.Functions > 0 && s.Functions <= 15 {
		score++
	}
	if s.Types <= 8 {
		score++
	}
	if s.Imports <= 15 {
		score++
	}
	if s.CommentRatio()*100 >= 10 {
		score++
	}
	if s.DocComments > 0 {
		score++
	}
	return Score(score)
}

// Score rates a directory from its totals.
func (r *DirReport) Score() Score {
	t := r.Totals
	files := float64(max(len(r.Files), 1))

	score := 0
	if t.Lines < 1000 {
		score++
	}
	if float64(t.Functions)/files < 10 {
		score++
	}
	if float64(t.Types)/files < 5 {
		score++
	}
	if float64(t.Imports)/files < 20 {
		score++
	}
	if t.CommentRatio()*100 >= 10 {
		score++
	}
	if t.DocComments > 0 {
		score++
	}
	return Score(score)
}

package classifier

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"luma/pkg/core"
	"luma/pkg/metric"
	"luma/pkg/model"
	"luma/pkg/stats"
)

var (
	ErrLabelMismatch = errors.New("number of labels does not match number of samples")
	ErrSingular      = errors.New("shared covariance matrix is singular")
)

var (
	_ model.Classifier = (*GaussianNB)(nil)
	_ model.Classifier = (*BernoulliNB)(nil)
)

// DefaultVarSmoothing is the share of the largest feature variance added to
// every variance so constant features keep the covariance invertible.
const DefaultVarSmoothing = 1e-9

// GaussianNB assumes the features of every class follow a Gaussian with a
// class mean and a diagonal covariance shared by all classes (the average of
// the per-class variances).
type GaussianNB struct {
	VarSmoothing float64

	classes []float64
	logPrio []float64
	means   []*mat.VecDense
	covInv  *mat.Dense
	logNorm float64 // -0.5 * (d*log(2π) + log|Σ|)
}

func NewGaussianNB() *GaussianNB {
	return &GaussianNB{VarSmoothing: DefaultVarSmoothing}
}

func (m *GaussianNB) Fit(X [][]float64, y []float64) error {
	groups, classes, err := groupByClass(m, X, y)
	if err != nil {
		return err
	}
	_, d := core.Matrix(X).Dims()

	shared := make([]float64, d)
	means := make([]*mat.VecDense, len(classes))
	logPrio := make([]float64, len(classes))
	for c, rows := range groups {
		mean := make([]float64, d)
		for j := 0; j < d; j++ {
			mu, sd := stats.MeanStd(rows.Col(j))
			mean[j] = mu
			shared[j] += sd * sd
		}
		means[c] = mat.NewVecDense(d, mean)
		logPrio[c] = math.Log(float64(len(rows)) / float64(len(X)))
	}
	floats.Scale(1/float64(len(classes)), shared)
	eps := m.VarSmoothing * floats.Max(shared)
	floats.AddConst(eps, shared)

	cov := mat.NewDiagDense(d, shared)
	var covInv mat.Dense
	if err := covInv.Inverse(cov); err != nil {
		return fmt.Errorf("%s: fit: %w: %v", m, ErrSingular, err)
	}
	logDet, sign := mat.LogDet(cov)
	if sign <= 0 {
		return fmt.Errorf("%s: fit: %w", m, ErrSingular)
	}

	m.classes = classes
	m.logPrio = logPrio
	m.means = means
	m.covInv = &covInv
	m.logNorm = -0.5 * (float64(d)*math.Log(2*math.Pi) + logDet)
	return nil
}

// logPosteriors returns the unnormalized log posterior of every class for every row.
func (m *GaussianNB) logPosteriors(X [][]float64) ([][]float64, error) {
	if m.classes == nil {
		return nil, model.NotFitted(m)
	}
	d := m.means[0].Len()
	if err := core.Matrix(X).CheckCols(d); err != nil {
		return nil, fmt.Errorf("%s: %w", m, err)
	}
	xd := core.Matrix(X).Dense()
	dev := mat.NewVecDense(d, nil)
	out := make([][]float64, len(X))
	for i := range X {
		scores := make([]float64, len(m.classes))
		for c, mean := range m.means {
			dev.SubVec(xd.RowView(i), mean)
			scores[c] = m.logPrio[c] + m.logNorm - 0.5*mat.Inner(dev, m.covInv, dev)
		}
		out[i] = scores
	}
	return out, nil
}

func (m *GaussianNB) Predict(X [][]float64) ([]float64, error) {
	scores, err := m.logPosteriors(X)
	if err != nil {
		return nil, err
	}
	return argmaxClasses(scores, m.classes), nil
}

func (m *GaussianNB) PredictProba(X [][]float64) ([][]float64, error) {
	scores, err := m.logPosteriors(X)
	if err != nil {
		return nil, err
	}
	return normalize(scores), nil
}

func (m *GaussianNB) Score(X [][]float64, y []float64) (float64, error) {
	return score(m, X, y)
}

// Classes returns the sorted class labels seen by Fit.
func (m *GaussianNB) Classes() []float64 { return append([]float64(nil), m.classes...) }

func (m *GaussianNB) String() string { return "GaussianNB" }

// BernoulliNB models binary features: a feature is present when it is non-zero.
// Feature probabilities use Laplace smoothing, (count+1)/(n+2).
type BernoulliNB struct {
	classes  []float64
	logPrio  []float64
	logP     [][]float64 // log P(feature present | class)
	logNotP  [][]float64 // log P(feature absent | class)
	features int
}

func NewBernoulliNB() *BernoulliNB { return &BernoulliNB{} }

func (m *BernoulliNB) Fit(X [][]float64, y []float64) error {
	groups, classes, err := groupByClass(m, X, y)
	if err != nil {
		return err
	}
	_, d := core.Matrix(X).Dims()

	logPrio := make([]float64, len(classes))
	logP := make([][]float64, len(classes))
	logNotP := make([][]float64, len(classes))
	for c, rows := range groups {
		logPrio[c] = math.Log(float64(len(rows)) / float64(len(X)))
		logP[c] = make([]float64, d)
		logNotP[c] = make([]float64, d)
		for j := 0; j < d; j++ {
			present := 0
			for _, x := range rows {
				if x[j] != 0 {
					present++
				}
			}
			p := (float64(present) + 1) / (float64(len(rows)) + 2)
			logP[c][j] = math.Log(p)
			logNotP[c][j] = math.Log(1 - p)
		}
	}

	m.classes = classes
	m.logPrio = logPrio
	m.logP = logP
	m.logNotP = logNotP
	m.features = d
	return nil
}

func (m *BernoulliNB) logPosteriors(X [][]float64) ([][]float64, error) {
	if m.classes == nil {
		return nil, model.NotFitted(m)
	}
	if err := core.Matrix(X).CheckCols(m.features); err != nil {
		return nil, fmt.Errorf("%s: %w", m, err)
	}
	out := make([][]float64, len(X))
	for i, x := range X {
		scores := make([]float64, len(m.classes))
		for c := range m.classes {
			s := m.logPrio[c]
			for j, v := range x {
				if v != 0 {
					s += m.logP[c][j]
				} else {
					s += m.logNotP[c][j]
				}
			}
			scores[c] = s
		}
		out[i] = scores
	}
	return out, nil
}

func (m *BernoulliNB) Predict(X [][]float64) ([]float64, error) {
	scores, err := m.logPosteriors(X)
	if err != nil {
		return nil, err
	}
	return argmaxClasses(scores, m.classes), nil
}

func (m *BernoulliNB) PredictProba(X [][]float64) ([][]float64, error) {
	scores, err := m.logPosteriors(X)
	if err != nil {
		return nil, err
	}
	return normalize(scores), nil
}

func (m *BernoulliNB) Score(X [][]float64, y []float64) (float64, error) {
	return score(m, X, y)
}

// Classes returns the sorted class labels seen by Fit.
func (m *BernoulliNB) Classes() []float64 { return append([]float64(nil), m.classes...) }

func (m *BernoulliNB) String() string { return "BernoulliNB" }

// groupByClass splits the rows of X by label. Classes are returned sorted and
// groups[c] holds the rows labelled classes[c].
func groupByClass(est fmt.Stringer, X [][]float64, y []float64) ([]core.Matrix, []float64, error) {
	if err := core.Matrix(X).Validate(); err != nil {
		return nil, nil, fmt.Errorf("%s: fit: %w", est, err)
	}
	if len(y) != len(X) {
		return nil, nil, fmt.Errorf("%s: fit: %d labels for %d samples: %w", est, len(y), len(X), ErrLabelMismatch)
	}
	seen := make(map[float64]bool)
	var classes []float64
	for _, v := range y {
		if !seen[v] {
			seen[v] = true
			classes = append(classes, v)
		}
	}
	sort.Float64s(classes)
	index := make(map[float64]int, len(classes))
	for c, v := range classes {
		index[v] = c
	}
	groups := make([]core.Matrix, len(classes))
	for i, x := range X {
		c := index[y[i]]
		groups[c] = append(groups[c], x)
	}
	return groups, classes, nil
}

func argmaxClasses(scores [][]float64, classes []float64) []float64 {
	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = classes[floats.MaxIdx(s)]
	}
	return out
}

// normalize turns log scores into probabilities summing to 1 per row.
func normalize(scores [][]float64) [][]float64 {
	out := make([][]float64, len(scores))
	for i, s := range scores {
		lse := floats.LogSumExp(s)
		p := make([]float64, len(s))
		for c, v := range s {
			p[c] = math.Exp(v - lse)
		}
		out[i] = p
	}
	return out
}

func score(c model.Classifier, X [][]float64, y []float64) (float64, error) {
	pred, err := c.Predict(X)
	if err != nil {
		return 0, err
	}
	if len(y) != len(pred) {
		return 0, fmt.Errorf("%s: score: %d labels for %d samples: %w", c, len(y), len(pred), ErrLabelMismatch)
	}
	return metric.Accuracy(y, pred), nil
}

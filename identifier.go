package readweb

// CharClass is the character class used when scoring identifier tokens.
type CharClass int

// Character classes recognized by the Classifier.
const (
	CharOther CharClass = iota
	CharUpper
	CharLower
	CharDigit
	CharSymbol
)

// String returns the class name.
func (c CharClass) String() string {
	switch c {
	case CharUpper:
		return "Upper"
	case CharLower:
		return "Lower"
	case CharDigit:
		return "Digit"
	case CharSymbol:
		return "Symbol"
	default:
		return "Other"
	}
}

// ClassifyChar returns the class of a single character. Only ASCII letters
// and digits are recognized; '-' and '_' are symbols.
func ClassifyChar(r rune) CharClass {
	switch {
	case r >= 'A' && r <= 'Z':
		return CharUpper
	case r >= 'a' && r <= 'z':
		return CharLower
	case r >= '0' && r <= '9':
		return CharDigit
	case r == '-' || r == '_':
		return CharSymbol
	default:
		return CharOther
	}
}

// Transition is an ordered pair of adjacent character classes.
type Transition struct {
	From CharClass
	To   CharClass
}

// ClassifierConfig holds the tunables of a Classifier.
type ClassifierConfig struct {
	// Costs maps a transition to its price. Pairs absent from the map cost
	// DefaultCost.
	Costs map[Transition]float64

	DefaultCost float64

	// Threshold is the normalized score at or above which a token is
	// considered machine generated.
	Threshold float64

	// MinLength is the shortest token that can ever be flagged.
	MinLength int
}

// DefaultClassifierConfig returns the standard transition price table.
// Same-class transitions are cheap; letter/digit boundaries are expensive.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		Costs: map[Transition]float64{
			{CharUpper, CharLower}:  0.2,
			{CharLower, CharUpper}:  0.5,
			{CharSymbol, CharUpper}: 0.4,
			{CharSymbol, CharLower}: 0.3,
			{CharSymbol, CharDigit}: 0.9,
			{CharUpper, CharDigit}:  1.4,
			{CharLower, CharDigit}:  1.3,
			{CharDigit, CharUpper}:  1.4,
			{CharDigit, CharLower}:  1.5,
			{CharDigit, CharSymbol}: 1.2,
			{CharUpper, CharSymbol}: 0.2,
			{CharLower, CharSymbol}: 0.2,

			{CharDigit, CharDigit}:   1.2,
			{CharSymbol, CharSymbol}: 0.3,
			{CharUpper, CharUpper}:   0.1,
			{CharLower, CharLower}:   0.1,
			{CharOther, CharOther}:   0.0,
		},
		DefaultCost: 1.0,
		Threshold:   0.3,
		MinLength:   4,
	}
}

// Score is the result of measuring a token.
type Score struct {
	// Absolute is the sum of all transition costs.
	Absolute float64

	// Normalized is Absolute divided by the number of transitions.
	Normalized float64
}

// Classifier tells stable, human-authored identifiers apart from
// machine-generated ones such as hashes, UUIDs and numeric suffixes.
// A Classifier is immutable and safe for concurrent use.
type Classifier struct {
	costs       map[Transition]float64
	defaultCost float64
	threshold   float64
	minLength   int
}

// NewClassifier returns a Classifier using a copy of cfg.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	costs := make(map[Transition]float64, len(cfg.Costs))
	for k, v := range cfg.Costs {
		costs[k] = v
	}
	return &Classifier{
		costs:       costs,
		defaultCost: cfg.DefaultCost,
		threshold:   cfg.Threshold,
		minLength:   cfg.MinLength,
	}
}

// NewDefaultClassifier returns a Classifier using DefaultClassifierConfig.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultClassifierConfig())
}

// Cost returns the price of a single transition.
func (c *Classifier) Cost(t Transition) float64 {
	if v, ok := c.costs[t]; ok {
		return v
	}
	return c.defaultCost
}

// Measure scores a token. Tokens shorter than two characters score zero.
func (c *Classifier) Measure(token string) Score {
	runes := []rune(token)
	if len(runes) < 2 {
		return Score{}
	}

	var abs float64
	prev := ClassifyChar(runes[0])
	for _, r := range runes[1:] {
		cur := ClassifyChar(r)
		abs += c.Cost(Transition{From: prev, To: cur})
		prev = cur
	}

	steps := max(1, len(runes)-1)
	return Score{Absolute: abs, Normalized: abs / float64(steps)}
}

// Score returns the normalized score of a token.
func (c *Classifier) Score(token string) float64 {
	return c.Measure(token).Normalized
}

// IsGibberish reports whether token looks machine generated.
func (c *Classifier) IsGibberish(token string) bool {
	if len([]rune(token)) < c.minLength {
		return false
	}
	return c.Score(token) >= c.threshold
}

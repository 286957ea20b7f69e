package types

// ExceptionRule rewrites a grade cell whose text equals From to To before
// notation detection.
type ExceptionRule struct {
	From string `json:"from" yaml:"from" mapstructure:"from"`
	To   string `json:"to" yaml:"to" mapstructure:"to"`
}

// ModifierRule adds Value to a plain grade followed by Token (e.g. "9+").
type ModifierRule struct {
	Token string  `json:"token" yaml:"token" mapstructure:"token"`
	Value float64 `json:"value" yaml:"value" mapstructure:"value"`
}

// NotationConfig holds the grade notation tables. Entries are merged over
// the built-in defaults; a rule with an existing key replaces it.
type NotationConfig struct {
	// Exceptions are exact-text rewrites applied before notation detection.
	Exceptions []ExceptionRule `json:"exceptions" yaml:"exceptions" mapstructure:"exceptions"`

	// Modifiers are the plain-notation suffixes and their grade offsets.
	Modifiers []ModifierRule `json:"modifiers" yaml:"modifiers" mapstructure:"modifiers"`

	// LetterDenominator is the total a letter-score digit is out of (default 8).
	LetterDenominator int `json:"letter_denominator" yaml:"letter_denominator" mapstructure:"letter_denominator"`
}

// DateMode selects how the date cell's weekday prefix is handled.
type DateMode string

const (
	// DateAuto strips text up to the first space when a space is present.
	DateAuto DateMode = "auto"
	// DateWeekday always strips the leading weekday token.
	DateWeekday DateMode = "weekday"
	// DatePlain passes the cell through unchanged.
	DatePlain DateMode = "plain"
)

// DateConfig holds date cell settings.
type DateConfig struct {
	Mode DateMode `json:"mode" yaml:"mode" mapstructure:"mode"`

	// Layout is the Go time layout for the stripped date text (default "2.1.2006").
	Layout string `json:"layout" yaml:"layout" mapstructure:"layout"`
}

// LayoutConfig lists the column roles of the grade table in document order.
type LayoutConfig struct {
	Columns []string `json:"columns" yaml:"columns" mapstructure:"columns"`
}

// TermConfig controls academic term segmentation and labeling.
type TermConfig struct {
	// MonthGap is the month difference between consecutive dates that starts
	// a new term (default 3; a boundary needs a difference greater than it).
	MonthGap int `json:"month_gap" yaml:"month_gap" mapstructure:"month_gap"`

	// SplitMonth divides the calendar year into seasons: the label index is
	// month / SplitMonth (default 7).
	SplitMonth int `json:"split_month" yaml:"split_month" mapstructure:"split_month"`

	// Labels are the season names indexed by month / SplitMonth
	// (default ["Spring", "Autumn"]).
	Labels []string `json:"labels" yaml:"labels" mapstructure:"labels"`
}

// Config groups all grade-report settings.
type Config struct {
	// Document is the default grade report path used when no argument is given.
	Document string `json:"document" yaml:"document" mapstructure:"document"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	Layout   LayoutConfig   `json:"layout" yaml:"layout" mapstructure:"layout"`
	Dates    DateConfig     `json:"dates" yaml:"dates" mapstructure:"dates"`
	Notation NotationConfig `json:"notation" yaml:"notation" mapstructure:"notation"`
	Terms    TermConfig     `json:"terms" yaml:"terms" mapstructure:"terms"`
}

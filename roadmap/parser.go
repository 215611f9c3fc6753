package roadmap

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/a-bouts/rally-pacer/units"
)

const CommentMarker = "//"

// ParseError aborts a whole parse. Line is 1-based.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

type recognizer struct {
	keyword string
	arity   int
	build   func(args []string) (Modifier, error)
}

// first match wins, "endavg S" must be tried before the bare "endavg"
var recognizers = []recognizer{
	{"odo", 1, func(args []string) (Modifier, error) {
		d, err := parseDistance(args[0])
		return OdoDistance{Distance: d}, err
	}},
	{"setavg", 1, func(args []string) (Modifier, error) {
		s, err := ParseSpeed(args[0])
		return SetAvgSpeed{Speed: s}, err
	}},
	{"thenavg", 1, func(args []string) (Modifier, error) {
		s, err := ParseSpeed(args[0])
		return ThenAvgSpeed{Speed: s}, err
	}},
	{"endavg", 1, func(args []string) (Modifier, error) {
		s, err := ParseSpeed(args[0])
		return EndAvgSpeed{Speed: s, HasSpeed: true}, err
	}},
	{"endavg", 0, func(args []string) (Modifier, error) {
		return EndAvgSpeed{}, nil
	}},
	{"atime", 1, func(args []string) (Modifier, error) {
		c, err := parseClock(args[0])
		return AstroTime{Time: c}, err
	}},
	{"here", 1, func(args []string) (Modifier, error) {
		t, err := parseMinSec(args[0])
		return Here{Elapsed: t}, err
	}},
	{"s", 2, func(args []string) (Modifier, error) {
		d, err := parseDistance(args[0])
		if err != nil {
			return nil, err
		}
		if d <= 0 {
			return nil, errors.New("synthetic interval must be positive")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, errors.New("synthetic count must not be negative")
		}
		return AddSynthetic{Interval: d, Count: n}, nil
	}},
	{"calc", 0, func(args []string) (Modifier, error) {
		return CalculateAverage{}, nil
	}},
	{"endcalc", 0, func(args []string) (Modifier, error) {
		return EndCalculateAverage{}, nil
	}},
}

// Parse reads a roadmap, one waypoint or comment per line. It stops at the first
// malformed line.
func Parse(text string) ([]Line, error) {
	var lines []Line

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		raw := scanner.Text()
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, CommentMarker) {
			lines = append(lines, &CommentLine{
				Number: LineNumber{Number: n},
				Text:   strings.TrimSpace(strings.TrimPrefix(trimmed, CommentMarker)),
			})
			continue
		}

		p, reason := parsePosition(n, strings.Fields(trimmed))
		if reason != "" {
			return nil, &ParseError{Line: n, Text: raw, Reason: reason}
		}
		lines = append(lines, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading roadmap: %w", err)
	}

	return lines, nil
}

func parsePosition(n int, tokens []string) (*PositionLine, string) {
	d, err := parseDistance(tokens[0])
	if err != nil {
		return nil, "invalid distance"
	}

	p := &PositionLine{Number: LineNumber{Number: n}, Distance: d}

	rest := tokens[1:]
	for len(rest) > 0 {
		m, consumed := recognize(rest)
		if m == nil {
			return nil, fmt.Sprintf("unexpected token %q", rest[0])
		}
		p.Modifiers = append(p.Modifiers, m)
		rest = rest[consumed:]
	}

	if reason := validateModifiers(p.Modifiers); reason != "" {
		return nil, reason
	}

	return p, ""
}

func recognize(tokens []string) (Modifier, int) {
	keyword := strings.ToLower(tokens[0])
	for _, r := range recognizers {
		if r.keyword != keyword || len(tokens)-1 < r.arity {
			continue
		}
		m, err := r.build(tokens[1 : 1+r.arity])
		if err != nil {
			continue
		}
		return m, 1 + r.arity
	}
	return nil, 0
}

func validateModifiers(mods []Modifier) string {
	avg, here := 0, 0
	for _, m := range mods {
		switch m.Kind() {
		case KindSetAvg, KindThenAvg, KindEndAvg:
			avg++
		case KindHere:
			here++
		}
	}
	if avg > 1 {
		return "more than one average speed modifier"
	}
	if here > 1 {
		return "more than one here modifier"
	}
	return ""
}

func parseDistance(s string) (units.Distance, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid distance %q", s)
	}
	return units.Km(v), nil
}

// ParseSpeed accepts "60", "60kmh", "60km/h" and a distance over time ratio such as
// "90/1:30" (90 km in 1h30).
func ParseSpeed(s string) (units.Speed, error) {
	lower := strings.ToLower(s)
	for _, suffix := range []string{"km/h", "kmh"} {
		if strings.HasSuffix(lower, suffix) {
			return parseBareSpeed(strings.TrimSuffix(lower, suffix))
		}
	}

	if i := strings.Index(lower, "/"); i >= 0 {
		d, err := parseDistance(lower[:i])
		if err != nil {
			return 0, err
		}
		t, err := parseHourMin(lower[i+1:])
		if err != nil {
			return 0, err
		}
		if d < 0 || t <= 0 {
			return 0, fmt.Errorf("invalid speed ratio %q", s)
		}
		return d.Per(t), nil
	}

	return parseBareSpeed(lower)
}

func parseBareSpeed(s string) (units.Speed, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("invalid speed %q", s)
	}
	return units.Kmh(v), nil
}

func splitInts(s string, min, max int) ([]int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < min || len(parts) > max {
		return nil, fmt.Errorf("invalid time %q", s)
	}
	res := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		if v < 0 || (i > 0 && v >= 60) {
			return nil, fmt.Errorf("invalid time %q", s)
		}
		res[i] = v
	}
	return res, nil
}

// H:MM or H:MM:SS
func parseHourMin(s string) (units.TimeHr, error) {
	f, err := splitInts(s, 2, 3)
	if err != nil {
		return 0, err
	}
	secs := f[0]*3600 + f[1]*60
	if len(f) == 3 {
		secs += f[2]
	}
	return units.Hours(float64(secs) / 3600), nil
}

func parseClock(s string) (units.TimeDayHrMinSec, error) {
	f, err := splitInts(s, 2, 3)
	if err != nil {
		return units.TimeDayHrMinSec{}, err
	}
	sec := 0
	if len(f) == 3 {
		sec = f[2]
	}
	return units.Clock(f[0], f[1], sec), nil
}

func parseMinSec(s string) (units.TimeMinSec, error) {
	f, err := splitInts(s, 2, 2)
	if err != nil {
		return units.TimeMinSec{}, err
	}
	return units.MinSec(int64(f[0]), f[1]), nil
}

package parse

import (
	"errors"
	"fmt"
	"log/slog"
)

// parseLayouts tries every candidate format. The first candidate producing
// a valid result wins outright; when none does, the lowest scoring result
// is returned with its error and ties go to the earlier candidate.
func (p *Parser) parseLayouts(s string, formats []string, o Options) (Result, error) {
	if len(formats) == 0 {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, ErrNoFormats)
	}

	var (
		best    Result
		bestErr error
		tied    bool
	)
	for i, format := range formats {
		r, err := p.parseLayout(s, format, o)
		if err == nil {
			return r, nil
		}
		var perr *Error
		if !errors.As(err, &perr) {
			return r, err
		}
		switch {
		case i == 0 || r.Score() < best.Score():
			best, bestErr, tied = r, err, false
		case r.Score() == best.Score():
			tied = true
		}
	}

	if tied {
		p.logger.Debug("format candidates tied, keeping the earliest",
			slog.String("input", s),
			slog.String("format", best.Format),
			slog.Int("score", best.Score()),
		)
	}
	return best, bestErr
}

// parseFields normalizes a field vector.
func (p *Parser) parseFields(f Fields, o Options) (Result, error) {
	st := newState("", o)
	st.empty = false
	for field, v := range f {
		if field < Year || field > Millisecond {
			return Result{}, &Error{Field: field, Reason: "not a calendar field"}
		}
		st.put(field, v)
	}
	return st.finish(StrategyFields)
}

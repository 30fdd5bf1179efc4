package design

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/alexiusacademia/gobeam/internal/combination"
	"github.com/alexiusacademia/gobeam/internal/model"
)

// CheckAll checks every combination concurrently. Outcomes follow the order
// of combos. Undefined and zero-load combinations are skipped, Reaction
// combinations only get their reaction resolved. A failing combination is
// recorded in its Outcome and never stops the others; the returned error is
// non-nil only when ctx is done.
func (c *Checker) CheckAll(ctx context.Context, g model.BeamGeometry, applied []model.Load, combos []combination.LoadCombination, section *SectionProperties, params DesignParameters) ([]Outcome, error) {
	if section == nil {
		return nil, model.Errorf(model.UnresolvedSection, "check all", "no section properties")
	}

	log := c.logger()
	outcomes := make([]Outcome, len(combos))

	eg, ctx := errgroup.WithContext(ctx)
	if c.Workers > 0 {
		eg.SetLimit(c.Workers)
	}

	for i, combo := range combos {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out := &outcomes[i]
			out.Combination = combo

			switch {
			case len(combo.Factors) == 0:
				out.Skipped, out.Reason = true, "no load case factors"

			case combo.Type == combination.Reaction:
				rc, err := c.ReactionFor(g, applied, combo)
				if err != nil {
					out.Err = err
					break
				}
				out.Reaction = &rc

			default:
				res, err := c.CheckCombination(g, applied, combo, section, params)
				if errors.Is(err, model.ErrUndefinedCombination) {
					out.Skipped, out.Reason = true, "all loads are zero"
					break
				}
				out.Result, out.Err = res, err
			}

			switch {
			case out.Err != nil:
				log.Warn("combination failed", "combination", combo.Name, "error", out.Err)
			case out.Skipped:
				log.Debug("combination skipped", "combination", combo.Name, "reason", out.Reason)
			case out.Result != nil:
				log.Debug("combination checked", "combination", combo.Name,
					"status", out.Result.CapacityData.Status,
					"utilization", out.Result.MaxUtilization())
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// Governing returns the checked outcome with the highest utilization.
// Ties keep the first; ok is false when no combination was checked.
func Governing(outcomes []Outcome) (governing Outcome, ok bool) {
	i := GoverningIndex(outcomes)
	if i < 0 {
		return Outcome{}, false
	}
	return outcomes[i], true
}

// GoverningIndex returns the position of the governing outcome, or -1
func GoverningIndex(outcomes []Outcome) int {
	best, idx := -1.0, -1
	for i, o := range outcomes {
		if o.Result == nil {
			continue
		}
		if u := o.Result.MaxUtilization(); u > best {
			best, idx = u, i
		}
	}
	return idx
}

// Passed reports whether at least one combination was checked, every
// checked outcome passed and none failed with an error. Skipped and
// reaction outcomes alone never make a batch pass.
func Passed(outcomes []Outcome) bool {
	var checked bool
	for _, o := range outcomes {
		if o.Err != nil {
			return false
		}
		if o.Result == nil {
			continue
		}
		if o.Result.CapacityData.Status != Pass {
			return false
		}
		checked = true
	}
	return checked
}

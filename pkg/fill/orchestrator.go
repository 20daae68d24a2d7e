package fill

import (
	"fmt"

	"github.com/entrhq/fillforge/pkg/dataset"
	"github.com/entrhq/fillforge/pkg/driver"
	"github.com/entrhq/fillforge/pkg/field"
	"github.com/entrhq/fillforge/pkg/fingerprint"
)

// Result summarizes one fill operation.
type Result struct {
	// Filled is the number of controls that received a value.
	Filled int

	// Skipped counts ineligible controls (disabled, readonly, hidden,
	// password, file).
	Skipped int

	// Failed counts eligible controls whose fill did not complete.
	Failed int

	// DatasetID is the persona used for the batch.
	DatasetID string

	// Fingerprint keys the rotation ledger entry this fill updated.
	Fingerprint fingerprint.Fingerprint
}

// FillAll fills every eligible control on the page. The form is fingerprinted
// once and one persona selected for the whole batch, so every field of one
// fill is internally consistent. Per-field failures are counted and never
// abort the batch.
func (e *Engine) FillAll(page driver.Page, opts Options) (Result, error) {
	controls, err := page.Controls()
	if err != nil {
		return Result{}, fmt.Errorf("fill: enumerate controls: %w", err)
	}

	var res Result
	eligible := make([]driver.Control, 0, len(controls))
	descs := make([]field.Descriptor, 0, len(controls))
	for _, c := range controls {
		if !eligibleControl(c) {
			res.Skipped++
			continue
		}
		eligible = append(eligible, c)
		descs = append(descs, c.Descriptor())
	}

	if len(eligible) == 0 {
		return res, nil
	}

	fp := fingerprint.Compute(page.Origin(), descs)
	res.Fingerprint = fp

	ds, err := e.selector.Select(fp)
	if err != nil {
		return res, fmt.Errorf("fill: select dataset: %w", err)
	}
	res.DatasetID = ds.ID
	e.log.Debugf("fill: form %s on %s gets dataset %s", fp.Hash, fp.Origin, ds.ID)

	for _, c := range eligible {
		if e.fillControl(c, ds, opts) {
			res.Filled++
		} else {
			res.Failed++
			e.log.Debugf("fill: control %q failed, continuing batch", c.Descriptor().Identifier())
		}
	}
	return res, nil
}

// FillField classifies and fills one control, selecting a persona from the
// single-field fingerprint. Returns false when the control is ineligible or
// the fill did not complete.
func (e *Engine) FillField(origin string, c driver.Control, opts Options) (bool, error) {
	if !eligibleControl(c) {
		return false, nil
	}
	fp := fingerprint.Compute(origin, []field.Descriptor{c.Descriptor()})
	ds, err := e.selector.Select(fp)
	if err != nil {
		return false, fmt.Errorf("fill: select dataset: %w", err)
	}
	return e.fillControl(c, ds, opts), nil
}

// eligibleControl applies the enumeration filter: disabled, readonly, hidden
// and password controls are never filled, and file controls cannot be
// scripted at all.
func eligibleControl(c driver.Control) bool {
	d := c.Descriptor()
	if d.Disabled || d.ReadOnly || d.Hidden {
		return false
	}
	if d.Type == "password" || d.Type == "hidden" {
		return false
	}
	if d.Kind == field.KindFile {
		return false
	}
	return c.Attached()
}

// fillControl routes one control to its fill strategy. Select and radio
// controls are always filled instantly regardless of mode.
func (e *Engine) fillControl(c driver.Control, ds dataset.Dataset, opts Options) bool {
	semantic := e.classifier.Classify(c.Descriptor())
	value := resolveValue(ds, semantic)

	switch ctl := c.(type) {
	case driver.SelectControl:
		return e.fillSelect(ctl, value)
	case driver.CheckableControl:
		return ctl.Check() == nil
	default:
		if opts.Mode == ModeAnimated {
			return e.sim.Type(c, value, opts.Typing)
		}
		return e.fillInstant(c, value)
	}
}

func (e *Engine) fillSelect(sel driver.SelectControl, want string) bool {
	opt, ok := resolveOption(sel, want)
	if !ok {
		return false
	}
	if err := sel.SelectOption(opt); err != nil {
		e.log.Debugf("fill: select option %q: %v", opt, err)
		return false
	}
	return true
}

// fillInstant assigns the value directly; the driver dispatches input/change,
// and the final blur triggers page-side validation just like animated mode.
func (e *Engine) fillInstant(c driver.Control, value string) bool {
	if err := c.SetValue(value); err != nil {
		e.log.Debugf("fill: set value: %v", err)
		return false
	}
	if err := c.Blur(); err != nil {
		return false
	}
	return true
}

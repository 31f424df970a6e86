package recipe

import (
	"fmt"
	"maps"
	"sort"
	"strconv"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"csssel/css"
	"csssel/selector"
)

// Named is a successfully built recipe entry.
type Named struct {
	Name       string
	Selector   selector.Selector
	Media      string
	Properties map[string]string
}

// Result is a presentation of built entry suitable for serialization.
type Result struct {
	Name        string               `json:"name" yaml:"name"`
	Selector    string               `json:"selector" yaml:"selector"`
	Specificity selector.Specificity `json:"specificity" yaml:"specificity,flow"`
}

// Build builds every entry in order. References may point to earlier
// entries only. Entries which fail are skipped, all failures are returned
// together. Entries without name are named after their selector text,
// explicit names must be unique.
func (bk *Book) Build(b selector.Builder, log *zap.Logger) ([]Named, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("recipe")

	var (
		errs  error
		known = make(map[string]selector.Selector, len(bk.Selectors))
		out   = make([]Named, 0, len(bk.Selectors))
	)
	for i, e := range bk.Selectors {
		sel, err := e.Node.build(b, known)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("entry %d '%s': %w", i, e.Name, err))
			continue
		}
		name := e.Name
		if len(name) == 0 {
			name = defaultName(i, sel, known)
		} else if _, ok := known[name]; ok {
			errs = multierr.Append(errs, fmt.Errorf("entry %d: %w '%s'", i, ErrDuplicateName, name))
			continue
		}
		known[name] = sel
		out = append(out, Named{Name: name, Selector: sel, Media: e.Media, Properties: e.Properties})
		log.Debug("Selector built", zap.String("name", name), zap.Stringer("selector", sel))
	}
	if errs != nil {
		log.Debug("Recipe has broken entries", zap.Int("failed", len(multierr.Errors(errs))), zap.Int("built", len(out)))
	}
	return out, errs
}

// defaultName derives entry name from selector text. Different selectors may
// share a slug ("#main" and ".main") and some have none ("*"), so position
// of the entry is used to keep names unique.
func defaultName(i int, sel selector.Selector, known map[string]selector.Selector) string {
	base := slug.Make(sel.String())
	if len(base) == 0 {
		base = "entry"
	}
	if _, ok := known[base]; !ok {
		return base
	}
	name := base + "-" + strconv.Itoa(i)
	for n := 2; ; n++ {
		if _, ok := known[name]; !ok {
			return name
		}
		name = base + "-" + strconv.Itoa(i) + "-" + strconv.Itoa(n)
	}
}

func (n Node) build(b selector.Builder, known map[string]selector.Selector) (selector.Selector, error) {
	set := 0
	if len(n.Ref) > 0 {
		set++
	}
	if len(n.Parts) > 0 {
		set++
	}
	if n.Combine != nil {
		set++
	}
	if set != 1 {
		return nil, ErrBadNode
	}

	switch {
	case len(n.Ref) > 0:
		sel, ok := known[n.Ref]
		if !ok {
			return nil, fmt.Errorf("%w '%s'", ErrUnknownRef, n.Ref)
		}
		return sel, nil

	case len(n.Parts) > 0:
		parts := make([]selector.Part, len(n.Parts))
		for i, p := range n.Parts {
			parts[i] = selector.Part(p)
		}
		f := b.Fragment(parts...)
		if err := f.Err(); err != nil {
			return nil, err
		}
		return f, nil

	default:
		comb, err := selector.ParseCombinator(n.Combine.Combinator)
		if err != nil {
			return nil, err
		}
		left, err := n.Combine.Left.build(b, known)
		if err != nil {
			return nil, fmt.Errorf("left: %w", err)
		}
		right, err := n.Combine.Right.build(b, known)
		if err != nil {
			return nil, fmt.Errorf("right: %w", err)
		}
		c := b.Combine(left, comb, right)
		if err := c.Err(); err != nil {
			return nil, err
		}
		return c, nil
	}
}

// SortNamed orders entries by name using natural order ("item2" before
// "item10").
func SortNamed(named []Named) {
	sort.SliceStable(named, func(i, j int) bool {
		return natural.Less(named[i].Name, named[j].Name)
	})
}

// Results converts built entries for serialization.
func Results(named []Named) []Result {
	out := make([]Result, 0, len(named))
	for _, n := range named {
		out = append(out, Result{Name: n.Name, Selector: n.Selector.String(), Specificity: n.Selector.Specificity()})
	}
	return out
}

// Stylesheet returns stylesheet with a rule for every entry which has
// properties, preceded by @import of every url in imports. Entries with media
// query are grouped into @media blocks, one block per distinct query, in
// order of first appearance.
func Stylesheet(named []Named, imports ...string) *css.Stylesheet {
	sheet := &css.Stylesheet{}
	for _, url := range imports {
		sheet.AddImport(url)
	}

	var (
		queries []string
		media   = make(map[string][]css.Rule)
	)
	for _, n := range named {
		if len(n.Properties) == 0 {
			continue
		}
		rule := css.NewRule(n.Selector)
		maps.Copy(rule.Properties, n.Properties)
		if len(n.Media) == 0 {
			sheet.AddRule(rule)
			continue
		}
		if _, ok := media[n.Media]; !ok {
			queries = append(queries, n.Media)
		}
		media[n.Media] = append(media[n.Media], rule)
	}
	for _, q := range queries {
		sheet.AddMedia(q, media[q]...)
	}
	return sheet
}

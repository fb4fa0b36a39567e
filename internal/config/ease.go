package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
)

// eases holds the curves that rise monotonically from 0 to 1, so a
// character never overshoots home or backs away as scroll advances.
var eases = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"inquart":    ease.InQuart,
	"outquart":   ease.OutQuart,
	"inoutquart": ease.InOutQuart,
	"insine":     ease.InSine,
	"outsine":    ease.OutSine,
	"inoutsine":  ease.InOutSine,
	"inexpo":     ease.InExpo,
	"outexpo":    ease.OutExpo,
	"inoutexpo":  ease.InOutExpo,
	"incirc":     ease.InCirc,
	"outcirc":    ease.OutCirc,
	"inoutcirc":  ease.InOutCirc,
}

// EaseByName returns the gween ease with the given name, ignoring case,
// dashes and underscores ("out-cubic", "OutCubic"). Empty means nil, which
// the stagger treats as linear.
func EaseByName(name string) (ease.TweenFunc, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(name))
	if key == "" {
		return nil, nil
	}
	fn, ok := eases[key]
	if !ok {
		return nil, fmt.Errorf("config: unknown ease %q (known: %s)", name, strings.Join(EaseNames(), ", "))
	}
	return fn, nil
}

// EaseNames lists the accepted ease names in sorted order.
func EaseNames() []string {
	names := make([]string, 0, len(eases))
	for k := range eases {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

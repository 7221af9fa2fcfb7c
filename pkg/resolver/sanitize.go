package resolver

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// LabelPolicy returns a shared policy that keeps inline text formatting in
// labels and strips everything else (scripts, event handlers, block
// elements). Pass it to WithLabelPolicy.
func LabelPolicy() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"b", "strong", "i", "em", "u", "small", "sub", "sup",
			"abbr", "span", "br", "code", "mark",
		)
		policy.AllowAttrs("title").OnElements("abbr", "span")
		policy.AllowAttrs("class").OnElements("span")
		labelPolicy = policy
	})
	return labelPolicy
}

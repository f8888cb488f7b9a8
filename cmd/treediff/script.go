package main

import (
	"encoding/json"
	"fmt"

	"github.com/chrisuehlinger/viberowser/treedelta"
)

// script is the on-disk JSON shape a mutation script is read from: an
// initial HTML fragment, followed by a sequence of edits to apply to it
// in order. Every op addresses nodes by the id attribute assigned to
// them in html (or in a prior op's html), so a script author gives every
// node of interest an id up front.
type script struct {
	HTML string `json:"html"`
	Ops  []op   `json:"ops"`
}

type op struct {
	Op     string `json:"op"`
	Node   string `json:"node,omitempty"`
	Parent string `json:"parent,omitempty"`
	Before string `json:"before,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  string `json:"value,omitempty"`
	HTML   string `json:"html,omitempty"`
}

func parseScript(data []byte) (*script, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.HTML == "" {
		return nil, fmt.Errorf("script has no html")
	}
	return &s, nil
}

func parseFilter(name string) (treedelta.FilterFlags, error) {
	switch name {
	case "", "all":
		return treedelta.FilterAll, nil
	case "children":
		return treedelta.FilterChildren | treedelta.FilterOriginal | treedelta.FilterMutated, nil
	case "attribute":
		return treedelta.FilterAttribute, nil
	case "data":
		return treedelta.FilterData, nil
	case "custom":
		return treedelta.FilterCustom, nil
	case "property":
		return treedelta.FilterProperty, nil
	default:
		return 0, fmt.Errorf("unknown filter %q", name)
	}
}

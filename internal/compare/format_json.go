package compare

import (
	json "github.com/goccy/go-json"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
	// Brief drops the full scenario inputs and outcomes
	Brief bool
}

func (jf *JSONFormatter) Name() string { return "json" }

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	if jf.Brief {
		compSet = briefCopy(compSet)
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(compSet, "", "  ")
	} else {
		data, err = json.Marshal(compSet)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func briefCopy(compSet *ComparisonSet) *ComparisonSet {
	c := *compSet
	if compSet.BaseResult != nil {
		base := *compSet.BaseResult
		base.Scenario, base.Outcome = nil, nil
		c.BaseResult = &base
	}
	c.AlternativeResults = make([]ComparisonResult, len(compSet.AlternativeResults))
	for i, alt := range compSet.AlternativeResults {
		alt.Scenario, alt.Outcome = nil, nil
		c.AlternativeResults[i] = alt
	}
	return &c
}

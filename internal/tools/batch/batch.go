package batch

import (
	"encoding/json"
	"fmt"
)

// Result represents the result of a single issue in a batch
type Result struct {
	Issue  int    `json:"issue"`
	Status string `json:"status"` // "success" or "error"
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchResult represents the aggregated results of a batch operation
type BatchResult struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Results    []Result `json:"results"`
}

// ParseNumberOrArray parses a parameter that can be either a single issue
// number or an array of issue numbers. JSON numbers arrive as float64.
func ParseNumberOrArray(param interface{}, paramName string) ([]int, error) {
	if param == nil {
		return nil, fmt.Errorf("%s is required", paramName)
	}

	toInt := func(item interface{}) (int, bool) {
		switch v := item.(type) {
		case float64:
			return int(v), true
		case int:
			return v, true
		default:
			return 0, false
		}
	}

	var result []int

	switch v := param.(type) {
	case []interface{}:
		if len(v) == 0 {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		for i, item := range v {
			n, ok := toInt(item)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a number", paramName, i)
			}
			if n < 1 {
				return nil, fmt.Errorf("%s[%d] must be positive", paramName, i)
			}
			result = append(result, n)
		}
	default:
		n, ok := toInt(param)
		if !ok {
			return nil, fmt.Errorf("%s must be a number or array of numbers", paramName)
		}
		if n < 1 {
			return nil, fmt.Errorf("%s must be positive", paramName)
		}
		result = []int{n}
	}

	return result, nil
}

// FormatResults creates a formatted JSON string from batch results
func FormatResults(results []Result) string {
	br := BatchResult{
		Total:   len(results),
		Results: results,
	}

	for _, r := range results {
		if r.Status == "success" {
			br.Successful++
		} else {
			br.Failed++
		}
	}

	jsonBytes, _ := json.MarshalIndent(br, "", "  ")
	return string(jsonBytes)
}

// ProcessBatch executes a function on each issue number and collects results
// fn should return (result string, error) for each issue
func ProcessBatch(issues []int, fn func(number int) (string, error)) []Result {
	results := make([]Result, 0, len(issues))

	for _, number := range issues {
		result := Result{Issue: number}
		res, err := fn(number)
		if err != nil {
			result.Status = "error"
			result.Error = err.Error()
		} else {
			result.Status = "success"
			result.Result = res
		}
		results = append(results, result)
	}

	return results
}

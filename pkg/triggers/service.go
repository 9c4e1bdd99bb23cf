package triggers

import (
	"fmt"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
)

// Filter holds an expression that suppresses delivery of the event when it returns true
type Filter struct {
	Name        string `json:"name"`
	When        string `json:"when,omitempty"`
	Description string `json:"description,omitempty"`
}

type FilterResult struct {
	Name    string
	Matched bool
}

type Service interface {
	// Evaluates every filter in order and returns the result of each one
	Run(vars map[string]interface{}) []FilterResult
	// Returns the name of the first matching filter
	Match(vars map[string]interface{}) (string, bool)
}

type service struct {
	compiledConditions map[string]*vm.Program
	filters            []Filter
}

func NewService(filters []Filter) (*service, error) {
	svc := service{
		compiledConditions: map[string]*vm.Program{},
		filters:            filters,
	}
	for _, f := range filters {
		if f.When == "" {
			return nil, fmt.Errorf("filter '%s' has no condition", f.Name)
		}
		prog, err := expr.Compile(f.When)
		if err != nil {
			return nil, fmt.Errorf("filter '%s' is invalid: %w", f.Name, err)
		}
		svc.compiledConditions[f.When] = prog
	}
	return &svc, nil
}

func (svc *service) Run(vars map[string]interface{}) []FilterResult {
	var res []FilterResult
	for _, f := range svc.filters {
		filterResult := FilterResult{Name: f.Name}
		if prog, ok := svc.compiledConditions[f.When]; ok {
			if val, err := expr.Run(prog, vars); err == nil { // ignore execution error and treat and false result
				boolRes, ok := val.(bool)
				filterResult.Matched = ok && boolRes
			}
		}
		res = append(res, filterResult)
	}
	return res
}

func (svc *service) Match(vars map[string]interface{}) (string, bool) {
	for _, r := range svc.Run(vars) {
		if r.Matched {
			return r.Name, true
		}
	}
	return "", false
}

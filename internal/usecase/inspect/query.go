package inspect

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// QueryResult reports one named query.
type QueryResult struct {
	Name    string
	Value   string
	Success bool
	Message string
}

// Query evaluates named JSONPath expressions against doc.
// A failing query is reported and the others still run. Results are sorted by name.
func Query(doc any, exprs map[string]string) (map[string]string, []QueryResult) {
	if len(exprs) == 0 {
		return map[string]string{}, []QueryResult{}
	}

	names := make([]string, 0, len(exprs))
	for k := range exprs {
		names = append(names, k)
	}
	sort.Strings(names)

	values := map[string]string{}
	results := make([]QueryResult, 0, len(names))

	for _, name := range names {
		expr := strings.TrimSpace(exprs[name])
		if expr == "" {
			results = append(results, QueryResult{
				Name:    name,
				Message: fmt.Sprintf("query %q: empty jsonpath expression", name),
			})
			continue
		}

		val, err := jsonpath.Get(expr, doc)
		if err != nil {
			results = append(results, QueryResult{
				Name:    name,
				Message: fmt.Sprintf("query %q (%s): jsonpath error: %v", name, expr, err),
			})
			continue
		}
		if isEmpty(val) {
			results = append(results, QueryResult{
				Name:    name,
				Message: fmt.Sprintf("query %q (%s): no value found", name, expr),
			})
			continue
		}

		s, err := render(val)
		if err != nil {
			results = append(results, QueryResult{
				Name:    name,
				Message: fmt.Sprintf("query %q (%s): cannot render value: %v", name, expr, err),
			})
			continue
		}

		values[name] = s
		results = append(results, QueryResult{Name: name, Value: s, Success: true})
	}

	return values, results
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

// render turns a jsonpath value into text. Single-element arrays unwrap;
// objects and longer arrays are emitted as JSON.
func render(v any) (string, error) {
	switch t := v.(type) {
	case []any:
		if len(t) == 1 {
			return render(t[0])
		}
		b, err := json.Marshal(t)
		return string(b), err
	case map[string]any:
		b, err := json.Marshal(t)
		return string(b), err
	case string:
		return t, nil
	case nil:
		return "", fmt.Errorf("value is null")
	default:
		return fmt.Sprint(t), nil
	}
}

package inspect

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Expectation is a set of checks on the value at Path.
type Expectation struct {
	Path     string
	Exists   bool
	Eq       *string
	Contains *string
	Matches  *string
	Len      *int
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// AllPassed reports whether every check passed.
func AllPassed(rs []CheckResult) bool {
	for _, r := range rs {
		if !r.Passed {
			return false
		}
	}
	return true
}

// Evaluate runs each expectation against doc, in path order.
func Evaluate(doc any, exps []Expectation) []CheckResult {
	sorted := append([]Expectation(nil), exps...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	var out []CheckResult
	for _, e := range sorted {
		val, err := jsonpath.Get(e.Path, doc)
		if e.Exists {
			out = append(out, checkExists(e.Path, val, err))
		}
		if e.Eq != nil {
			out = append(out, checkString("eq", e.Path, val, err, *e.Eq, func(s string) (bool, error) { return s == *e.Eq, nil }))
		}
		if e.Contains != nil {
			out = append(out, checkString("contains", e.Path, val, err, *e.Contains, func(s string) (bool, error) {
				return strings.Contains(s, *e.Contains), nil
			}))
		}
		if e.Matches != nil {
			out = append(out, checkString("matches", e.Path, val, err, *e.Matches, func(s string) (bool, error) {
				re, rerr := regexp.Compile(*e.Matches)
				if rerr != nil {
					return false, fmt.Errorf("invalid regex %q: %v", *e.Matches, rerr)
				}
				return re.MatchString(s), nil
			}))
		}
		if e.Len != nil {
			out = append(out, checkLen(e.Path, val, err, *e.Len))
		}
	}
	return out
}

func checkExists(expr string, val any, getErr error) CheckResult {
	r := CheckResult{Name: "jsonpath.exists"}
	switch {
	case getErr != nil:
		r.Message = fmt.Sprintf("invalid jsonpath %q: %v", expr, getErr)
	case isEmpty(val):
		r.Message = fmt.Sprintf("jsonpath %q: expected value to exist, got empty", expr)
	default:
		r.Passed = true
		r.Message = fmt.Sprintf("jsonpath %q exists", expr)
	}
	return r
}

func checkString(kind, expr string, val any, getErr error, want string, pred func(string) (bool, error)) CheckResult {
	r := CheckResult{Name: "jsonpath." + kind}
	if getErr != nil {
		r.Message = fmt.Sprintf("jsonpath %q: %v", expr, getErr)
		return r
	}
	s, err := scalar(val)
	if err != nil {
		r.Message = fmt.Sprintf("jsonpath %q: %v", expr, err)
		return r
	}
	ok, err := pred(s)
	if err != nil {
		r.Message = fmt.Sprintf("jsonpath %q: %v", expr, err)
		return r
	}
	if ok {
		r.Passed = true
		r.Message = fmt.Sprintf("jsonpath %q %s %q", expr, kind, want)
		return r
	}
	r.Message = fmt.Sprintf("jsonpath %q: expected %s %q, got %q", expr, kind, want, s)
	return r
}

func checkLen(expr string, val any, getErr error, want int) CheckResult {
	r := CheckResult{Name: "jsonpath.len"}
	if getErr != nil {
		r.Message = fmt.Sprintf("jsonpath %q: %v", expr, getErr)
		return r
	}
	var n int
	switch t := val.(type) {
	case []any:
		n = len(t)
	case map[string]any:
		n = len(t)
	case string:
		n = len(t)
	case nil:
		n = 0
	default:
		r.Message = fmt.Sprintf("jsonpath %q: value of type %T has no length", expr, val)
		return r
	}
	if n == want {
		r.Passed = true
		r.Message = fmt.Sprintf("jsonpath %q has length %d", expr, want)
		return r
	}
	r.Message = fmt.Sprintf("jsonpath %q: expected length %d, got %d", expr, want, n)
	return r
}

func scalar(val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", fmt.Errorf("value is null")
	default:
		return render(v)
	}
}

package extraction

import (
	"strings"

	"github.com/jonathan/hr-outreach/internal/types"
)

// Shape classifies the segments found before the email on a line.
type Shape int

const (
	ShapeEmpty       Shape = iota // nothing before the email
	ShapeSingleTitle              // one segment that reads as a job title
	ShapeSingleName               // one segment that reads as a person
	ShapeMulti                    // name followed by title
)

func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeSingleTitle:
		return "single-title"
	case ShapeSingleName:
		return "single-name"
	case ShapeMulti:
		return "multi"
	default:
		return "unknown"
	}
}

// titleKeywords decide whether a lone pre-email segment is a title.
// Matching is a case-insensitive substring test.
var titleKeywords = []string{"manager", "director", "head", "lead", "hr", "recruiter"}

// assigners maps each shape to its name/title assignment.
var assigners = map[Shape]func(pre []string) (name, title string){
	ShapeEmpty: func([]string) (string, string) {
		return types.DefaultName, types.DefaultTitle
	},
	ShapeSingleTitle: func(pre []string) (string, string) {
		return types.DefaultName, pre[0]
	},
	ShapeSingleName: func(pre []string) (string, string) {
		return pre[0], types.DefaultTitle
	},
	ShapeMulti: func(pre []string) (string, string) {
		return pre[0], strings.Join(pre[1:], " ")
	},
}

// ClassifyPreEmail returns the shape of the pre-email segment group.
func ClassifyPreEmail(pre []string) Shape {
	switch len(pre) {
	case 0:
		return ShapeEmpty
	case 1:
		if looksLikeTitle(pre[0]) {
			return ShapeSingleTitle
		}
		return ShapeSingleName
	default:
		return ShapeMulti
	}
}

// AssignNameTitle applies the decision table to the pre-email segments.
func AssignNameTitle(pre []string) (name, title string) {
	return assigners[ClassifyPreEmail(pre)](pre)
}

func looksLikeTitle(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range titleKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

package extraction

import (
	"regexp"
	"strings"
)

// emailSentinel temporarily replaces the matched address so it is never re-split.
const emailSentinel = "|||EMAIL|||"

var (
	columnGap     = regexp.MustCompile(`\s{2,}`)
	leadingDigits = regexp.MustCompile(`^\d+\s*`)
)

// roleLexicon holds words that open a job-title phrase. In single-space lines a
// run of name words is split from the title at the first of these words.
var roleLexicon = map[string]bool{
	"manager":     true,
	"director":    true,
	"head":        true,
	"lead":        true,
	"hr":          true,
	"recruiter":   true,
	"recruitment": true,
	"talent":      true,
	"senior":      true,
	"sr":          true,
	"junior":      true,
	"jr":          true,
	"chief":       true,
	"vp":          true,
	"principal":   true,
	"associate":   true,
	"assistant":   true,
	"executive":   true,
	"acquisition": true,
	"people":      true,
	"human":       true,
	"partner":     true,
	"officer":     true,
	"specialist":  true,
	"generalist":  true,
	"coordinator": true,
	"business":    true,
}

// segment splits a masked line into field segments.
//
// Runs of two or more whitespace characters are column separators when
// present. Otherwise words are grouped greedily: a group is flushed at the
// sentinel and where a run of name words meets the first role word.
func segment(masked string) []string {
	var segs []string
	if columnGap.MatchString(masked) {
		for _, p := range columnGap.Split(masked, -1) {
			if p = strings.TrimSpace(p); p != "" {
				segs = append(segs, p)
			}
		}
	} else {
		segs = groupWords(strings.Fields(masked))
	}
	return isolateSentinel(segs)
}

func groupWords(words []string) []string {
	var segs []string
	var group []string
	inRole := false

	flush := func() {
		if len(group) > 0 {
			segs = append(segs, strings.Join(group, " "))
			group = nil
		}
		inRole = false
	}

	for _, w := range words {
		switch {
		case strings.Contains(w, emailSentinel):
			flush()
			segs = append(segs, w)
		case len(group) == 0 && isDigits(w):
			segs = append(segs, w)
		case !inRole && isRoleWord(w):
			flush()
			group = append(group, w)
			inRole = true
		default:
			group = append(group, w)
		}
	}
	flush()
	return segs
}

// isolateSentinel splits segments in which the sentinel is glued to other
// text, so the sentinel always stands alone.
func isolateSentinel(segs []string) []string {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		if s == emailSentinel || !strings.Contains(s, emailSentinel) {
			out = append(out, s)
			continue
		}
		parts := strings.Split(s, emailSentinel)
		for i, p := range parts {
			if p = trimPunct(p); p != "" {
				out = append(out, p)
			}
			if i < len(parts)-1 {
				out = append(out, emailSentinel)
			}
		}
	}
	return out
}

// takeSerial removes a leading ordinal token and returns it.
func takeSerial(segs []string) (string, []string) {
	if len(segs) == 0 || segs[0] == emailSentinel {
		return "", segs
	}
	if isDigits(segs[0]) {
		return segs[0], segs[1:]
	}
	fields := strings.Fields(segs[0])
	if len(fields) > 1 && isDigits(fields[0]) {
		rest := append([]string{strings.Join(fields[1:], " ")}, segs[1:]...)
		return fields[0], rest
	}
	return "", segs
}

func withoutSentinel(segs []string) []string {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		if s != emailSentinel {
			out = append(out, s)
		}
	}
	return out
}

func indexOf(segs []string, target string) int {
	for i, s := range segs {
		if s == target {
			return i
		}
	}
	return -1
}

func isRoleWord(w string) bool {
	return roleLexicon[strings.ToLower(strings.Trim(w, ",.;:()[]-/&"))]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func trimPunct(s string) string {
	return strings.Trim(strings.TrimSpace(s), " \t,;:.()[]<>\"'")
}

func trimLeadingDigits(s string) string {
	return strings.TrimSpace(leadingDigits.ReplaceAllString(strings.TrimSpace(s), ""))
}

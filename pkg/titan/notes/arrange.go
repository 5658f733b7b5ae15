package notes

import (
	"strings"
	"unicode/utf8"

	"github.com/veetae/titan-lite/pkg/titan/section"
)

// planPlaceholder is inserted when the Plan section is missing or trivially
// short (under 20 characters of content).
const planPlaceholder = "Plan\n\nTo be addressed in next visit:\n- Pending review/updates.\n"

const followUpDefault = "Follow-up\n\nAs scheduled.\n"

const todoSection = "TODO\n\n- Review plan items next visit.\n"

// Arrange reorders recognized sections into the canonical chart order
// Subjective, Objective, Assessment, Plan, Follow-up. Text with no recognized
// header at all is returned unchanged. Duplicate headers within one note
// follow a last-wins policy: the later section's content replaces the
// earlier one's for that key. Content before the first recognized header is
// dropped. A Plan placeholder, a Follow-up default and a TODO section are
// synthesized as needed.
func Arrange(text string) string {
	if text == "" {
		return text
	}

	headers := section.Headers(text)
	if len(headers) == 0 {
		return text
	}

	byKey := make(map[string]string, len(headers))
	for i, h := range headers {
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1].Start
		}
		byKey[h.Key] = strings.Trim(text[h.End:end], "\n")
	}

	var sections []string
	for _, key := range section.Order {
		content := byKey[key]
		if content == "" {
			continue
		}
		sections = append(sections, section.Title(key)+"\n\n"+strings.TrimSpace(content)+"\n")
	}

	planText := strings.TrimSpace(byKey[section.Plan])
	if utf8.RuneCountInString(planText) < 20 {
		inserted := false
		rebuilt := make([]string, 0, len(sections)+1)
		for _, sec := range sections {
			rebuilt = append(rebuilt, sec)
			if !inserted && strings.HasPrefix(strings.ToLower(sec), section.Assessment) {
				rebuilt = append(rebuilt, planPlaceholder)
				inserted = true
			}
		}
		if !inserted {
			rebuilt = append(rebuilt, planPlaceholder)
		}
		sections = rebuilt
	}

	if _, ok := byKey[section.FollowUp]; !ok {
		sections = append(sections, followUpDefault)
	}

	sections = append(sections, todoSection)

	out := make([]string, 0, len(sections))
	for _, sec := range sections {
		sec = strings.TrimSpace(sec)
		if sec != "" {
			out = append(out, sec)
		}
	}
	return strings.Join(out, "\n\n")
}

package formats

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/gedtree/gedtree/gedtree/match"
	"github.com/gedtree/gedtree/types"
)

// renderText dispatches on the known result types; anything else falls
// back to indented JSON.
func renderText(v interface{}) (string, error) {
	switch value := v.(type) {
	case types.PersonSummary:
		return personLine(value), nil
	case []types.PersonSummary:
		return PersonList(value), nil
	case types.PersonDetails:
		return PersonDetails(value), nil
	case *types.TreeNode:
		return Tree(value), nil
	case []match.DuplicateMatch:
		return DuplicateList(value), nil
	default:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

// personLine renders one individual as a single line:
// "@I1@  Johann Schmidt (M, 1850-1920)".
func personLine(p types.PersonSummary) string {
	var b strings.Builder
	b.WriteString(p.ID)
	b.WriteString("  ")
	if p.FullName != "" {
		b.WriteString(p.FullName)
	} else {
		b.WriteString("(unnamed)")
	}

	var facts []string
	if p.Gender != "" && p.Gender != types.GenderUnknown {
		facts = append(facts, p.Gender)
	}
	if p.BirthYear != 0 || p.DeathYear != 0 {
		facts = append(facts, yearSpan(p.BirthYear, p.DeathYear))
	}
	if len(facts) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(facts, ", "))
		b.WriteString(")")
	}
	return b.String()
}

func yearSpan(birth, death int) string {
	span := "?"
	if birth != 0 {
		span = fmt.Sprintf("%d", birth)
	}
	span += "-"
	if death != 0 {
		span += fmt.Sprintf("%d", death)
	}
	return span
}

// PersonList renders one line per individual.
func PersonList(people []types.PersonSummary) string {
	if len(people) == 0 {
		return "(none)"
	}
	lines := make([]string, 0, len(people))
	for _, p := range people {
		lines = append(lines, personLine(p))
	}
	return strings.Join(lines, "\n")
}

// PersonDetails renders the full projection of an individual.
func PersonDetails(p types.PersonDetails) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", personLine(p.PersonSummary))
	if p.BirthPlace != "" {
		fmt.Fprintf(&b, "  Born: %s\n", p.BirthPlace)
	}
	if p.DeathPlace != "" {
		fmt.Fprintf(&b, "  Died: %s\n", p.DeathPlace)
	}
	if p.Occupation != "" {
		fmt.Fprintf(&b, "  Occupation: %s\n", p.Occupation)
	}
	for _, note := range p.Notes {
		fmt.Fprintf(&b, "  Note: %s\n", note)
	}

	tags := make([]string, 0, len(p.CustomFacts))
	for tag := range p.CustomFacts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		fmt.Fprintf(&b, "  %s: %s\n", tag, strings.Join(p.CustomFacts[tag], "; "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Tree renders a tree projection with two-space indentation per
// generation. Bidirectional roots render their ancestor and descendant
// branches under separate headers.
func Tree(root *types.TreeNode) string {
	if root == nil {
		return "(no tree)"
	}
	var b strings.Builder
	writeTreeNode(&b, root, 0)

	if len(root.Ancestors) > 0 {
		b.WriteString("ancestors:\n")
		for _, n := range root.Ancestors {
			writeTreeNode(&b, n, 1)
		}
	}
	if len(root.Descendants) > 0 {
		b.WriteString("descendants:\n")
		for _, n := range root.Descendants {
			writeTreeNode(&b, n, 1)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeTreeNode(b *strings.Builder, n *types.TreeNode, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(personLine(n.PersonSummary))
	b.WriteString("\n")
	for _, c := range n.Children {
		writeTreeNode(b, c, depth+1)
	}
}

// DuplicateList renders scored duplicate matches, best first.
func DuplicateList(matches []match.DuplicateMatch) string {
	if len(matches) == 0 {
		return "No potential duplicates found."
	}
	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, fmt.Sprintf("%3d%%  %s", m.Percentage, personLine(m.Person.PersonSummary)))
	}
	return strings.Join(lines, "\n")
}

package output

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/logpeek/pkg/errors"
	"github.com/arthur-debert/logpeek/pkg/rules"
	"github.com/pterm/pterm"
)

// RenderTree renders cfg as an indented tree: one node per condition with
// its matcher, result and else-chain. color selects ANSI styling.
func RenderTree(cfg rules.Config, color bool) (string, error) {
	root := pterm.TreeNode{Text: fmt.Sprintf("rules (%d conditions)", cfg.Len())}
	for i, cond := range cfg.Conditions() {
		root.Children = append(root.Children, conditionNode(fmt.Sprintf("condition %d", i), cond))
	}

	treeStyle, textStyle := pterm.NewStyle(), pterm.NewStyle()
	if color {
		treeStyle = pterm.NewStyle(pterm.FgGray)
		textStyle = pterm.NewStyle(pterm.FgCyan)
	}

	out, err := pterm.DefaultTree.
		WithRoot(root).
		WithTreeStyle(treeStyle).
		WithTextStyle(textStyle).
		Srender()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render rule tree")
	}
	return out, nil
}

func conditionNode(label string, cond rules.Condition) pterm.TreeNode {
	node := pterm.TreeNode{Text: label}
	node.Children = append(node.Children, matcherNode("if", cond.Rule()))

	then := "then " + strconv.Quote(cond.Then().Message())
	if cond.EchoInput() {
		then += " (echo input)"
	}
	node.Children = append(node.Children, pterm.TreeNode{Text: then})

	if next, ok := cond.Else(); ok {
		node.Children = append(node.Children, conditionNode("else", next))
	}
	return node
}

func matcherNode(label string, m rules.Matcher) pterm.TreeNode {
	text := label + " " + m.Predicate().Describe()
	if m.Negated() {
		text = label + " NOT " + m.Predicate().Describe()
	}
	node := pterm.TreeNode{Text: text}
	for _, branch := range m.Or() {
		node.Children = append(node.Children, matcherNode("OR", branch))
	}
	for _, branch := range m.And() {
		node.Children = append(node.Children, matcherNode("AND", branch))
	}
	return node
}

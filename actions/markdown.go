// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import "strings"

const (
	actionsHeading = "## Actions\n"
	actionsSection = "\n\n" + actionsHeading
	bulletPrefix   = "* "
)

// ActionsMarkdown renders the actions section appended to a proposal body
func ActionsMarkdown(actions []Action) string {
	lines := make([]string, len(actions))
	for i, action := range actions {
		lines[i] = bulletPrefix + ToMarkdown(action)
	}
	return actionsSection + strings.Join(lines, "\n")
}

// AppendActions returns [body] followed by the actions section. The body
// is not inspected: a body that already carries an actions section gets a
// second one.
func AppendActions(body string, actions []Action) string {
	return body + ActionsMarkdown(actions)
}

// HasActionsSection reports whether [body] already carries an actions
// section.
func HasActionsSection(body string) bool {
	return strings.HasPrefix(body, actionsHeading) || strings.Contains(body, actionsSection)
}

// ParseMarkdownActions returns the labels of the last actions section of
// [body]. Lines that don't start a new bullet continue the previous label,
// as multi-line reserve labels do.
func ParseMarkdownActions(body string) []string {
	start := strings.LastIndex(body, actionsSection)
	switch {
	case start >= 0:
		start += len(actionsSection)
	case strings.HasPrefix(body, actionsHeading):
		start = len(actionsHeading)
	default:
		return nil
	}

	var labels []string
	for _, line := range strings.Split(body[start:], "\n") {
		switch {
		case strings.HasPrefix(line, bulletPrefix):
			labels = append(labels, strings.TrimPrefix(line, bulletPrefix))
		case len(labels) > 0:
			labels[len(labels)-1] += "\n" + line
		}
	}
	return labels
}

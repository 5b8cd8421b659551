package bot

import "repo-welcome-bot/internal/domain"

// Canned comment bodies. The wording is part of the bot's externally
// visible behavior and is kept stable; none of the strings interpolate
// anything.
var eventTemplates = map[domain.EventType]string{
	domain.IssueOpened: "Hello! Thank you for opening this issue. Your input is valuable and helps improve the project. " +
		"Can you please provide a detailed description of the problem you're encountering? Any additional information " +
		"such as steps to reproduce the issue would be greatly appreciated. Thank you!",
	domain.IssueClosed: "If you're still experiencing any problems, please don't hesitate to open a new issue. Have a great day!",
	domain.PullRequestOpened: "Thank you for submitting this pull request! We appreciate your contribution to the project. " +
		"Before we can merge it, we need to review the changes you've made to ensure they align with our code standards " +
		"and meet the requirements of the project. We'll get back to you as soon as we can with feedback. Thanks again!",
	domain.PullRequestClosed: "Thanks for closing this pull request! If you have any further questions, please feel free " +
		"to open a new issue. We are always happy to help!",
	domain.PullRequestEdited: "Thanks for making updates to your pull request. Our team will take a look and provide " +
		"feedback as soon as possible. Please wait for any GitHub Actions to complete before editing your pull request. " +
		"If you have any additional questions or concerns, feel free to let us know. Thank you for your contributions!",
	domain.PullRequestReadyForReview: "Thanks for making your pull request ready for review! Our team will take a look " +
		"and provide feedback as soon as possible.",
}

var labelTemplates = map[string]string{
	"bug": "We appreciate your contribution to the project. Can you please provide more details, such as steps to " +
		"reproduce the problem, and any relevant information to help us understand the issue better? This will help us " +
		"in resolving the issue as soon as possible.",
	"needs-more-info": "We appreciate your contribution to the project. Can you please provide more details, such as " +
		"steps to reproduce the problem, and any relevant information to help us understand the issue better? This will " +
		"help us in resolving the issue as soon as possible.",
	"enhancement": "We appreciate your contribution to the project. Can you please provide more details, such as the " +
		"use case for the enhancement, and any relevant information to help us understand the issue better? This will " +
		"help us in resolving the issue as soon as possible.",
}

// TemplateFor returns the canned comment for an event type, or "" when the
// event type never gets a comment.
func TemplateFor(eventType domain.EventType) string {
	return eventTemplates[eventType]
}

// LabelTemplateFor returns the canned comment for a label name. Only a
// handful of label names trigger a comment; anything else returns "".
func LabelTemplateFor(labelName string) string {
	return labelTemplates[labelName]
}

package automation

// Actions named in ActionError.
const (
	ActionConnect        = "connect"
	ActionSearch         = "search"
	ActionRetrieveReport = "retrieve_report"
	ActionSendMessage    = "send_message"
)

// Kind classifies an automation failure.
type Kind string

const (
	KindConnection Kind = "connection"
	KindNavigation Kind = "navigation"
	KindTimeout    Kind = "timeout"
	KindNotFound   Kind = "not_found"
)

// SearchResult is the outcome of Search.
type SearchResult struct {
	Found bool
}

// ReportResult is the outcome of CheckAndRetrieveReport. Content is set when the
// portal served the file through an intercepted response; otherwise only URL is set.
type ReportResult struct {
	Found       bool
	Content     []byte
	ContentType string
	URL         string
}

// FollowUpOutcome is the terminal state of ExecuteFollowUp.
type FollowUpOutcome string

const (
	FollowUpMessageSent FollowUpOutcome = "message_sent"
	FollowUpReportFound FollowUpOutcome = "report_found"
)

// FollowUpResult is returned by ExecuteFollowUp on success.
type FollowUpResult struct {
	Outcome FollowUpOutcome
	Report  ReportResult
}

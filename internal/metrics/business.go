package metrics

// IncrementIssueCreated increments the issue creation counter
func (m *Metrics) IncrementIssueCreated() {
	m.safeExecute("IncrementIssueCreated", func() {
		m.IssueCreatedTotal.Inc()
	})
}

// IncrementCommentCreated increments the comment creation counter
func (m *Metrics) IncrementCommentCreated() {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentCreatedTotal.Inc()
	})
}

// SetIssuesTotal sets the total issues gauge
func (m *Metrics) SetIssuesTotal(count int64) {
	m.safeExecute("SetIssuesTotal", func() {
		m.IssuesTotal.Set(float64(count))
	})
}

// SetCommentsTotal sets the total comments gauge
func (m *Metrics) SetCommentsTotal(count int64) {
	m.safeExecute("SetCommentsTotal", func() {
		m.CommentsTotal.Set(float64(count))
	})
}

package api

import "context"

const (
	conversationsPath  = "/api/admin/chat/conversations"
	chatStatisticsPath = "/api/admin/chat/statistics"
)

// ListConversations fetches one page of the chat-monitoring list.
// Supported filters: status.
func (c *Client) ListConversations(ctx context.Context, q ListQuery) (*Page[Conversation], error) {
	return listPage[Conversation](ctx, c, conversationsPath, q)
}

// ChatStatistics fetches the chat dashboard aggregate.
func (c *Client) ChatStatistics(ctx context.Context) (*ChatStats, error) {
	var stats ChatStats
	if err := c.getEnvelope(ctx, chatStatisticsPath, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

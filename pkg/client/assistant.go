package client

import "context"

// AssistantClient covers the chat assistant and insights endpoints.
type AssistantClient struct {
	client *Client
}

func (a *AssistantClient) Chat(ctx context.Context, message string) (string, error) {
	req := struct {
		Message string `json:"message"`
	}{message}
	var res struct {
		Response string `json:"response"`
	}
	if err := a.client.post(ctx, "/api/assistant", req, &res); err != nil {
		return "", err
	}
	return res.Response, nil
}

func (a *AssistantClient) Insights(ctx context.Context) (*Insights, error) {
	var out Insights
	if err := a.client.get(ctx, "/api/ai/insights", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
